package slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/entities"
)

func facilitiesOf(category entities.FacilityCategory, total, free int) []entities.Facility {
	result := make([]entities.Facility, total)
	for i := range result {
		result[i] = entities.Facility{Category: category}
		if i < free {
			result[i].Free = true
		}
	}
	return result
}

func TestComputeAvailable(t *testing.T) {
	table := entities.AdvancementTable{
		entities.CategoryBasic:   {1: 2, 5: 3},
		entities.CategorySpecial: {1: 0, 3: 1},
	}

	tests := []struct {
		name          string
		category      entities.FacilityCategory
		level         int
		override      entities.SlotOverride
		facilities    []entities.Facility
		wantValue     int
		wantMax       int
		wantAvailable int
	}{
		{
			name:          "basic with override at level 4",
			category:      entities.CategoryBasic,
			level:         4,
			override:      entities.SlotOverride{Basic: 1},
			wantValue:     0,
			wantMax:       3,
			wantAvailable: 3,
		},
		{
			name:          "special with zero schedule at level 4",
			category:      entities.CategorySpecial,
			level:         4,
			wantValue:     0,
			wantMax:       0,
			wantAvailable: 0,
		},
		{
			name:          "basic guarantees one build slot when full",
			category:      entities.CategoryBasic,
			level:         0,
			wantValue:     0,
			wantMax:       0,
			wantAvailable: 1,
		},
		{
			name:          "basic counts free facilities",
			category:      entities.CategoryBasic,
			level:         5,
			facilities:    facilitiesOf(entities.CategoryBasic, 2, 1),
			wantValue:     2,
			wantMax:       3,
			wantAvailable: 1,
		},
		{
			name:          "special excludes free facilities",
			category:      entities.CategorySpecial,
			level:         3,
			facilities:    facilitiesOf(entities.CategorySpecial, 2, 1),
			wantValue:     1,
			wantMax:       1,
			wantAvailable: 0,
		},
		{
			name:          "other category facilities are ignored",
			category:      entities.CategorySpecial,
			level:         3,
			facilities:    facilitiesOf(entities.CategoryBasic, 4, 0),
			wantValue:     0,
			wantMax:       1,
			wantAvailable: 1,
		},
		{
			name:          "overfull special clamps to zero available",
			category:      entities.CategorySpecial,
			level:         3,
			facilities:    facilitiesOf(entities.CategorySpecial, 5, 0),
			wantValue:     5,
			wantMax:       1,
			wantAvailable: 0,
		},
		{
			name:          "special override adds slots",
			category:      entities.CategorySpecial,
			level:         3,
			override:      entities.SlotOverride{Special: 2},
			wantValue:     0,
			wantMax:       3,
			wantAvailable: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeAvailable(tt.category, tt.level, table, tt.override, tt.facilities)
			assert.Equal(t, tt.wantValue, got.Value)
			assert.Equal(t, tt.wantMax, got.Max)
			assert.Len(t, got.Available, tt.wantAvailable)
			for _, p := range got.Available {
				assert.Equal(t, tt.category, p.Category)
			}
		})
	}
}

func TestComputeAvailable_MonotonicInLevel(t *testing.T) {
	table := entities.DefaultAdvancement()
	override := entities.SlotOverride{Basic: 1, Special: 2}

	for _, category := range []entities.FacilityCategory{entities.CategoryBasic, entities.CategorySpecial} {
		prev := -1
		for level := 0; level <= 20; level++ {
			got := ComputeAvailable(category, level, table, override, nil)
			assert.GreaterOrEqual(t, got.Max, prev, "category %s level %d", category, level)
			prev = got.Max
		}
	}
}

func TestComputeAvailable_DefaultsEmptyInputs(t *testing.T) {
	got := ComputeAvailable(entities.CategorySpecial, 10, nil, entities.SlotOverride{}, nil)
	assert.Equal(t, 0, got.Value)
	assert.Equal(t, 0, got.Max)
	assert.Empty(t, got.Available)
}

func TestBuildOccupancySlots(t *testing.T) {
	occupants := map[string]*entities.Occupant{
		"uuid-A": {ID: "uuid-A", Name: "Veteran"},
		"uuid-B": {ID: "uuid-B", Name: "Guard"},
	}
	resolve := func(ref string) (*entities.Occupant, bool) {
		o, ok := occupants[ref]
		return o, ok
	}

	t.Run("pads to capacity", func(t *testing.T) {
		got := BuildOccupancySlots([]string{"uuid-A"}, 2, resolve)
		require.Len(t, got, 2)

		assert.Equal(t, 0, got[0].Index)
		assert.Equal(t, "uuid-A", got[0].Ref)
		assert.False(t, got[0].Empty)
		require.NotNil(t, got[0].Occupant)
		assert.Equal(t, "Veteran", got[0].Occupant.Name)

		assert.Equal(t, 1, got[1].Index)
		assert.Empty(t, got[1].Ref)
		assert.True(t, got[1].Empty)
		assert.Nil(t, got[1].Occupant)
	})

	t.Run("zero capacity returns empty sequence", func(t *testing.T) {
		got := BuildOccupancySlots(nil, 0, resolve)
		assert.Empty(t, got)
	})

	t.Run("unresolvable ref degrades to empty slot", func(t *testing.T) {
		got := BuildOccupancySlots([]string{"uuid-gone", "uuid-B"}, 2, resolve)
		require.Len(t, got, 2)
		assert.True(t, got[0].Empty)
		assert.False(t, got[1].Empty)
	})

	t.Run("refs beyond capacity are ignored", func(t *testing.T) {
		got := BuildOccupancySlots([]string{"uuid-A", "uuid-B"}, 1, resolve)
		require.Len(t, got, 1)
		assert.Equal(t, "uuid-A", got[0].Ref)
	})

	t.Run("length always equals capacity", func(t *testing.T) {
		for capacity := 0; capacity <= 8; capacity++ {
			for refCount := 0; refCount <= 8; refCount++ {
				refs := make([]string, refCount)
				got := BuildOccupancySlots(refs, capacity, resolve)
				assert.Len(t, got, capacity)
			}
		}
	})
}
