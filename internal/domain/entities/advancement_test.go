package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdvancementTable_SlotsAt(t *testing.T) {
	table := AdvancementTable{
		CategoryBasic:   {1: 2, 5: 3},
		CategorySpecial: {1: 0, 3: 1},
	}

	tests := []struct {
		name     string
		category FacilityCategory
		level    int
		expected int
	}{
		{
			name:     "below every threshold yields zero",
			category: CategoryBasic,
			level:    0,
			expected: 0,
		},
		{
			name:     "exact threshold",
			category: CategoryBasic,
			level:    1,
			expected: 2,
		},
		{
			name:     "between thresholds uses greatest key below level",
			category: CategoryBasic,
			level:    4,
			expected: 2,
		},
		{
			name:     "upper threshold",
			category: CategoryBasic,
			level:    5,
			expected: 3,
		},
		{
			name:     "above every threshold",
			category: CategoryBasic,
			level:    20,
			expected: 3,
		},
		{
			name:     "special between thresholds",
			category: CategorySpecial,
			level:    2,
			expected: 0,
		},
		{
			name:     "special upper threshold",
			category: CategorySpecial,
			level:    4,
			expected: 1,
		},
		{
			name:     "missing category yields zero",
			category: FacilityCategory("unknown"),
			level:    10,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, table.SlotsAt(tt.category, tt.level))
		})
	}
}

func TestAdvancementTable_SlotsAt_Monotonic(t *testing.T) {
	table := DefaultAdvancement()

	for _, category := range []FacilityCategory{CategoryBasic, CategorySpecial} {
		prev := 0
		for level := 1; level <= 20; level++ {
			slots := table.SlotsAt(category, level)
			assert.GreaterOrEqual(t, slots, prev, "category %s level %d", category, level)
			prev = slots
		}
	}
}

func TestDefaultAdvancement(t *testing.T) {
	table := DefaultAdvancement()

	assert.Equal(t, 0, table.SlotsAt(CategoryBasic, 4))
	assert.Equal(t, 2, table.SlotsAt(CategoryBasic, 5))
	assert.Equal(t, 2, table.SlotsAt(CategorySpecial, 8))
	assert.Equal(t, 4, table.SlotsAt(CategorySpecial, 9))
	assert.Equal(t, 5, table.SlotsAt(CategorySpecial, 16))
	assert.Equal(t, 6, table.SlotsAt(CategorySpecial, 17))
	assert.Equal(t, 6, table.SlotsAt(CategorySpecial, 20))
}

func TestIsDefaultBlueprint(t *testing.T) {
	assert.True(t, IsDefaultBlueprint("barrack"))
	assert.True(t, IsDefaultBlueprint("bedroom"))
	assert.False(t, IsDefaultBlueprint("moon_base"))
	assert.False(t, IsDefaultBlueprint(""))
}
