package mocks

import "context"

// CollectionManager is a mock implementation of ports.CollectionManager.
type CollectionManager struct {
	Ensured    bool
	VectorSize uint64
	Deleted    bool
	Err        error
}

// EnsureCollection creates the collection if it doesn't exist.
func (m *CollectionManager) EnsureCollection(_ context.Context, vectorSize uint64) error {
	if m.Err != nil {
		return m.Err
	}
	m.Ensured = true
	m.VectorSize = vectorSize
	return nil
}

// DeleteCollection removes the collection and all its data.
func (m *CollectionManager) DeleteCollection(_ context.Context) error {
	if m.Err != nil {
		return m.Err
	}
	m.Deleted = true
	return nil
}
