package repository

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithSeed pre-populates one document so tests start from a known state.
func WithSeed(collection, id string, doc Document) Option {
	return func(m *MemStore) {
		col := m.ensureCollection(collection)
		col[id] = deepCopy(doc)
	}
}
