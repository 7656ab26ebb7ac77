package repository

import (
	"context"
	"sort"
	"sync"
)

// MemStore is the in-process Store implementation. It is the default backend
// and the one the test suite runs against. All access is mutex-guarded;
// subscriber callbacks are fanned out synchronously after each write.
type MemStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]Document
	subs        *hub
}

// NewMemStore creates an empty in-memory store.
func NewMemStore(_ context.Context, opts ...Option) *MemStore {
	m := &MemStore{
		collections: make(map[string]map[string]Document),
		subs:        newHub(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Get returns a copy of the document or ErrNotFound.
func (m *MemStore) Get(_ context.Context, collection, id string) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.collections[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return deepCopy(doc), nil
}

// Set writes the whole document, shallow-merging into the existing one when
// merge is set.
func (m *MemStore) Set(_ context.Context, collection, id string, doc Document, merge bool) error {
	m.mu.Lock()
	col := m.ensureCollection(collection)
	next := deepCopy(doc)
	if merge {
		if existing, ok := col[id]; ok {
			merged := deepCopy(existing)
			for k, v := range next {
				merged[k] = v
			}
			next = merged
		}
	}
	col[id] = next
	m.mu.Unlock()

	m.notify(collection, id)
	return nil
}

// Update shallow-merges fields into an existing document.
func (m *MemStore) Update(_ context.Context, collection, id string, fields map[string]any) error {
	m.mu.Lock()
	col := m.collections[collection]
	existing, ok := col[id]
	if !ok {
		m.mu.Unlock()
		return ErrNotFound
	}
	merged := deepCopy(existing)
	for k, v := range fields {
		merged[k] = deepCopyValue(v)
	}
	col[id] = merged
	m.mu.Unlock()

	m.notify(collection, id)
	return nil
}

// Delete removes the document; deleting an absent one is a no-op.
func (m *MemStore) Delete(_ context.Context, collection, id string) error {
	m.mu.Lock()
	col, ok := m.collections[collection]
	if !ok {
		m.mu.Unlock()
		return nil
	}
	if _, ok := col[id]; !ok {
		m.mu.Unlock()
		return nil
	}
	delete(col, id)
	m.mu.Unlock()

	m.notify(collection, id)
	return nil
}

// Increment atomically adds delta to a numeric field, creating the document
// from scratch when absent.
func (m *MemStore) Increment(_ context.Context, collection, id, field string, delta float64) error {
	m.mu.Lock()
	col := m.ensureCollection(collection)
	doc, ok := col[id]
	if !ok {
		doc = Document{}
	} else {
		doc = deepCopy(doc)
	}

	current, err := numericField(doc, field)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	doc[field] = current + delta
	col[id] = doc
	m.mu.Unlock()

	m.notify(collection, id)
	return nil
}

// List returns all documents in the collection ordered by id.
func (m *MemStore) List(_ context.Context, collection string) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked(collection), nil
}

// Subscribe registers fn for collection snapshots after every write.
func (m *MemStore) Subscribe(_ context.Context, collection string, fn func([]Document)) (Unsubscribe, error) {
	return m.subs.addCollection(collection, fn), nil
}

// SubscribeDoc registers fn for a single document; fn receives nil when the
// document is deleted.
func (m *MemStore) SubscribeDoc(_ context.Context, collection, id string, fn func(Document)) (Unsubscribe, error) {
	return m.subs.addDoc(collection, id, fn), nil
}

// ensureCollection must be called with mu held.
func (m *MemStore) ensureCollection(collection string) map[string]Document {
	col, ok := m.collections[collection]
	if !ok {
		col = make(map[string]Document)
		m.collections[collection] = col
	}
	return col
}

// snapshotLocked must be called with mu (at least read-) held.
func (m *MemStore) snapshotLocked(collection string) []Document {
	col := m.collections[collection]
	ids := make([]string, 0, len(col))
	for id := range col {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	docs := make([]Document, 0, len(ids))
	for _, id := range ids {
		docs = append(docs, deepCopy(col[id]))
	}
	return docs
}

func (m *MemStore) notify(collection, id string) {
	m.mu.RLock()
	snapshot := m.snapshotLocked(collection)
	var doc Document
	if d, ok := m.collections[collection][id]; ok {
		doc = deepCopy(d)
	}
	m.mu.RUnlock()

	m.subs.broadcast(collection, id, snapshot, doc)
}

// deepCopy clones a document so callers never alias stored state.
func deepCopy(doc Document) Document {
	if doc == nil {
		return nil
	}
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v any) any {
	switch t := v.(type) {
	case Document:
		return map[string]any(deepCopy(t))
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, inner := range t {
			out[k] = deepCopyValue(inner)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, inner := range t {
			out[i] = deepCopyValue(inner)
		}
		return out
	default:
		return v
	}
}

// numericField reads a field as float64, treating an absent field as zero.
func numericField(doc Document, field string) (float64, error) {
	v, ok := doc[field]
	if !ok || v == nil {
		return 0, nil
	}
	switch t := v.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	default:
		return 0, ErrNotNumeric
	}
}
