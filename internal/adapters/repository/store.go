// Package repository defines the document store contract the core writes
// through, plus its implementations. Documents are keyed by (collection, id)
// and every mutation notifies active subscribers of that collection.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
)

// Document is the persisted shape of one record.
type Document map[string]any

// Unsubscribe cancels a subscription. After it returns, the callback is
// guaranteed not to fire again.
type Unsubscribe func()

// Store provides keyed document access with change notification. It mirrors
// what the hosted document database offers; no implementation adds authority
// beyond these primitives.
type Store interface {
	// Get returns the document or ErrNotFound.
	Get(ctx context.Context, collection, id string) (Document, error)

	// Set writes the whole document. With merge, fields are shallow-merged
	// into the existing document instead of replacing it.
	Set(ctx context.Context, collection, id string, doc Document, merge bool) error

	// Update shallow-merges fields into an existing document.
	// Returns ErrNotFound when the document does not exist.
	Update(ctx context.Context, collection, id string, fields map[string]any) error

	// Delete removes the document. Deleting an absent document is a no-op.
	Delete(ctx context.Context, collection, id string) error

	// Increment atomically adds delta to a numeric field, creating the
	// document (and the field, from zero) when absent. This is the unit of
	// concurrency safety for the ledger.
	Increment(ctx context.Context, collection, id, field string, delta float64) error

	// List returns all documents in a collection.
	List(ctx context.Context, collection string) ([]Document, error)

	// Subscribe registers fn for collection snapshots. fn is invoked with
	// the full document list after every write to the collection.
	Subscribe(ctx context.Context, collection string, fn func([]Document)) (Unsubscribe, error)

	// SubscribeDoc registers fn for a single document. fn receives nil when
	// the document is deleted.
	SubscribeDoc(ctx context.Context, collection, id string, fn func(Document)) (Unsubscribe, error)
}

// Encode converts a typed value into a Document via its JSON form.
func Encode(v any) (Document, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return doc, nil
}

// Decode fills a typed value from a Document via its JSON form.
func Decode(doc Document, v any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}
