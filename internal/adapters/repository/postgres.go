package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/okian/futpack/pkg/metrics"
)

// PGStore is the Postgres-backed Store implementation. Every document lives
// as one jsonb row keyed by (collection, id); Increment is a single
// statement so concurrent deltas compose additively on the server.
//
// Change notification is delivered to in-process subscribers after each
// local write. Cross-process delivery would need LISTEN/NOTIFY or polling
// on top; the subscription contract allows any such backend.
type PGStore struct {
	pool *pgxpool.Pool
	subs *hub
}

// NewPGStore connects a pool and ensures the documents table exists.
func NewPGStore(ctx context.Context, dsn string) (*PGStore, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	s := &PGStore{pool: pool, subs: newHub()}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the connection pool.
func (s *PGStore) Close() {
	s.pool.Close()
}

func (s *PGStore) ensureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS documents (
			collection text NOT NULL,
			id         text NOT NULL,
			data       jsonb NOT NULL,
			PRIMARY KEY (collection, id)
		)
	`
	if _, err := s.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// observe records the elapsed time of one store operation.
func observe(op string, start time.Time) {
	metrics.RecordStoreOpLatency(op, float64(time.Since(start).Milliseconds()))
}

// Get returns the document or ErrNotFound.
func (s *PGStore) Get(ctx context.Context, collection, id string) (Document, error) {
	defer observe("get", time.Now())

	const q = `SELECT data FROM documents WHERE collection = $1 AND id = $2`
	var raw []byte
	if err := s.pool.QueryRow(ctx, q, collection, id).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

// Set writes the whole document, jsonb-merging when merge is set.
func (s *PGStore) Set(ctx context.Context, collection, id string, doc Document, merge bool) error {
	defer observe("set", time.Now())

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	q := `
		INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3)
		ON CONFLICT (collection, id) DO UPDATE SET data = EXCLUDED.data
	`
	if merge {
		q = `
			INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3)
			ON CONFLICT (collection, id) DO UPDATE SET data = documents.data || EXCLUDED.data
		`
	}
	if _, err := s.pool.Exec(ctx, q, collection, id, raw); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	s.notify(ctx, collection, id)
	return nil
}

// Update jsonb-merges fields into an existing document.
func (s *PGStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	defer observe("update", time.Now())

	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	const q = `UPDATE documents SET data = data || $3 WHERE collection = $1 AND id = $2`
	tag, err := s.pool.Exec(ctx, q, collection, id, raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	s.notify(ctx, collection, id)
	return nil
}

// Delete removes the document; deleting an absent one is a no-op.
func (s *PGStore) Delete(ctx context.Context, collection, id string) error {
	defer observe("delete", time.Now())

	const q = `DELETE FROM documents WHERE collection = $1 AND id = $2`
	if _, err := s.pool.Exec(ctx, q, collection, id); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	s.notify(ctx, collection, id)
	return nil
}

// Increment adds delta to a numeric field in one statement, creating the
// document when absent. Absent fields count as zero.
func (s *PGStore) Increment(ctx context.Context, collection, id, field string, delta float64) error {
	defer observe("increment", time.Now())

	const q = `
		INSERT INTO documents (collection, id, data)
		VALUES ($1, $2, jsonb_build_object($3::text, $4::numeric))
		ON CONFLICT (collection, id) DO UPDATE
		SET data = documents.data ||
			jsonb_build_object($3::text, COALESCE((documents.data ->> $3)::numeric, 0) + $4)
	`
	if _, err := s.pool.Exec(ctx, q, collection, id, field, delta); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	s.notify(ctx, collection, id)
	return nil
}

// List returns all documents in the collection ordered by id.
func (s *PGStore) List(ctx context.Context, collection string) ([]Document, error) {
	defer observe("list", time.Now())

	const q = `SELECT data FROM documents WHERE collection = $1 ORDER BY id`
	rows, err := s.pool.Query(ctx, q, collection)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		var doc Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return docs, nil
}

// Subscribe registers fn for collection snapshots after every local write.
func (s *PGStore) Subscribe(_ context.Context, collection string, fn func([]Document)) (Unsubscribe, error) {
	return s.subs.addCollection(collection, fn), nil
}

// SubscribeDoc registers fn for a single document.
func (s *PGStore) SubscribeDoc(_ context.Context, collection, id string, fn func(Document)) (Unsubscribe, error) {
	return s.subs.addDoc(collection, id, fn), nil
}

// notify rereads state and fans it out. Best effort: a failed reread drops
// the notification, never the write.
func (s *PGStore) notify(ctx context.Context, collection, id string) {
	snapshot, err := s.List(ctx, collection)
	if err != nil {
		return
	}
	doc, err := s.Get(ctx, collection, id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return
	}

	s.subs.broadcast(collection, id, snapshot, doc)
}
