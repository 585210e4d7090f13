package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/debattle/engine/pkg/metrics"
)

const defaultInitialCapacity = 1024

// document is one stored record with its write counter.
type document struct {
	raw     json.RawMessage
	version Version
}

// MemStore is the in-memory reference implementation of Store. Documents are
// kept as marshaled JSON so readers never alias writer memory, and a single
// RWMutex makes every commit atomic across keys.
type MemStore struct {
	mu              sync.RWMutex
	docs            map[string]document
	initialCapacity int
}

// NewMemStore creates an empty in-memory document store.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{initialCapacity: defaultInitialCapacity}
	for _, opt := range opts {
		opt(s)
	}
	s.docs = make(map[string]document, s.initialCapacity)
	return s
}

// Get unmarshals the document at key into out.
func (s *MemStore) Get(ctx context.Context, key string, out any) error {
	s.mu.RLock()
	doc, ok := s.docs[key]
	s.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err := json.Unmarshal(doc.raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// Set writes a document unconditionally, bumping its version.
func (s *MemStore) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[key] = document{raw: raw, version: s.docs[key].version + 1}
	metrics.UpdateStoreDocuments(len(s.docs))
	return nil
}

// List streams documents under prefix in key order.
func (s *MemStore) List(ctx context.Context, prefix string, fn func(key string, raw []byte) error) error {
	s.mu.RLock()
	keys := make([]string, 0, len(s.docs))
	for k := range s.docs {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	snapshot := make(map[string]json.RawMessage, len(keys))
	for _, k := range keys {
		snapshot[k] = s.docs[k].raw
	}
	s.mu.RUnlock()

	sort.Strings(keys)
	for _, k := range keys {
		if err := fn(k, snapshot[k]); err != nil {
			return err
		}
	}
	return nil
}

// Update runs fn with an optimistic transaction view and commits its staged
// writes if and only if every version read is still current.
func (s *MemStore) Update(ctx context.Context, fn func(tx Tx) error) error {
	start := time.Now()
	defer func() {
		metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds()))
	}()

	tx := &memTx{store: s, reads: make(map[string]Version), writes: make(map[string]json.RawMessage)}
	if err := fn(tx); err != nil {
		return err
	}
	if tx.encodeErr != nil {
		return tx.encodeErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, seen := range tx.reads {
		if s.docs[key].version != seen {
			metrics.RecordStoreConflict()
			return fmt.Errorf("%w: %s", ErrConflict, key)
		}
	}
	for key, raw := range tx.writes {
		s.docs[key] = document{raw: raw, version: s.docs[key].version + 1}
	}
	metrics.UpdateStoreDocuments(len(s.docs))
	return nil
}

// memTx tracks reads and stages writes for one Update invocation.
// A write staged by the transaction is visible to its own later reads.
type memTx struct {
	store     *MemStore
	reads     map[string]Version
	writes    map[string]json.RawMessage
	encodeErr error
}

func (tx *memTx) Get(key string, out any) error {
	if raw, ok := tx.writes[key]; ok {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
		return nil
	}

	tx.store.mu.RLock()
	doc, ok := tx.store.docs[key]
	tx.store.mu.RUnlock()

	tx.noteRead(key, doc.version)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err := json.Unmarshal(doc.raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (tx *memTx) Set(key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil && tx.encodeErr == nil {
		tx.encodeErr = fmt.Errorf("encode %s: %w", key, err)
		return
	}
	tx.writes[key] = raw
}

func (tx *memTx) List(prefix string, fn func(key string, raw []byte) error) error {
	tx.store.mu.RLock()
	keys := make([]string, 0)
	snapshot := make(map[string]document)
	for k, doc := range tx.store.docs {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
			snapshot[k] = doc
		}
	}
	tx.store.mu.RUnlock()

	sort.Strings(keys)
	for _, k := range keys {
		doc := snapshot[k]
		tx.noteRead(k, doc.version)
		raw := doc.raw
		if staged, ok := tx.writes[k]; ok {
			raw = staged
		}
		if err := fn(k, raw); err != nil {
			return err
		}
	}
	return nil
}

// noteRead records the first observed version of key; later reads inside the
// same transaction must not overwrite it, or a foreign write between the two
// reads would slip past the commit check.
func (tx *memTx) noteRead(key string, v Version) {
	if _, ok := tx.reads[key]; !ok {
		tx.reads[key] = v
	}
}
