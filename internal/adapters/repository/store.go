// Package repository defines the document store contract and errors.
//
// The engine is specified against get/set/list plus a multi-key atomic
// read-modify-write primitive; any backend honoring that contract can sit
// behind this interface. The in-memory implementation in this package is
// the reference backend.
package repository

import "context"

// Version is a document's write counter. A missing document has version 0.
type Version int64

// Store provides keyed access to JSON documents. Collections are key
// prefixes (users/, debates/, ...).
type Store interface {
	// Get unmarshals the document at key into out.
	// Returns ErrNotFound if the key is absent.
	Get(ctx context.Context, key string, out any) error

	// Set writes a document unconditionally.
	Set(ctx context.Context, key string, value any) error

	// List streams every document under prefix in key order.
	List(ctx context.Context, prefix string, fn func(key string, raw []byte) error) error

	// Update runs fn inside an optimistic transaction. Every document read
	// through the Tx is version-checked at commit; writes are staged and
	// applied atomically. A concurrent writer invalidating any read causes
	// ErrConflict and none of the staged writes apply.
	Update(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the read-then-conditionally-write view handed to Update callbacks.
type Tx interface {
	// Get reads a document and records its version for the commit check.
	// Reading an absent key records version 0, so a concurrent create of
	// the same key conflicts too.
	Get(key string, out any) error

	// Set stages a write that applies only if the transaction commits.
	Set(key string, value any)

	// List streams documents under prefix, recording every version read.
	List(prefix string, fn func(key string, raw []byte) error) error
}
