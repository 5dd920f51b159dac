// Package store is a small realtime record store. Each record holds JSON
// fields and ordered child collections, and carries a version. Writers are
// checked against pluggable rules, and subscribers get the whole record
// every time it changes.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrExists       = errors.New("record already exists")
	ErrAccessDenied = errors.New("access denied")
	ErrConflict     = errors.New("record changed since it was read")
	ErrUnavailable  = errors.New("store unavailable")
)

// Fields maps field names to values. Values are stored as JSON; a nil value
// deletes the field.
type Fields map[string]any

// Cancel stops a subscription. It is safe to call more than once and from
// inside the subscription's own callback.
type Cancel func()

// Store is what the game core needs from the shared backend.
type Store interface {
	// Create writes a new record, failing with ErrExists if the key is taken.
	Create(ctx context.Context, actor, key string, fields Fields) error
	// Update applies every field in one step.
	Update(ctx context.Context, actor, key string, fields Fields) error
	// UpdateIf is Update, applied only while the record is still at version.
	UpdateIf(ctx context.Context, actor, key string, version uint64, fields Fields) error
	// Set writes a single field.
	Set(ctx context.Context, actor, key, field string, value any) error
	// Push appends value to a child collection under a generated key.
	Push(ctx context.Context, actor, key, collection string, value any) (string, error)
	Get(ctx context.Context, key string) (*Snapshot, error)
	Exists(ctx context.Context, key string) (bool, error)
	// Subscribe calls fn with the current record and again after every change.
	// fn receives nil while the record does not exist.
	Subscribe(ctx context.Context, key string, fn func(*Snapshot)) (Cancel, error)
	Remove(ctx context.Context, actor, key string) error
}

// Child is one entry of a child collection.
type Child struct {
	Key   string
	Value json.RawMessage
}

// Snapshot is an immutable copy of a record.
type Snapshot struct {
	Key      string
	Version  uint64
	Fields   map[string]json.RawMessage
	Order    []string
	Children map[string][]Child
}

// Has reports whether field is present.
func (s *Snapshot) Has(field string) bool {
	_, ok := s.Fields[field]
	return ok
}

// Decode unmarshals field into v. It reports false, leaving v untouched, when
// the field is absent.
func (s *Snapshot) Decode(field string, v any) (bool, error) {
	raw, ok := s.Fields[field]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, err
	}
	return true, nil
}

// Prefixed returns the names of fields beginning with prefix, in the order
// they were first written.
func (s *Snapshot) Prefixed(prefix string) []string {
	var out []string
	for _, name := range s.Order {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	return out
}

// Rules decides whether actor may perform a write. Implementations return
// ErrAccessDenied, possibly wrapped, to reject it.
type Rules interface {
	CanCreate(actor, key string, fields map[string]json.RawMessage) error
	CanWrite(actor string, current *Snapshot, fields map[string]json.RawMessage) error
	CanPush(actor string, current *Snapshot, collection string, value json.RawMessage) error
	CanRemove(actor string, current *Snapshot) error
}

// AllowAll permits every write.
type AllowAll struct{}

func (AllowAll) CanCreate(string, string, map[string]json.RawMessage) error { return nil }
func (AllowAll) CanWrite(string, *Snapshot, map[string]json.RawMessage) error { return nil }
func (AllowAll) CanPush(string, *Snapshot, string, json.RawMessage) error { return nil }
func (AllowAll) CanRemove(string, *Snapshot) error { return nil }

// IsNull reports whether raw holds a JSON null.
func IsNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
