package store

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

type record struct {
	version  uint64
	fields   map[string]json.RawMessage
	order    []string
	children map[string][]Child
	touched  time.Time
}

// Memory is an in-process Store. All writes to one record are serialized, so
// an Update is seen by subscribers as a single change.
type Memory struct {
	rules Rules
	now   func() time.Time

	mu      sync.Mutex
	records map[string]*record
	subs    map[string]map[uint64]*subscription
	nextSub uint64
	closed  bool
}

// Option configures a Memory store.
type Option func(*Memory)

// WithRules sets the write rules. The default allows everything.
func WithRules(r Rules) Option {
	return func(m *Memory) {
		m.rules = r
	}
}

// WithClock overrides the clock used for idle tracking.
func WithClock(now func() time.Time) Option {
	return func(m *Memory) {
		m.now = now
	}
}

func NewMemory(opts ...Option) *Memory {
	m := &Memory{
		rules:   AllowAll{},
		now:     time.Now,
		records: make(map[string]*record),
		subs:    make(map[string]map[uint64]*subscription),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

var _ Store = (*Memory)(nil)

func (m *Memory) checkLocked(ctx context.Context) error {
	if m.closed {
		return ErrUnavailable
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

func encode(fields Fields) (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage, len(fields))
	for name, v := range fields {
		if v == nil {
			out[name] = json.RawMessage("null")
			continue
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode field %q: %w", name, err)
		}
		out[name] = raw
	}
	return out, nil
}

func (m *Memory) Create(ctx context.Context, actor, key string, fields Fields) error {
	enc, err := encode(fields)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkLocked(ctx); err != nil {
		return err
	}
	if _, ok := m.records[key]; ok {
		return ErrExists
	}
	if err := m.rules.CanCreate(actor, key, enc); err != nil {
		return err
	}

	rec := &record{
		fields:   make(map[string]json.RawMessage, len(enc)),
		children: make(map[string][]Child),
	}
	rec.apply(enc)
	rec.version = 1
	rec.touched = m.now()
	m.records[key] = rec

	m.notifyLocked(key, rec)
	return nil
}

func (m *Memory) Update(ctx context.Context, actor, key string, fields Fields) error {
	return m.update(ctx, actor, key, 0, false, fields)
}

func (m *Memory) UpdateIf(ctx context.Context, actor, key string, version uint64, fields Fields) error {
	return m.update(ctx, actor, key, version, true, fields)
}

func (m *Memory) Set(ctx context.Context, actor, key, field string, value any) error {
	return m.update(ctx, actor, key, 0, false, Fields{field: value})
}

func (m *Memory) update(ctx context.Context, actor, key string, version uint64, conditional bool, fields Fields) error {
	enc, err := encode(fields)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkLocked(ctx); err != nil {
		return err
	}
	rec, ok := m.records[key]
	if !ok {
		return ErrNotFound
	}
	if conditional && rec.version != version {
		return ErrConflict
	}
	if err := m.rules.CanWrite(actor, rec.snapshot(key), enc); err != nil {
		return err
	}

	rec.apply(enc)
	rec.version++
	rec.touched = m.now()

	m.notifyLocked(key, rec)
	return nil
}

func (m *Memory) Push(ctx context.Context, actor, key, collection string, value any) (string, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("encode %s entry: %w", collection, err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkLocked(ctx); err != nil {
		return "", err
	}
	rec, ok := m.records[key]
	if !ok {
		return "", ErrNotFound
	}
	if err := m.rules.CanPush(actor, rec.snapshot(key), collection, raw); err != nil {
		return "", err
	}

	rec.children[collection] = append(rec.children[collection], Child{Key: id.String(), Value: raw})
	rec.version++
	rec.touched = m.now()

	m.notifyLocked(key, rec)
	return id.String(), nil
}

func (m *Memory) Get(ctx context.Context, key string) (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkLocked(ctx); err != nil {
		return nil, err
	}
	rec, ok := m.records[key]
	if !ok {
		return nil, ErrNotFound
	}
	return rec.snapshot(key), nil
}

func (m *Memory) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkLocked(ctx); err != nil {
		return false, err
	}
	_, ok := m.records[key]
	return ok, nil
}

func (m *Memory) Remove(ctx context.Context, actor, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkLocked(ctx); err != nil {
		return err
	}
	rec, ok := m.records[key]
	if !ok {
		return ErrNotFound
	}
	if err := m.rules.CanRemove(actor, rec.snapshot(key)); err != nil {
		return err
	}

	delete(m.records, key)
	m.notifyLocked(key, nil)
	return nil
}

// Sweep removes every record last written before cutoff and returns their
// keys. Subscribers see the records disappear.
func (m *Memory) Sweep(cutoff time.Time) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var removed []string
	for key, rec := range m.records {
		if rec.touched.Before(cutoff) {
			delete(m.records, key)
			m.notifyLocked(key, nil)
			removed = append(removed, key)
		}
	}
	slices.Sort(removed)
	return removed
}

// Len returns the number of live records.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.records)
}

// Close stops every subscription. Later calls fail with ErrUnavailable.
func (m *Memory) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	for key, subs := range m.subs {
		for _, s := range subs {
			s.stop()
		}
		delete(m.subs, key)
	}
}

func (m *Memory) Subscribe(ctx context.Context, key string, fn func(*Snapshot)) (Cancel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkLocked(ctx); err != nil {
		return nil, err
	}

	m.nextSub++
	id := m.nextSub

	s := newSubscription(fn)
	if m.subs[key] == nil {
		m.subs[key] = make(map[uint64]*subscription)
	}
	m.subs[key][id] = s
	go s.run()

	var current *Snapshot
	if rec, ok := m.records[key]; ok {
		current = rec.snapshot(key)
	}
	s.offer(current)

	return func() {
		m.mu.Lock()
		if subs, ok := m.subs[key]; ok {
			delete(subs, id)
			if len(subs) == 0 {
				delete(m.subs, key)
			}
		}
		m.mu.Unlock()

		s.stop()
	}, nil
}

func (m *Memory) notifyLocked(key string, rec *record) {
	subs := m.subs[key]
	if len(subs) == 0 {
		return
	}

	var snap *Snapshot
	if rec != nil {
		snap = rec.snapshot(key)
	}
	for _, s := range subs {
		s.offer(snap)
	}
}

func (r *record) apply(enc map[string]json.RawMessage) {
	names := slices.Sorted(maps.Keys(enc))
	for _, name := range names {
		raw := enc[name]
		_, exists := r.fields[name]

		if IsNull(raw) {
			if exists {
				delete(r.fields, name)
				r.order = slices.DeleteFunc(r.order, func(n string) bool { return n == name })
			}
			continue
		}

		if !exists {
			r.order = append(r.order, name)
		}
		r.fields[name] = raw
	}
}

func (r *record) snapshot(key string) *Snapshot {
	children := make(map[string][]Child, len(r.children))
	for name, c := range r.children {
		children[name] = slices.Clone(c)
	}

	return &Snapshot{
		Key:      key,
		Version:  r.version,
		Fields:   maps.Clone(r.fields),
		Order:    slices.Clone(r.order),
		Children: children,
	}
}
