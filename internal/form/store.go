// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SuperTicket Contributors

package form

import (
	"maps"
	"slices"
	"sync"

	"github.com/samber/oops"
)

// Data maps field names to their current values.
type Data map[FieldName]string

// Clone returns an independent copy of d.
func (d Data) Clone() Data {
	return maps.Clone(d)
}

// Errors maps field names to their current validation message. A field
// without an entry is valid.
type Errors map[FieldName]string

// Snapshot is a point-in-time copy of a Store's state.
type Snapshot struct {
	Data       Data
	Errors     Errors
	General    string
	Submitting bool
}

// Valid reports whether no field carries an error.
func (s Snapshot) Valid() bool {
	return len(s.Errors) == 0
}

// BeginResult reports how Store.Begin resolved.
type BeginResult int

// Begin results.
const (
	// BeginOK means validation passed and the store is now submitting.
	BeginOK BeginResult = iota
	// BeginBusy means a submission is already in flight; nothing changed.
	BeginBusy
	// BeginInvalid means validation failed; Errors holds the failing fields.
	BeginInvalid
)

// Store holds the state of a single form instance: field values, per-field
// errors, a general error and the submission flag.
//
// All methods are safe for concurrent use. Observers registered with
// Subscribe are invoked after each completed mutation, outside the lock, one
// delivery at a time. A snapshot older than one already delivered is
// dropped, so the last snapshot an observer sees is the latest state.
// Observers may read the store but must not mutate it.
type Store struct {
	schema Schema

	mu         sync.Mutex
	data       Data
	errors     Errors
	general    string
	submitting bool
	seq        uint64

	// deliverMu serialises notify; delivered is the seq of the newest
	// snapshot handed to observers.
	deliverMu sync.Mutex
	delivered uint64

	obsMu     sync.Mutex
	observers map[int]func(Snapshot)
	nextObs   int
}

// NewStore creates a Store for schema with every field set to "".
func NewStore(schema Schema) *Store {
	return &Store{
		schema:    schema,
		data:      emptyData(schema),
		errors:    Errors{},
		observers: make(map[int]func(Snapshot)),
	}
}

func emptyData(schema Schema) Data {
	d := make(Data, len(schema))
	for _, f := range schema {
		d[f.Name] = ""
	}
	return d
}

// Schema returns the fields this store was built with.
func (s *Store) Schema() Schema {
	return s.schema
}

// UpdateField sets a field's value and clears that field's error and the
// general error. Errors come back only on the next validation pass.
func (s *Store) UpdateField(name FieldName, value string) error {
	if !s.schema.Has(name) {
		return oops.Code("FORM_UNKNOWN_FIELD").
			With("field", string(name)).
			Errorf("unknown form field %q", name)
	}

	s.mu.Lock()
	s.data[name] = value
	delete(s.errors, name)
	s.general = ""
	snap, seq := s.publishLocked()
	s.mu.Unlock()

	s.notify(snap, seq)
	return nil
}

// ValidateAll runs every field rule against the current values, replaces the
// error map with only the failing fields and reports whether the form is
// valid. The general error is left untouched.
func (s *Store) ValidateAll() bool {
	s.mu.Lock()
	valid := s.validateLocked()
	snap, seq := s.publishLocked()
	s.mu.Unlock()

	s.notify(snap, seq)
	return valid
}

func (s *Store) validateLocked() bool {
	errs := Errors{}
	for _, f := range s.schema {
		if f.Rule == nil {
			continue
		}
		if msg := f.Rule(s.data[f.Name], s.data); msg != "" {
			errs[f.Name] = msg
		}
	}
	s.errors = errs
	return len(errs) == 0
}

// SetGeneralError sets the submission-level error. Field errors are kept.
func (s *Store) SetGeneralError(msg string) {
	s.mu.Lock()
	s.general = msg
	snap, seq := s.publishLocked()
	s.mu.Unlock()

	s.notify(snap, seq)
}

// SetSubmitting sets the submission-in-progress flag.
func (s *Store) SetSubmitting(submitting bool) {
	s.mu.Lock()
	s.submitting = submitting
	snap, seq := s.publishLocked()
	s.mu.Unlock()

	s.notify(snap, seq)
}

// Reset restores every field to "" and clears all errors. The submission
// flag is left as is.
func (s *Store) Reset() {
	s.mu.Lock()
	s.data = emptyData(s.schema)
	s.errors = Errors{}
	s.general = ""
	snap, seq := s.publishLocked()
	s.mu.Unlock()

	s.notify(snap, seq)
}

// Begin is the submission guard. In one critical section it refuses if a
// submission is in flight, validates the form, and on success marks the store
// as submitting, clears the general error and returns a copy of the values
// that the submission must use.
func (s *Store) Begin() (Data, BeginResult) {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return nil, BeginBusy
	}
	if !s.validateLocked() {
		snap, seq := s.publishLocked()
		s.mu.Unlock()
		s.notify(snap, seq)
		return nil, BeginInvalid
	}
	s.submitting = true
	s.general = ""
	data := s.data.Clone()
	snap, seq := s.publishLocked()
	s.mu.Unlock()

	s.notify(snap, seq)
	return data, BeginOK
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// publishLocked stamps a completed mutation and returns its snapshot.
func (s *Store) publishLocked() (Snapshot, uint64) {
	s.seq++
	return s.snapshotLocked(), s.seq
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Data:       s.data.Clone(),
		Errors:     maps.Clone(s.errors),
		General:    s.general,
		Submitting: s.submitting,
	}
}

// Value returns the current value of a field.
func (s *Store) Value(name FieldName) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[name]
}

// Error returns the current error of a field, or "" if it is valid.
func (s *Store) Error(name FieldName) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errors[name]
}

// General returns the submission-level error.
func (s *Store) General() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.general
}

// Submitting reports whether a submission is in flight.
func (s *Store) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// Valid reports whether the last validation pass left no field errors.
func (s *Store) Valid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.errors) == 0
}

// Subscribe registers fn to receive a snapshot after every mutation and
// returns a function that removes it.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.obsMu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	s.obsMu.Unlock()

	return func() {
		s.obsMu.Lock()
		delete(s.observers, id)
		s.obsMu.Unlock()
	}
}

func (s *Store) notify(snap Snapshot, seq uint64) {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()
	if seq <= s.delivered {
		return
	}
	s.delivered = seq

	s.obsMu.Lock()
	ids := make([]int, 0, len(s.observers))
	for id := range s.observers {
		ids = append(ids, id)
	}
	fns := make([]func(Snapshot), 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		fns = append(fns, s.observers[id])
	}
	s.obsMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
