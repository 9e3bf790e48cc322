// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SuperTicket Contributors

package session

import (
	"encoding/json"

	"github.com/samber/oops"
)

// Storage keys. Other parts of the application read these directly.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// User is the minimal identity kept next to the token.
type User struct {
	ID   int64  `json:"id" yaml:"id"`
	Role string `json:"role" yaml:"role"`
	Name string `json:"name" yaml:"name"`
}

// Session is an authentication token plus the identity it belongs to.
type Session struct {
	Token string `json:"token" yaml:"token"`
	User  User   `json:"user" yaml:"user"`
}

// Reader loads the current session.
type Reader interface {
	Load() (Session, bool, error)
}

// Writer persists a session. Only a successful login holds one.
type Writer interface {
	Persist(s Session) error
}

// Clearer removes the current session (logout).
type Clearer interface {
	Clear() error
}

// Store maps a Session onto the token and user keys of a Storage.
type Store struct {
	storage Storage
}

// NewStore creates a Store over storage.
func NewStore(storage Storage) (*Store, error) {
	if storage == nil {
		return nil, oops.Errorf("session storage is required")
	}
	return &Store{storage: storage}, nil
}

// Persist writes the token and the JSON-encoded user in one storage write,
// so a failure leaves the previous session intact.
func (s *Store) Persist(sess Session) error {
	if sess.Token == "" {
		return oops.Code("SESSION_EMPTY_TOKEN").Errorf("session token cannot be empty")
	}

	user, err := json.Marshal(sess.User)
	if err != nil {
		return oops.Code("SESSION_PERSIST_FAILED").
			With("operation", "encode user").
			Wrap(err)
	}

	values := map[string]string{
		KeyToken: sess.Token,
		KeyUser:  string(user),
	}
	if err := s.storage.SetAll(values); err != nil {
		return oops.Code("SESSION_PERSIST_FAILED").Wrap(err)
	}
	return nil
}

// Load returns the stored session. ok is false when no token is stored.
// A token without a user entry yields a session with a zero User.
func (s *Store) Load() (Session, bool, error) {
	token, ok, err := s.storage.Get(KeyToken)
	if err != nil {
		return Session{}, false, oops.Code("SESSION_LOAD_FAILED").
			With("key", KeyToken).
			Wrap(err)
	}
	if !ok || token == "" {
		return Session{}, false, nil
	}

	sess := Session{Token: token}
	raw, ok, err := s.storage.Get(KeyUser)
	if err != nil {
		return Session{}, false, oops.Code("SESSION_LOAD_FAILED").
			With("key", KeyUser).
			Wrap(err)
	}
	if ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &sess.User); err != nil {
			return Session{}, false, oops.Code("SESSION_CORRUPT").
				With("key", KeyUser).
				Wrap(err)
		}
	}
	return sess, true, nil
}

// Clear removes both keys.
func (s *Store) Clear() error {
	for _, key := range []string{KeyToken, KeyUser} {
		if err := s.storage.Delete(key); err != nil {
			return oops.Code("SESSION_CLEAR_FAILED").
				With("key", key).
				Wrap(err)
		}
	}
	return nil
}
