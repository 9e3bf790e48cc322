// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SuperTicket Contributors

package session_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bytecraft/superticket/internal/session"
	"github.com/bytecraft/superticket/pkg/errutil"
)

func TestNewStore_NilStorage(t *testing.T) {
	store, err := session.NewStore(nil)
	require.Error(t, err)
	assert.Nil(t, store)
	assert.Contains(t, err.Error(), "storage is required")
}

func TestStore_PersistAndLoad(t *testing.T) {
	storages := map[string]func(t *testing.T) session.Storage{
		"memory": func(*testing.T) session.Storage { return session.NewMemoryStorage() },
		"file": func(t *testing.T) session.Storage {
			return session.NewFileStorage(filepath.Join(t.TempDir(), "state", "session.json"))
		},
	}

	for name, newStorage := range storages {
		t.Run(name, func(t *testing.T) {
			storage := newStorage(t)
			store, err := session.NewStore(storage)
			require.NoError(t, err)

			_, ok, err := store.Load()
			require.NoError(t, err)
			assert.False(t, ok, "starts empty")

			want := session.Session{
				Token: "eyJhbGciOiJIUzI1NiJ9.e30.sig",
				User:  session.User{ID: 42, Role: "CLIENT", Name: "Ana"},
			}
			require.NoError(t, store.Persist(want))

			got, ok, err := store.Load()
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, want, got)

			token, ok, err := storage.Get(session.KeyToken)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, want.Token, token)

			rawUser, ok, err := storage.Get(session.KeyUser)
			require.NoError(t, err)
			require.True(t, ok)
			assert.JSONEq(t, `{"id":42,"role":"CLIENT","name":"Ana"}`, rawUser)

			require.NoError(t, store.Clear())
			_, ok, err = store.Load()
			require.NoError(t, err)
			assert.False(t, ok)
			_, ok, err = storage.Get(session.KeyUser)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestStore_PersistRejectsEmptyToken(t *testing.T) {
	store, err := session.NewStore(session.NewMemoryStorage())
	require.NoError(t, err)

	err = store.Persist(session.Session{User: session.User{ID: 1}})
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "SESSION_EMPTY_TOKEN")
}

func TestStore_ClearWhenEmpty(t *testing.T) {
	store, err := session.NewStore(session.NewFileStorage(filepath.Join(t.TempDir(), "session.json")))
	require.NoError(t, err)
	assert.NoError(t, store.Clear())
}

func TestStore_LoadCorruptUser(t *testing.T) {
	storage := session.NewMemoryStorage()
	require.NoError(t, storage.Set(session.KeyToken, "tok"))
	require.NoError(t, storage.Set(session.KeyUser, "{not json"))
	store, err := session.NewStore(storage)
	require.NoError(t, err)

	_, ok, err := store.Load()
	require.Error(t, err)
	assert.False(t, ok)
	errutil.AssertErrorCode(t, err, "SESSION_CORRUPT")
}

func TestFileStorage_SurvivesNewInstance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	first, err := session.NewStore(session.NewFileStorage(path))
	require.NoError(t, err)
	require.NoError(t, first.Persist(session.Session{Token: "tok", User: session.User{ID: 7, Role: "CLIENT", Name: "Luis"}}))

	second, err := session.NewStore(session.NewFileStorage(path))
	require.NoError(t, err)
	got, ok, err := second.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Luis", got.User.Name)
}

func TestFileStorage_FileFormatAndMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	storage := session.NewFileStorage(path)
	assert.Equal(t, path, storage.Path())
	require.NoError(t, storage.Set("token", "abc"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var values map[string]string
	require.NoError(t, json.Unmarshal(data, &values))
	assert.Equal(t, map[string]string{"token": "abc"}, values)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestFileStorage_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))

	_, _, err := session.NewFileStorage(path).Get("token")
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "SESSION_STORAGE_CORRUPT")
}

func TestFileStorage_DeleteMissingKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	storage := session.NewFileStorage(path)

	require.NoError(t, storage.Delete("token"))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "deleting a missing key does not create the file")
}

// userKeyFailStorage refuses any write that touches the user key.
type userKeyFailStorage struct {
	*session.MemoryStorage
}

var errDiskFull = errors.New("disk full")

func (s userKeyFailStorage) Set(key, value string) error {
	if key == session.KeyUser {
		return errDiskFull
	}
	return s.MemoryStorage.Set(key, value)
}

func (s userKeyFailStorage) SetAll(values map[string]string) error {
	if _, ok := values[session.KeyUser]; ok {
		return errDiskFull
	}
	return s.MemoryStorage.SetAll(values)
}

func TestStore_PersistFailureKeepsPreviousSession(t *testing.T) {
	mem := session.NewMemoryStorage()
	seed, err := session.NewStore(mem)
	require.NoError(t, err)
	old := session.Session{Token: "old-token", User: session.User{ID: 1, Name: "Old"}}
	require.NoError(t, seed.Persist(old))

	store, err := session.NewStore(userKeyFailStorage{mem})
	require.NoError(t, err)

	err = store.Persist(session.Session{Token: "new-token", User: session.User{ID: 2, Name: "New"}})
	require.ErrorIs(t, err, errDiskFull)
	errutil.AssertErrorCode(t, err, "SESSION_PERSIST_FAILED")

	got, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, old, got, "token and user must never mix across sessions")
}

func TestFileStorage_SetAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	storage := session.NewFileStorage(path)
	require.NoError(t, storage.Set("keep", "1"))

	require.NoError(t, storage.SetAll(map[string]string{"token": "t", "user": "{}"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var values map[string]string
	require.NoError(t, json.Unmarshal(data, &values))
	assert.Equal(t, map[string]string{"keep": "1", "token": "t", "user": "{}"}, values)
}
