// Package storage is the local key-value store of the client: the session
// triple, the profile-completion flag and a cached copy of the profile form.
//
// Keys are namespaced with "@" and kept in the kv repository. Multi-key
// writes go through the repository's atomic batch operations.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ehimavote/evote/internal/client/models"
	"github.com/ehimavote/evote/internal/client/repositories/kv"
)

const (
	KeyToken            = "@user_token"
	KeyUserID           = "@user_id"
	KeyEmail            = "@user_email"
	KeyProfileCompleted = "@profile_completed"
	KeyUserData         = "@user_data"
)

// SessionKeys are removed together on logout.
var SessionKeys = []string{KeyToken, KeyUserID, KeyEmail, KeyProfileCompleted, KeyUserData}

// StorageError reports a failed local read or write.
type StorageError struct {
	Op   string
	Keys []string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s [%s]: %v", e.Op, strings.Join(e.Keys, " "), e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

type Store struct {
	repo kv.Repository
}

func New(repo kv.Repository) *Store {
	return &Store{repo: repo}
}

// SaveSession writes token, user id and email in one batch.
func (s *Store) SaveSession(ctx context.Context, session models.Session) error {
	pairs := []kv.Pair{
		{Key: KeyToken, Value: []byte(session.Token)},
		{Key: KeyUserID, Value: []byte(session.UserID)},
		{Key: KeyEmail, Value: []byte(session.Email)},
	}
	if err := s.repo.SetMany(ctx, pairs); err != nil {
		return &StorageError{Op: "save session", Keys: []string{KeyToken, KeyUserID, KeyEmail}, Err: err}
	}
	return nil
}

func (s *Store) Token(ctx context.Context) (string, bool, error) {
	return s.getString(ctx, KeyToken)
}

func (s *Store) UserID(ctx context.Context) (string, bool, error) {
	return s.getString(ctx, KeyUserID)
}

func (s *Store) Email(ctx context.Context) (string, bool, error) {
	return s.getString(ctx, KeyEmail)
}

// ClearSession removes the session triple and every profile cache key.
func (s *Store) ClearSession(ctx context.Context) error {
	if err := s.repo.DeleteMany(ctx, SessionKeys); err != nil {
		return &StorageError{Op: "clear session", Keys: SessionKeys, Err: err}
	}
	return nil
}

func (s *Store) SetProfileCompleted(ctx context.Context, completed bool) error {
	value := "false"
	if completed {
		value = "true"
	}
	if err := s.repo.Set(ctx, KeyProfileCompleted, []byte(value)); err != nil {
		return &StorageError{Op: "set profile completed", Keys: []string{KeyProfileCompleted}, Err: err}
	}
	return nil
}

// ProfileCompleted reports the cached flag. Only the literal "true" counts.
func (s *Store) ProfileCompleted(ctx context.Context) (bool, error) {
	v, _, err := s.getString(ctx, KeyProfileCompleted)
	if err != nil {
		return false, err
	}
	return v == "true", nil
}

func (s *Store) SaveProfile(ctx context.Context, profile models.UserProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return &StorageError{Op: "save profile", Keys: []string{KeyUserData}, Err: err}
	}
	if err := s.repo.Set(ctx, KeyUserData, data); err != nil {
		return &StorageError{Op: "save profile", Keys: []string{KeyUserData}, Err: err}
	}
	return nil
}

// Profile returns the cached profile, or nil when none was saved.
func (s *Store) Profile(ctx context.Context) (*models.UserProfile, error) {
	data, found, err := s.repo.Get(ctx, KeyUserData)
	if err != nil {
		return nil, &StorageError{Op: "get", Keys: []string{KeyUserData}, Err: err}
	}
	if !found || len(data) == 0 {
		return nil, nil
	}

	var p models.UserProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, &StorageError{Op: "decode profile", Keys: []string{KeyUserData}, Err: err}
	}
	return &p, nil
}

func (s *Store) getString(ctx context.Context, key string) (string, bool, error) {
	v, found, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", false, &StorageError{Op: "get", Keys: []string{key}, Err: err}
	}
	if !found || len(v) == 0 {
		return "", false, nil
	}
	return string(v), true, nil
}
