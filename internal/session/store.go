// Package session holds the client-side login state: the issued token and
// the display identity, backed by a small persisted key-value storage so a
// restarted client can pick up where it left off.
package session

import (
	"errors"
	"sync"
)

// ErrStoreUninitialized reports a Store used without a Storage. This is a
// programmer error (wiring, not user input) and is never shown to users.
var ErrStoreUninitialized = errors.New("session store used before initialization")

// storage keys shared with the web client
const (
	tokenKey = "auth-token"
	nameKey  = "name"
	emailKey = "email"
)

type State struct {
	LoggedIn  bool
	Token     string
	UserName  string
	UserEmail string
}

// Storage persists string keys across sessions. Implementations are small:
// a JSON file, or a plain map in tests.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

type Store struct {
	mu      sync.Mutex
	storage Storage
	state   State
}

func NewStore(storage Storage) *Store {
	return &Store{storage: storage}
}

// Restore loads any persisted session. A present token means logged-in;
// missing display fields restore as empty strings, same as the web client.
func (s *Store) Restore() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.storage == nil {
		return ErrStoreUninitialized
	}

	token, ok := s.storage.Get(tokenKey)

	if !ok || token == "" {
		s.state = State{}
		return nil
	}

	name, _ := s.storage.Get(nameKey)
	email, _ := s.storage.Get(emailKey)

	s.state = State{
		LoggedIn:  true,
		Token:     token,
		UserName:  name,
		UserEmail: email,
	}

	return nil
}

// Login records the issued token plus display fields and persists all three.
func (s *Store) Login(token, name, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.storage == nil {
		return ErrStoreUninitialized
	}

	if err := s.storage.Set(tokenKey, token); err != nil {
		return err
	}

	if err := s.storage.Set(nameKey, name); err != nil {
		return err
	}

	if err := s.storage.Set(emailKey, email); err != nil {
		return err
	}

	s.state = State{
		LoggedIn:  true,
		Token:     token,
		UserName:  name,
		UserEmail: email,
	}

	return nil
}

// Logout clears the in-memory state and removes every persisted key.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.storage == nil {
		return ErrStoreUninitialized
	}

	if err := s.storage.Delete(tokenKey); err != nil {
		return err
	}

	if err := s.storage.Delete(nameKey); err != nil {
		return err
	}

	if err := s.storage.Delete(emailKey); err != nil {
		return err
	}

	s.state = State{}

	return nil
}

// Current returns the session state as last restored or mutated.
func (s *Store) Current() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.storage == nil {
		return State{}, ErrStoreUninitialized
	}

	return s.state, nil
}
