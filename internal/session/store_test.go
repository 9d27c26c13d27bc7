package session_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/giftlinkhq/giftlink/internal/session"
)

func TestLoginThenCurrent(t *testing.T) {
	storage := session.NewMemoryStorage()
	store := session.NewStore(storage)

	if err := store.Login("t", "Alice", "a@x.com"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	state, err := store.Current()
	if err != nil {
		t.Fatalf("Current: %v", err)
	}

	if !state.LoggedIn || state.Token != "t" || state.UserName != "Alice" || state.UserEmail != "a@x.com" {
		t.Errorf("state = %+v, want logged-in t/Alice/a@x.com", state)
	}

	// all three values must be persisted, not just in memory
	for key, want := range map[string]string{"auth-token": "t", "name": "Alice", "email": "a@x.com"} {
		got, ok := storage.Get(key)
		if !ok || got != want {
			t.Errorf("storage[%q] = %q (present=%v), want %q", key, got, ok, want)
		}
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	storage := session.NewMemoryStorage()
	store := session.NewStore(storage)

	if err := store.Login("t", "Alice", "a@x.com"); err != nil {
		t.Fatal(err)
	}

	if err := store.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	state, err := store.Current()
	if err != nil {
		t.Fatal(err)
	}

	if state.LoggedIn || state.Token != "" || state.UserName != "" || state.UserEmail != "" {
		t.Errorf("state after logout = %+v, want zero value", state)
	}

	for _, key := range []string{"auth-token", "name", "email"} {
		if _, ok := storage.Get(key); ok {
			t.Errorf("storage key %q still present after logout", key)
		}
	}
}

func TestRestorePicksUpPersistedSession(t *testing.T) {
	storage := session.NewMemoryStorage()

	first := session.NewStore(storage)
	if err := first.Login("tok", "Bea", "b@x.com"); err != nil {
		t.Fatal(err)
	}

	// a fresh store over the same storage mimics an app restart
	second := session.NewStore(storage)
	if err := second.Restore(); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	state, err := second.Current()
	if err != nil {
		t.Fatal(err)
	}

	if !state.LoggedIn || state.Token != "tok" || state.UserName != "Bea" || state.UserEmail != "b@x.com" {
		t.Errorf("restored state = %+v", state)
	}
}

func TestRestoreWithoutTokenStaysLoggedOut(t *testing.T) {
	storage := session.NewMemoryStorage()
	// display fields without a token must not log the user in
	_ = storage.Set("name", "Ghost")

	store := session.NewStore(storage)
	if err := store.Restore(); err != nil {
		t.Fatal(err)
	}

	state, err := store.Current()
	if err != nil {
		t.Fatal(err)
	}

	if state.LoggedIn {
		t.Errorf("state = %+v, want logged out", state)
	}
}

func TestUninitializedStoreFails(t *testing.T) {
	store := session.NewStore(nil)

	if err := store.Restore(); !errors.Is(err, session.ErrStoreUninitialized) {
		t.Errorf("Restore err = %v, want ErrStoreUninitialized", err)
	}

	if err := store.Login("t", "n", "e"); !errors.Is(err, session.ErrStoreUninitialized) {
		t.Errorf("Login err = %v, want ErrStoreUninitialized", err)
	}

	if err := store.Logout(); !errors.Is(err, session.ErrStoreUninitialized) {
		t.Errorf("Logout err = %v, want ErrStoreUninitialized", err)
	}

	if _, err := store.Current(); !errors.Is(err, session.ErrStoreUninitialized) {
		t.Errorf("Current err = %v, want ErrStoreUninitialized", err)
	}
}

func TestFileStorageRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	storage := session.NewFileStorage(path)

	store := session.NewStore(storage)
	if err := store.Login("tok", "Cara", "c@x.com"); err != nil {
		t.Fatal(err)
	}

	reopened := session.NewStore(session.NewFileStorage(path))
	if err := reopened.Restore(); err != nil {
		t.Fatal(err)
	}

	state, err := reopened.Current()
	if err != nil {
		t.Fatal(err)
	}

	if !state.LoggedIn || state.Token != "tok" {
		t.Errorf("state from file = %+v", state)
	}

	if err := store.Logout(); err != nil {
		t.Fatal(err)
	}

	if _, ok := session.NewFileStorage(path).Get("auth-token"); ok {
		t.Errorf("auth-token survived logout in %s", path)
	}
}
