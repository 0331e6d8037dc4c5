package store

import (
	"context"
	"errors"
	"testing"

	"github.com/dkeye/VoiceClient/internal/core"
	"github.com/rs/zerolog"
)

func testStore(t *testing.T, s core.LocalStore) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Get(ctx, "authToken"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("Get missing = %v, want ErrNotFound", err)
	}
	if err := s.Set(ctx, "authToken", "abc"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, err := s.Get(ctx, "authToken"); err != nil || v != "abc" {
		t.Fatalf("Get = %q, %v", v, err)
	}
	if err := s.Set(ctx, "authToken", "def"); err != nil {
		t.Fatal(err)
	}
	if v, _ := s.Get(ctx, "authToken"); v != "def" {
		t.Errorf("overwrite: got %q", v)
	}
	if err := s.Delete(ctx, "authToken"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "authToken"); err != nil {
		t.Fatalf("Delete missing: %v", err)
	}
	if _, err := s.Get(ctx, "authToken"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Get after delete = %v", err)
	}
}

func TestMemory(t *testing.T) {
	testStore(t, NewMemory())
}

func TestBadgerInMemory(t *testing.T) {
	s, err := NewBadger(BadgerOptions{InMemory: true, Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("NewBadger: %v", err)
	}
	defer s.Close()
	testStore(t, s)
}

func TestBadgerPersists(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := NewBadger(BadgerOptions{Dir: dir, Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("NewBadger: %v", err)
	}
	if err := s.Set(ctx, "preferredLanguage", "zh"); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = NewBadger(BadgerOptions{Dir: dir, Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if v, err := s.Get(ctx, "preferredLanguage"); err != nil || v != "zh" {
		t.Fatalf("after reopen Get = %q, %v", v, err)
	}
}

func TestBadgerRequiresDir(t *testing.T) {
	if _, err := NewBadger(BadgerOptions{}); err == nil {
		t.Fatal("NewBadger without dir succeeded")
	}
}
