package patients

import (
	"context"
	"testing"
	"time"
)

type stubStore struct {
	record *Record
	calls  int
}

func (s *stubStore) FindByID(ctx context.Context, id string) (*Record, error) {
	s.calls++
	if s.record != nil && s.record.ID == id {
		return s.record, nil
	}
	return nil, ErrNotFound
}

func (s *stubStore) FindByUserID(ctx context.Context, userID string) (*Record, error) {
	s.calls++
	if s.record != nil && s.record.UserID == userID {
		return s.record, nil
	}
	return nil, ErrNotFound
}

func (s *stubStore) Ready(ctx context.Context) bool { return true }

func TestCachedStoreFallsThroughWithoutCache(t *testing.T) {
	inner := &stubStore{record: &Record{ID: "p-1", UserID: "u-1", Age: 60}}
	store := NewCachedStore(inner, nil, time.Minute)

	rec, err := store.FindByID(context.Background(), "p-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Age != 60 {
		t.Fatalf("expected the stored record, got %+v", rec)
	}
	if inner.calls != 1 {
		t.Fatalf("expected one repository call, got %d", inner.calls)
	}
}

func TestCachedStorePropagatesNotFound(t *testing.T) {
	store := NewCachedStore(&stubStore{}, nil, time.Minute)

	if _, err := store.FindByUserID(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
