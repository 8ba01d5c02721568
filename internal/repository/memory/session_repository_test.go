package memory

import (
	"testing"
	"time"

	"pm-studio-be/pkg/store"
)

func TestSessionRepositoryRoundTrip(t *testing.T) {
	repo := NewSessionRepository(time.Hour)

	sess := &store.Session{ID: "s1", ParticipantName: "Alex"}
	repo.Save(sess)

	got, found := repo.Get("s1")
	if !found {
		t.Fatal("session not found after Save")
	}
	if got != sess {
		t.Error("Get must return the same session pointer")
	}

	if _, found := repo.Get("unknown"); found {
		t.Error("unknown id must not be found")
	}

	repo.Delete("s1")
	if _, found := repo.Get("s1"); found {
		t.Error("session still present after Delete")
	}
}

func TestSessionRepositoryExpiry(t *testing.T) {
	repo := NewSessionRepository(20 * time.Millisecond)

	repo.Save(&store.Session{ID: "s1"})
	time.Sleep(40 * time.Millisecond)

	if _, found := repo.Get("s1"); found {
		t.Error("session must expire after the TTL")
	}
}

func TestSessionRepositoryTouchExtendsTTL(t *testing.T) {
	repo := NewSessionRepository(50 * time.Millisecond)

	repo.Save(&store.Session{ID: "s1"})
	for i := 0; i < 4; i++ {
		time.Sleep(25 * time.Millisecond)
		repo.Touch("s1")
	}

	if _, found := repo.Get("s1"); !found {
		t.Error("touched session must outlive the original TTL")
	}
}
