package usecase

import (
	"context"
	"testing"
	"time"

	"sukasamasuka/internal/repository"

	"github.com/google/uuid"
)

func TestMatchListForUser_Tiers(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	posts := swapPair(a, b)

	// Same mirrored states but a different district and grade: partial tier.
	partial := repository.JobPost{
		ID: uuid.New(), UserID: c,
		JobName: "Pegawai Tadbir", JobGrade: "N44",
		CurrentLocation: "Johor, Muar", ExpectedLocation: "Selangor, Klang",
		CreatedAt: time.Now().UTC(),
	}
	posts = append(posts, partial)

	uc := NewMatchUsecase(&mockJobPostRepo{posts: posts}, newFakeStore(), nil)
	matches, err := uc.ListForUser(context.Background(), a)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected matches for 1 post, got %d", len(matches))
	}
	m := matches[0]
	if len(m.Exact) != 1 || m.Exact[0].UserID != b {
		t.Fatalf("exact = %+v", m.Exact)
	}
	if len(m.StateJob) != 1 || m.StateJob[0].ID != partial.ID {
		t.Fatalf("state-job = %+v", m.StateJob)
	}
}

func TestMatchListForUser_CacheHit(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	repo := &mockJobPostRepo{posts: swapPair(a, b)}
	store := newFakeStore()
	uc := NewMatchUsecase(repo, store, nil)

	first, err := uc.ListForUser(context.Background(), a)
	if err != nil {
		t.Fatalf("first list: %v", err)
	}

	// Break the repo; a cached read must not touch it.
	repo.err = context.DeadlineExceeded
	second, err := uc.ListForUser(context.Background(), a)
	if err != nil {
		t.Fatalf("cached list: %v", err)
	}
	if len(second) != len(first) {
		t.Fatalf("cached result differs: %d vs %d", len(second), len(first))
	}

	uc.InvalidateAll(context.Background())
	if _, err := uc.ListForUser(context.Background(), a); err == nil {
		t.Fatalf("expected repo error after invalidation")
	}
}

func TestMatchListCyclesForUser(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	mk := func(owner uuid.UUID, current, expected string) repository.JobPost {
		return repository.JobPost{
			ID: uuid.New(), UserID: owner,
			JobName: "Pegawai Tadbir", JobGrade: "N41",
			CurrentLocation: current, ExpectedLocation: expected,
			CreatedAt: time.Now().UTC(),
		}
	}
	posts := []repository.JobPost{
		mk(a, "Selangor, Petaling", "Johor, Johor Bahru"),
		mk(b, "Johor, Johor Bahru", "Perak, Kinta"),
		mk(c, "Perak, Kinta", "Selangor, Petaling"),
	}

	uc := NewMatchUsecase(&mockJobPostRepo{posts: posts}, newFakeStore(), nil)
	cycles, err := uc.ListCyclesForUser(context.Background(), a)
	if err != nil {
		t.Fatalf("cycles: %v", err)
	}
	if len(cycles) != 1 {
		t.Fatalf("expected 1 cycle, got %d", len(cycles))
	}
	if len(cycles[0].Posts) != 3 {
		t.Fatalf("expected 3 posts in cycle, got %d", len(cycles[0].Posts))
	}

	// A user outside the cycle sees none.
	outsider, err := uc.ListCyclesForUser(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("outsider cycles: %v", err)
	}
	if len(outsider) != 0 {
		t.Fatalf("outsider should see no cycles, got %d", len(outsider))
	}
}
