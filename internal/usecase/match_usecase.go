package usecase

import (
	"context"
	"log"
	"time"

	"sukasamasuka/internal/domain/matching"
	"sukasamasuka/internal/repository"

	"github.com/google/uuid"
)

const (
	matchCacheTTL        = 2 * time.Minute
	matchCacheKeyPrefix  = "matches:user:"
	matchCachePatternAll = "matches:user:*"
)

// PostMatches carries the match tiers for one of the caller's posts.
type PostMatches struct {
	Post     repository.JobPost
	Exact    []repository.JobPost
	StateJob []repository.JobPost
}

// SwapCycle is a chain of posts where each expected location is the next
// post's current location, closing back on the first.
type SwapCycle struct {
	Posts []repository.JobPost
}

type MatchUsecase interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]PostMatches, error)
	ListCyclesForUser(ctx context.Context, userID uuid.UUID) ([]SwapCycle, error)
	InvalidateAll(ctx context.Context)
}

// matchCache is the slice of the Redis cache the match usecase touches.
type matchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type Matches struct {
	posts  repository.JobPostRepository
	cache  matchCache
	logger *log.Logger
}

func NewMatchUsecase(posts repository.JobPostRepository, cache matchCache, logger *log.Logger) *Matches {
	return &Matches{posts: posts, cache: cache, logger: logger}
}

type cachedMatches struct {
	Matches []PostMatches `json:"matches"`
	Cycles  []SwapCycle   `json:"cycles"`
}

func (u *Matches) ListForUser(ctx context.Context, userID uuid.UUID) ([]PostMatches, error) {
	if cached, ok := u.fromCache(ctx, userID); ok {
		return cached.Matches, nil
	}
	computed, err := u.compute(ctx, userID)
	if err != nil {
		return nil, err
	}
	return computed.Matches, nil
}

func (u *Matches) ListCyclesForUser(ctx context.Context, userID uuid.UUID) ([]SwapCycle, error) {
	if cached, ok := u.fromCache(ctx, userID); ok {
		return cached.Cycles, nil
	}
	computed, err := u.compute(ctx, userID)
	if err != nil {
		return nil, err
	}
	return computed.Cycles, nil
}

// InvalidateAll drops every user's cached matches. Any post change can flip
// matches for users other than the author, so invalidation is global.
func (u *Matches) InvalidateAll(ctx context.Context) {
	if err := u.cache.DeleteByPattern(ctx, matchCachePatternAll); err != nil && u.logger != nil {
		u.logger.Printf("[Match] cache invalidation failed | err=%v", err)
	}
}

func (u *Matches) fromCache(ctx context.Context, userID uuid.UUID) (cachedMatches, bool) {
	var cached cachedMatches
	found, err := u.cache.GetJSON(ctx, matchCacheKeyPrefix+userID.String(), &cached)
	if err != nil || !found {
		return cachedMatches{}, false
	}
	return cached, true
}

func (u *Matches) compute(ctx context.Context, userID uuid.UUID) (cachedMatches, error) {
	all, err := u.posts.ListAll(ctx)
	if err != nil {
		return cachedMatches{}, ErrInternal
	}

	byID := make(map[uuid.UUID]repository.JobPost, len(all))
	pool := make([]matching.Posting, 0, len(all))
	for _, p := range all {
		byID[p.ID] = p
		pool = append(pool, toPosting(p))
	}

	out := cachedMatches{Matches: []PostMatches{}, Cycles: []SwapCycle{}}
	for _, p := range all {
		if p.UserID != userID {
			continue
		}
		found := matching.FindForPosting(toPosting(p), pool)
		out.Matches = append(out.Matches, PostMatches{
			Post:     p,
			Exact:    resolvePosts(found.Exact, byID),
			StateJob: resolvePosts(found.StateJob, byID),
		})
	}

	for _, c := range matching.FindCycles(pool, matching.DefaultMaxCycleLen) {
		if !c.Involves(userID) {
			continue
		}
		out.Cycles = append(out.Cycles, SwapCycle{Posts: resolvePosts(c.Postings, byID)})
	}

	if err := u.cache.SetJSON(ctx, matchCacheKeyPrefix+userID.String(), out, matchCacheTTL); err != nil && u.logger != nil {
		u.logger.Printf("[Match] cache write failed | user=%s | err=%v", userID, err)
	}
	return out, nil
}

func toPosting(p repository.JobPost) matching.Posting {
	return matching.Posting{
		ID:        p.ID,
		OwnerID:   p.UserID,
		JobTitle:  p.JobName,
		JobGrade:  p.JobGrade,
		Current:   p.CurrentLocation,
		Expected:  p.ExpectedLocation,
		CreatedAt: p.CreatedAt,
	}
}

func resolvePosts(postings []matching.Posting, byID map[uuid.UUID]repository.JobPost) []repository.JobPost {
	out := make([]repository.JobPost, 0, len(postings))
	for _, m := range postings {
		if p, ok := byID[m.ID]; ok {
			out = append(out, p)
		}
	}
	return out
}
