package usecase

import (
	"context"
	"errors"
	"log"

	"sukasamasuka/internal/domain/catalog"
	"sukasamasuka/internal/domain/matching"
	"sukasamasuka/internal/repository"

	"github.com/google/uuid"
)

// MaxActivePosts is the cap on live posts per user. Creating a fourth post
// evicts the oldest one instead of failing.
const MaxActivePosts = 3

type CreateJobPostInput struct {
	JobTitle         string
	JobGrade         string
	CurrentState     string
	CurrentDistrict  string
	ExpectedState    string
	ExpectedDistrict string
}

type JobPostUsecase interface {
	Create(ctx context.Context, ownerID uuid.UUID, in CreateJobPostInput) (repository.JobPost, []uuid.UUID, error)
	ListMine(ctx context.Context, ownerID uuid.UUID) ([]repository.JobPost, error)
	ListAll(ctx context.Context) ([]repository.JobPost, error)
	Delete(ctx context.Context, ownerID, postID uuid.UUID) error
}

type matchCacheInvalidator interface {
	InvalidateAll(ctx context.Context)
}

type JobPosts struct {
	posts  repository.JobPostRepository
	caches matchCacheInvalidator
	logger *log.Logger
}

func NewJobPostUsecase(posts repository.JobPostRepository, caches matchCacheInvalidator, logger *log.Logger) *JobPosts {
	return &JobPosts{posts: posts, caches: caches, logger: logger}
}

func (u *JobPosts) Create(ctx context.Context, ownerID uuid.UUID, in CreateJobPostInput) (repository.JobPost, []uuid.UUID, error) {
	if !catalog.ValidJobTitle(in.JobTitle) {
		return repository.JobPost{}, nil, ErrUnknownJobTitle
	}
	if !catalog.ValidGrade(in.JobTitle, in.JobGrade) {
		return repository.JobPost{}, nil, ErrUnknownJobGrade
	}
	if !catalog.ValidLocation(in.CurrentState, in.CurrentDistrict) {
		return repository.JobPost{}, nil, ErrUnknownLocation
	}
	if !catalog.ValidLocation(in.ExpectedState, in.ExpectedDistrict) {
		return repository.JobPost{}, nil, ErrUnknownLocation
	}

	current := matching.Location{State: in.CurrentState, District: in.CurrentDistrict}
	expected := matching.Location{State: in.ExpectedState, District: in.ExpectedDistrict}
	if current == expected {
		return repository.JobPost{}, nil, ErrSameLocation
	}

	created, evicted, err := u.posts.CreateTrimming(ctx, repository.JobPost{
		ID:               uuid.New(),
		UserID:           ownerID,
		JobName:          in.JobTitle,
		JobGrade:         in.JobGrade,
		CurrentLocation:  current.String(),
		ExpectedLocation: expected.String(),
	}, MaxActivePosts)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.JobPost{}, nil, ErrUnauthorized
		}
		return repository.JobPost{}, nil, ErrInternal
	}

	if len(evicted) > 0 && u.logger != nil {
		u.logger.Printf("[JobPost] evicted oldest posts | user=%s | count=%d", ownerID, len(evicted))
	}
	if u.caches != nil {
		u.caches.InvalidateAll(ctx)
	}
	return created, evicted, nil
}

func (u *JobPosts) ListMine(ctx context.Context, ownerID uuid.UUID) ([]repository.JobPost, error) {
	posts, err := u.posts.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, ErrInternal
	}
	return posts, nil
}

// ListAll is the browse feed: everyone's posts, newest first.
func (u *JobPosts) ListAll(ctx context.Context) ([]repository.JobPost, error) {
	posts, err := u.posts.ListAll(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return posts, nil
}

func (u *JobPosts) Delete(ctx context.Context, ownerID, postID uuid.UUID) error {
	post, err := u.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrJobPostNotFound) {
			return ErrJobPostNotFound
		}
		return ErrInternal
	}
	if post.UserID != ownerID {
		return ErrForbidden
	}
	if err := u.posts.Delete(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrJobPostNotFound) {
			return ErrJobPostNotFound
		}
		return ErrInternal
	}
	if u.caches != nil {
		u.caches.InvalidateAll(ctx)
	}
	return nil
}
