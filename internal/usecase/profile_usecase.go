package usecase

import (
	"context"
	"errors"
	"strings"

	"sukasamasuka/internal/domain/connect"
	"sukasamasuka/internal/domain/user"
	"sukasamasuka/internal/repository"

	"github.com/google/uuid"
)

type UpdateProfileInput struct {
	FullName    string
	Email       string
	PhoneNumber string
}

type ProfileUsecase interface {
	Get(ctx context.Context, userID uuid.UUID) (repository.Profile, error)
	Update(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (repository.Profile, error)
}

type Profiles struct {
	profiles repository.ProfileRepository
	users    user.Repository
}

func NewProfileUsecase(profiles repository.ProfileRepository, users user.Repository) *Profiles {
	return &Profiles{profiles: profiles, users: users}
}

// Get falls back to a skeleton profile built from the account when the user
// never filled theirs in.
func (u *Profiles) Get(ctx context.Context, userID uuid.UUID) (repository.Profile, error) {
	p, err := u.profiles.GetByUserID(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, repository.ErrProfileNotFound) {
		return repository.Profile{}, ErrInternal
	}

	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return repository.Profile{}, ErrProfileNotFound
		}
		return repository.Profile{}, ErrInternal
	}
	return repository.Profile{UserID: usr.ID, Email: usr.Email}, nil
}

func (u *Profiles) Update(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (repository.Profile, error) {
	fullName := strings.TrimSpace(in.FullName)
	email := strings.TrimSpace(strings.ToLower(in.Email))
	phone := strings.TrimSpace(in.PhoneNumber)

	if fullName == "" || email == "" {
		return repository.Profile{}, ErrInvalidInput
	}
	if phone != "" && !connect.ValidMobile(phone) {
		return repository.Profile{}, ErrInvalidPhoneNumber
	}

	p, err := u.profiles.Upsert(ctx, repository.Profile{
		UserID:      userID,
		FullName:    fullName,
		Email:       email,
		PhoneNumber: phone,
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.Profile{}, ErrUnauthorized
		}
		return repository.Profile{}, ErrInternal
	}
	return p, nil
}
