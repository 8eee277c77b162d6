package usecase

import (
	"context"
	"errors"
	"testing"

	"sukasamasuka/internal/domain/user"
	"sukasamasuka/internal/repository"

	"github.com/google/uuid"
)

func TestProfileGet_FallsBackToAccount(t *testing.T) {
	userID := uuid.New()
	users := &mockUserRepo{users: map[uuid.UUID]user.User{
		userID: {ID: userID, Email: "aini@example.my"},
	}}
	uc := NewProfileUsecase(&mockProfileRepo{profiles: map[uuid.UUID]repository.Profile{}}, users)

	p, err := uc.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if p.UserID != userID || p.Email != "aini@example.my" {
		t.Fatalf("skeleton profile = %+v, want account id and email", p)
	}
	if p.FullName != "" || p.PhoneNumber != "" {
		t.Fatalf("skeleton profile carries data it should not: %+v", p)
	}
}

func TestProfileGet_UnknownUser(t *testing.T) {
	uc := NewProfileUsecase(
		&mockProfileRepo{profiles: map[uuid.UUID]repository.Profile{}},
		&mockUserRepo{users: map[uuid.UUID]user.User{}},
	)

	if _, err := uc.Get(context.Background(), uuid.New()); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("err = %v, want ErrProfileNotFound", err)
	}
}

func TestProfileUpdate_Validation(t *testing.T) {
	userID := uuid.New()
	profiles := &mockProfileRepo{profiles: map[uuid.UUID]repository.Profile{}}
	uc := NewProfileUsecase(profiles, &mockUserRepo{users: map[uuid.UUID]user.User{}})

	cases := []struct {
		name string
		in   UpdateProfileInput
		want error
	}{
		{"missing name", UpdateProfileInput{Email: "a@b.my"}, ErrInvalidInput},
		{"missing email", UpdateProfileInput{FullName: "Aini"}, ErrInvalidInput},
		{"bad phone", UpdateProfileInput{FullName: "Aini", Email: "a@b.my", PhoneNumber: "12345"}, ErrInvalidPhoneNumber},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := uc.Update(context.Background(), userID, tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestProfileUpdate_NormalizesAndStores(t *testing.T) {
	userID := uuid.New()
	profiles := &mockProfileRepo{profiles: map[uuid.UUID]repository.Profile{}}
	uc := NewProfileUsecase(profiles, &mockUserRepo{users: map[uuid.UUID]user.User{}})

	p, err := uc.Update(context.Background(), userID, UpdateProfileInput{
		FullName:    "  Aini binti Rahman ",
		Email:       " Aini@Example.My ",
		PhoneNumber: "012-3456789",
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if p.FullName != "Aini binti Rahman" {
		t.Fatalf("full name = %q, want trimmed", p.FullName)
	}
	if p.Email != "aini@example.my" {
		t.Fatalf("email = %q, want lowercased", p.Email)
	}
	if stored := profiles.profiles[userID]; stored.PhoneNumber != "012-3456789" {
		t.Fatalf("stored phone = %q", stored.PhoneNumber)
	}
}
