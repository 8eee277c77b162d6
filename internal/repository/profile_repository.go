package repository

import (
	"context"
	"database/sql"
	"errors"

	"sukasamasuka/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrProfileNotFound = errors.New("profile not found")

type Profile struct {
	UserID      uuid.UUID
	FullName    string
	Email       string
	PhoneNumber string
}

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (Profile, error)
	Upsert(ctx context.Context, p Profile) (Profile, error)
}

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, full_name, email, phone_number FROM profiles WHERE id = $1`,
		userID,
	)
	var p Profile
	if err := row.Scan(&p.UserID, &p.FullName, &p.Email, &p.PhoneNumber); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Profile{}, ErrProfileNotFound
		}
		return Profile{}, err
	}
	return p, nil
}

func (r *PostgresProfileRepository) Upsert(ctx context.Context, p Profile) (Profile, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO profiles (id, full_name, email, phone_number)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE
		 SET full_name = EXCLUDED.full_name,
		     email = EXCLUDED.email,
		     phone_number = EXCLUDED.phone_number,
		     updated_at = now()
		 RETURNING id, full_name, email, phone_number`,
		p.UserID, p.FullName, p.Email, p.PhoneNumber,
	)
	var out Profile
	if err := row.Scan(&out.UserID, &out.FullName, &out.Email, &out.PhoneNumber); err != nil {
		return Profile{}, err
	}
	return out, nil
}
