package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"sukasamasuka/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrJobPostNotFound = errors.New("job post not found")

type JobPost struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	JobName          string
	JobGrade         string
	CurrentLocation  string
	ExpectedLocation string
	CreatedAt        time.Time
}

type JobPostRepository interface {
	ListAll(ctx context.Context) ([]JobPost, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]JobPost, error)
	GetByID(ctx context.Context, id uuid.UUID) (JobPost, error)
	// CreateTrimming inserts p and, in the same transaction, deletes the
	// owner's oldest posts beyond keep. Returns the created row and the ids
	// of any evicted posts.
	CreateTrimming(ctx context.Context, p JobPost, keep int) (JobPost, []uuid.UUID, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresJobPostRepository struct {
	db database.DB
}

func NewPostgresJobPostRepository(db database.DB) *PostgresJobPostRepository {
	return &PostgresJobPostRepository{db: db}
}

const jobPostColumns = `id, user_id, job_name, job_grade, current_location, expected_location, created_at`

func scanJobPost(row database.Row) (JobPost, error) {
	var p JobPost
	err := row.Scan(&p.ID, &p.UserID, &p.JobName, &p.JobGrade, &p.CurrentLocation, &p.ExpectedLocation, &p.CreatedAt)
	return p, err
}

func (r *PostgresJobPostRepository) ListAll(ctx context.Context) ([]JobPost, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+jobPostColumns+`
		 FROM job_posts
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobPosts(rows)
}

func (r *PostgresJobPostRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]JobPost, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+jobPostColumns+`
		 FROM job_posts
		 WHERE user_id = $1
		 ORDER BY created_at ASC`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobPosts(rows)
}

func (r *PostgresJobPostRepository) GetByID(ctx context.Context, id uuid.UUID) (JobPost, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+jobPostColumns+` FROM job_posts WHERE id = $1`,
		id,
	)
	p, err := scanJobPost(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return JobPost{}, ErrJobPostNotFound
		}
		return JobPost{}, err
	}
	return p, nil
}

func (r *PostgresJobPostRepository) CreateTrimming(ctx context.Context, p JobPost, keep int) (JobPost, []uuid.UUID, error) {
	if keep < 1 {
		keep = 1
	}
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return JobPost{}, nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	row := tx.QueryRow(ctx,
		`INSERT INTO job_posts (id, user_id, job_name, job_grade, current_location, expected_location)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+jobPostColumns,
		p.ID, p.UserID, p.JobName, p.JobGrade, p.CurrentLocation, p.ExpectedLocation,
	)
	created, err := scanJobPost(row)
	if err != nil {
		return JobPost{}, nil, err
	}

	// Insert-then-trim: a failure anywhere rolls everything back, so the
	// owner never ends up with fewer posts than before the call.
	evictedRows, err := tx.Query(ctx,
		`DELETE FROM job_posts
		 WHERE id IN (
			SELECT id FROM job_posts
			WHERE user_id = $1
			ORDER BY created_at DESC, id DESC
			OFFSET $2
		 )
		 RETURNING id`,
		p.UserID, keep,
	)
	if err != nil {
		return JobPost{}, nil, err
	}
	var evicted []uuid.UUID
	for evictedRows.Next() {
		var id uuid.UUID
		if err := evictedRows.Scan(&id); err != nil {
			evictedRows.Close()
			return JobPost{}, nil, err
		}
		evicted = append(evicted, id)
	}
	if err := evictedRows.Err(); err != nil {
		evictedRows.Close()
		return JobPost{}, nil, err
	}
	evictedRows.Close()

	if err := tx.Commit(ctx); err != nil {
		return JobPost{}, nil, err
	}
	return created, evicted, nil
}

func (r *PostgresJobPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM job_posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrJobPostNotFound
	}
	return nil
}

func collectJobPosts(rows database.Rows) ([]JobPost, error) {
	out := make([]JobPost, 0)
	for rows.Next() {
		var p JobPost
		if err := rows.Scan(&p.ID, &p.UserID, &p.JobName, &p.JobGrade, &p.CurrentLocation, &p.ExpectedLocation, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
