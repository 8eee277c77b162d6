package repository

import (
	"context"
	"database/sql"

	"sukasamasuka/internal/database"
	"sukasamasuka/internal/domain/user"

	"github.com/google/uuid"
)

// PostgresUserRepository runs over the database/sql bridge with prepared
// statements; auth queries are hot and identical on every call.
type PostgresUserRepository struct {
	stmtCreate      *sql.Stmt
	stmtGetByID     *sql.Stmt
	stmtGetByEmail  *sql.Stmt
	stmtExistsEmail *sql.Stmt
}

func NewPostgresUserRepository(db database.DB) (*PostgresUserRepository, error) {
	r := &PostgresUserRepository{}
	sqlDB := db.SQLDB()

	var err error
	r.stmtCreate, err = sqlDB.PrepareContext(
		context.Background(),
		`INSERT INTO users (id, email, password_hash) VALUES ($1, $2, $3)`,
	)
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	r.stmtGetByID, err = sqlDB.PrepareContext(
		context.Background(),
		`SELECT id, email, password_hash, created_at, updated_at FROM users WHERE id = $1`,
	)
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	r.stmtGetByEmail, err = sqlDB.PrepareContext(
		context.Background(),
		`SELECT id, email, password_hash, created_at, updated_at FROM users WHERE email = $1`,
	)
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	r.stmtExistsEmail, err = sqlDB.PrepareContext(
		context.Background(),
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`,
	)
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	return r, nil
}

func (r *PostgresUserRepository) Close() error {
	var firstErr error
	closeStmt := func(s *sql.Stmt) {
		if s == nil {
			return
		}
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	closeStmt(r.stmtCreate)
	closeStmt(r.stmtGetByID)
	closeStmt(r.stmtGetByEmail)
	closeStmt(r.stmtExistsEmail)

	return firstErr
}

func (r *PostgresUserRepository) Create(ctx context.Context, u user.User) error {
	_, err := r.stmtCreate.ExecContext(ctx, u.ID, u.Email, u.PasswordHash)
	return err
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.stmtGetByID.QueryRowContext(ctx, id)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.stmtGetByEmail.QueryRowContext(ctx, email)
	return scanUser(row)
}

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := r.stmtExistsEmail.QueryRowContext(ctx, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}
