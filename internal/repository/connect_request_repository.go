package repository

import (
	"context"
	"database/sql"
	"errors"

	"sukasamasuka/internal/database"
	"sukasamasuka/internal/domain/connect"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrConnectRequestNotFound = errors.New("connect request not found")

type ConnectRequestRepository interface {
	// FindByPair returns the request between the two users regardless of
	// which of them is the sender.
	FindByPair(ctx context.Context, a, b uuid.UUID) (connect.Request, error)
	GetByID(ctx context.Context, id uuid.UUID) (connect.Request, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]connect.Request, error)
	Create(ctx context.Context, req connect.Request) (connect.Request, error)
	// Accept records the receiver's phone and flips a pending request to
	// accepted. Only the receiver row matching receiverID is updated.
	Accept(ctx context.Context, id, receiverID uuid.UUID, receiverPhone string) (connect.Request, error)
}

type PostgresConnectRequestRepository struct {
	db database.DB
}

func NewPostgresConnectRequestRepository(db database.DB) *PostgresConnectRequestRepository {
	return &PostgresConnectRequestRepository{db: db}
}

const connectRequestColumns = `id, sender_id, receiver_id, sender_phone, receiver_phone, status`

func scanConnectRequest(row database.Row) (connect.Request, error) {
	var (
		req           connect.Request
		receiverPhone sql.NullString
		status        string
	)
	if err := row.Scan(&req.ID, &req.SenderID, &req.ReceiverID, &req.SenderPhone, &receiverPhone, &status); err != nil {
		return connect.Request{}, err
	}
	req.ReceiverPhone = receiverPhone.String
	parsed, err := connect.ParseStatus(status)
	if err != nil {
		return connect.Request{}, err
	}
	req.Status = parsed
	return req, nil
}

func (r *PostgresConnectRequestRepository) FindByPair(ctx context.Context, a, b uuid.UUID) (connect.Request, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+connectRequestColumns+`
		 FROM connect_requests
		 WHERE (sender_id = $1 AND receiver_id = $2)
		    OR (sender_id = $2 AND receiver_id = $1)`,
		a, b,
	)
	req, err := scanConnectRequest(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return connect.Request{}, ErrConnectRequestNotFound
		}
		return connect.Request{}, err
	}
	return req, nil
}

func (r *PostgresConnectRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (connect.Request, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+connectRequestColumns+` FROM connect_requests WHERE id = $1`,
		id,
	)
	req, err := scanConnectRequest(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return connect.Request{}, ErrConnectRequestNotFound
		}
		return connect.Request{}, err
	}
	return req, nil
}

func (r *PostgresConnectRequestRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]connect.Request, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+connectRequestColumns+`
		 FROM connect_requests
		 WHERE sender_id = $1 OR receiver_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]connect.Request, 0)
	for rows.Next() {
		var (
			req           connect.Request
			receiverPhone sql.NullString
			status        string
		)
		if err := rows.Scan(&req.ID, &req.SenderID, &req.ReceiverID, &req.SenderPhone, &receiverPhone, &status); err != nil {
			return nil, err
		}
		req.ReceiverPhone = receiverPhone.String
		parsed, err := connect.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		req.Status = parsed
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresConnectRequestRepository) Create(ctx context.Context, req connect.Request) (connect.Request, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO connect_requests (id, sender_id, receiver_id, sender_phone, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+connectRequestColumns,
		req.ID, req.SenderID, req.ReceiverID, req.SenderPhone, string(req.Status),
	)
	return scanConnectRequest(row)
}

func (r *PostgresConnectRequestRepository) Accept(ctx context.Context, id, receiverID uuid.UUID, receiverPhone string) (connect.Request, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE connect_requests
		 SET receiver_phone = $3, status = 'accepted'
		 WHERE id = $1 AND receiver_id = $2 AND status = 'pending'
		 RETURNING `+connectRequestColumns,
		id, receiverID, receiverPhone,
	)
	req, err := scanConnectRequest(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return connect.Request{}, ErrConnectRequestNotFound
		}
		return connect.Request{}, err
	}
	return req, nil
}
