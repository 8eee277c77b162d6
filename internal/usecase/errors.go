package usecase

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrInternal            = errors.New("internal error")

	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")

	ErrUnknownJobTitle    = errors.New("unknown job title")
	ErrUnknownJobGrade    = errors.New("unknown job grade for title")
	ErrUnknownLocation    = errors.New("unknown state or district")
	ErrSameLocation       = errors.New("current and expected locations are the same")
	ErrJobPostNotFound    = errors.New("job post not found")
	ErrInvalidPhoneNumber = errors.New("invalid malaysian mobile number")
	ErrSelfConnect        = errors.New("cannot connect with yourself")
	ErrAlreadyConnected   = errors.New("request already accepted")
	ErrRequestNotFound    = errors.New("connect request not found")
	ErrNotRequestReceiver = errors.New("only the receiver can accept")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrChatRoomNotFound   = errors.New("chat room not found")
	ErrNotRoomMember      = errors.New("not a member of this chat room")
	ErrNotConnected       = errors.New("users are not connected")
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
