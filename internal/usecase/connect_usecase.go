package usecase

import (
	"context"
	"errors"
	"log"

	"sukasamasuka/internal/domain/connect"
	"sukasamasuka/internal/repository"

	"github.com/google/uuid"
)

// ConnectStatus is the caller-side view of a pair's request. Phone is only
// populated once both sides have shared a number.
type ConnectStatus struct {
	RequestID   uuid.UUID `json:"request_id,omitempty"`
	OtherUserID uuid.UUID `json:"other_user_id"`
	Status      string    `json:"status"`
	Phone       string    `json:"phone,omitempty"`
}

const (
	ConnectStatusNone            = "none"
	ConnectStatusPendingSent     = "pending_sent"
	ConnectStatusPendingReceived = "pending_received"
	ConnectStatusConnected       = "connected"
)

type ConnectUsecase interface {
	Initiate(ctx context.Context, senderID, receiverID uuid.UUID, senderPhone string) (ConnectStatus, error)
	Accept(ctx context.Context, receiverID, requestID uuid.UUID, receiverPhone string) (ConnectStatus, error)
	StatusFor(ctx context.Context, selfID, otherID uuid.UUID) (ConnectStatus, error)
	ListForUser(ctx context.Context, selfID uuid.UUID) ([]ConnectStatus, error)
}

type chatRoomEnsurer interface {
	EnsureRoom(ctx context.Context, a, b uuid.UUID) (repository.ChatRoom, error)
}

// phoneSource supplies a stored number so repeat connects do not force the
// caller to retype one.
type phoneSource interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (repository.Profile, error)
}

type Connects struct {
	requests repository.ConnectRequestRepository
	rooms    chatRoomEnsurer
	phones   phoneSource
	logger   *log.Logger
}

func NewConnectUsecase(requests repository.ConnectRequestRepository, rooms chatRoomEnsurer, phones phoneSource, logger *log.Logger) *Connects {
	return &Connects{requests: requests, rooms: rooms, phones: phones, logger: logger}
}

// resolvePhone falls back to the caller's profile number when the request
// carries none.
func (u *Connects) resolvePhone(ctx context.Context, userID uuid.UUID, phone string) string {
	if phone != "" || u.phones == nil {
		return phone
	}
	profile, err := u.phones.GetByUserID(ctx, userID)
	if err != nil {
		return phone
	}
	return profile.PhoneNumber
}

// Initiate shares the caller's phone number with the other user. If the
// other user already initiated first, the call counts as consent from both
// sides and the request flips straight to accepted.
func (u *Connects) Initiate(ctx context.Context, senderID, receiverID uuid.UUID, senderPhone string) (ConnectStatus, error) {
	if senderID == receiverID {
		return ConnectStatus{}, ErrSelfConnect
	}
	senderPhone = u.resolvePhone(ctx, senderID, senderPhone)
	if !connect.ValidMobile(senderPhone) {
		return ConnectStatus{}, ErrInvalidPhoneNumber
	}

	existing, err := u.requests.FindByPair(ctx, senderID, receiverID)
	if err != nil {
		if !errors.Is(err, repository.ErrConnectRequestNotFound) {
			return ConnectStatus{}, ErrInternal
		}
		created, err := u.requests.Create(ctx, connect.Request{
			ID:          uuid.New(),
			SenderID:    senderID,
			ReceiverID:  receiverID,
			SenderPhone: senderPhone,
			Status:      connect.StatusPending,
		})
		if err != nil {
			if isUniqueViolation(err) {
				// Both sides initiated at once; the pair index kept one
				// row. Re-read and treat ours as the second consent.
				return u.resolveExisting(ctx, senderID, receiverID, senderPhone)
			}
			if isForeignKeyViolation(err) {
				return ConnectStatus{}, ErrRequestNotFound
			}
			return ConnectStatus{}, ErrInternal
		}
		return u.statusFor(senderID, created), nil
	}

	return u.handleExisting(ctx, senderID, senderPhone, existing)
}

func (u *Connects) resolveExisting(ctx context.Context, senderID, receiverID uuid.UUID, senderPhone string) (ConnectStatus, error) {
	existing, err := u.requests.FindByPair(ctx, senderID, receiverID)
	if err != nil {
		return ConnectStatus{}, ErrInternal
	}
	return u.handleExisting(ctx, senderID, senderPhone, existing)
}

func (u *Connects) handleExisting(ctx context.Context, callerID uuid.UUID, callerPhone string, existing connect.Request) (ConnectStatus, error) {
	switch {
	case existing.Status == connect.StatusAccepted:
		return u.statusFor(callerID, existing), nil
	case existing.SenderID == callerID:
		// Repeat initiate from the same side is a no-op.
		return u.statusFor(callerID, existing), nil
	default:
		return u.acceptPending(ctx, callerID, callerPhone, existing)
	}
}

// Accept records the receiver's number on a pending request, completing the
// exchange.
func (u *Connects) Accept(ctx context.Context, receiverID, requestID uuid.UUID, receiverPhone string) (ConnectStatus, error) {
	receiverPhone = u.resolvePhone(ctx, receiverID, receiverPhone)
	if !connect.ValidMobile(receiverPhone) {
		return ConnectStatus{}, ErrInvalidPhoneNumber
	}

	req, err := u.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrConnectRequestNotFound) {
			return ConnectStatus{}, ErrRequestNotFound
		}
		return ConnectStatus{}, ErrInternal
	}
	if req.ReceiverID != receiverID {
		return ConnectStatus{}, ErrNotRequestReceiver
	}
	if req.Status == connect.StatusAccepted {
		return ConnectStatus{}, ErrAlreadyConnected
	}

	return u.acceptPending(ctx, receiverID, receiverPhone, req)
}

func (u *Connects) acceptPending(ctx context.Context, receiverID uuid.UUID, receiverPhone string, req connect.Request) (ConnectStatus, error) {
	accepted, err := u.requests.Accept(ctx, req.ID, receiverID, receiverPhone)
	if err != nil {
		if errors.Is(err, repository.ErrConnectRequestNotFound) {
			// The row moved under us; report whatever it is now.
			return u.StatusFor(ctx, receiverID, req.SenderID)
		}
		return ConnectStatus{}, ErrInternal
	}

	if u.rooms != nil {
		if _, err := u.rooms.EnsureRoom(ctx, accepted.SenderID, accepted.ReceiverID); err != nil && u.logger != nil {
			u.logger.Printf("[Connect] chat room create failed | request=%s | err=%v", accepted.ID, err)
		}
	}
	return u.statusFor(receiverID, accepted), nil
}

func (u *Connects) StatusFor(ctx context.Context, selfID, otherID uuid.UUID) (ConnectStatus, error) {
	req, err := u.requests.FindByPair(ctx, selfID, otherID)
	if err != nil {
		if errors.Is(err, repository.ErrConnectRequestNotFound) {
			return ConnectStatus{OtherUserID: otherID, Status: ConnectStatusNone}, nil
		}
		return ConnectStatus{}, ErrInternal
	}
	return u.statusFor(selfID, req), nil
}

func (u *Connects) ListForUser(ctx context.Context, selfID uuid.UUID) ([]ConnectStatus, error) {
	reqs, err := u.requests.ListForUser(ctx, selfID)
	if err != nil {
		return nil, ErrInternal
	}
	out := make([]ConnectStatus, 0, len(reqs))
	for _, req := range reqs {
		out = append(out, u.statusFor(selfID, req))
	}
	return out, nil
}

func (u *Connects) statusFor(selfID uuid.UUID, req connect.Request) ConnectStatus {
	rel := connect.RelationFor(selfID, &req)

	other := req.SenderID
	if other == selfID {
		other = req.ReceiverID
	}

	st := ConnectStatus{RequestID: req.ID, OtherUserID: other}
	switch rel.Kind {
	case connect.PendingAsSender:
		st.Status = ConnectStatusPendingSent
	case connect.PendingAsReceiver:
		st.Status = ConnectStatusPendingReceived
	case connect.Connected:
		st.Status = ConnectStatusConnected
		st.Phone = rel.Phone
	default:
		st.Status = ConnectStatusNone
	}
	return st
}
