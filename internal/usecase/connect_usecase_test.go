package usecase

import (
	"context"
	"errors"
	"testing"

	"sukasamasuka/internal/domain/connect"
	"sukasamasuka/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type mockConnectRepo struct {
	requests []connect.Request
	// missFinds makes the next N FindByPair calls report not-found, to
	// simulate a row that lands between the lookup and the insert.
	missFinds int
}

func (m *mockConnectRepo) FindByPair(_ context.Context, a, b uuid.UUID) (connect.Request, error) {
	if m.missFinds > 0 {
		m.missFinds--
		return connect.Request{}, repository.ErrConnectRequestNotFound
	}
	for _, r := range m.requests {
		if (r.SenderID == a && r.ReceiverID == b) || (r.SenderID == b && r.ReceiverID == a) {
			return r, nil
		}
	}
	return connect.Request{}, repository.ErrConnectRequestNotFound
}

func (m *mockConnectRepo) GetByID(_ context.Context, id uuid.UUID) (connect.Request, error) {
	for _, r := range m.requests {
		if r.ID == id {
			return r, nil
		}
	}
	return connect.Request{}, repository.ErrConnectRequestNotFound
}

func (m *mockConnectRepo) ListForUser(_ context.Context, userID uuid.UUID) ([]connect.Request, error) {
	var out []connect.Request
	for _, r := range m.requests {
		if r.Involves(userID) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockConnectRepo) Create(_ context.Context, req connect.Request) (connect.Request, error) {
	for _, r := range m.requests {
		if r.Involves(req.SenderID) && r.Involves(req.ReceiverID) {
			return connect.Request{}, &pgconn.PgError{Code: "23505"}
		}
	}
	m.requests = append(m.requests, req)
	return req, nil
}

func (m *mockConnectRepo) Accept(_ context.Context, id, receiverID uuid.UUID, receiverPhone string) (connect.Request, error) {
	for i, r := range m.requests {
		if r.ID == id && r.ReceiverID == receiverID && r.Status == connect.StatusPending {
			m.requests[i].ReceiverPhone = receiverPhone
			m.requests[i].Status = connect.StatusAccepted
			return m.requests[i], nil
		}
	}
	return connect.Request{}, repository.ErrConnectRequestNotFound
}

type mockRoomEnsurer struct {
	calls int
}

func (m *mockRoomEnsurer) EnsureRoom(_ context.Context, a, b uuid.UUID) (repository.ChatRoom, error) {
	m.calls++
	return repository.ChatRoom{ID: uuid.New(), UserA: a, UserB: b}, nil
}

func TestConnectInitiate_InvalidPhone(t *testing.T) {
	uc := NewConnectUsecase(&mockConnectRepo{}, nil, nil, nil)
	if _, err := uc.Initiate(context.Background(), uuid.New(), uuid.New(), "12345"); !errors.Is(err, ErrInvalidPhoneNumber) {
		t.Fatalf("expected ErrInvalidPhoneNumber, got %v", err)
	}
}

func TestConnectInitiate_Self(t *testing.T) {
	uc := NewConnectUsecase(&mockConnectRepo{}, nil, nil, nil)
	id := uuid.New()
	if _, err := uc.Initiate(context.Background(), id, id, "0123456789"); !errors.Is(err, ErrSelfConnect) {
		t.Fatalf("expected ErrSelfConnect, got %v", err)
	}
}

func TestConnectInitiate_CreatesPending(t *testing.T) {
	repo := &mockConnectRepo{}
	uc := NewConnectUsecase(repo, nil, nil, nil)
	a, b := uuid.New(), uuid.New()

	st, err := uc.Initiate(context.Background(), a, b, "0123456789")
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}
	if st.Status != ConnectStatusPendingSent {
		t.Fatalf("status = %q", st.Status)
	}
	if st.Phone != "" {
		t.Fatalf("phone leaked before acceptance: %q", st.Phone)
	}

	// Repeat from the sender is a no-op.
	st2, err := uc.Initiate(context.Background(), a, b, "0123456789")
	if err != nil {
		t.Fatalf("repeat initiate: %v", err)
	}
	if st2.Status != ConnectStatusPendingSent || len(repo.requests) != 1 {
		t.Fatalf("repeat initiate created a second row: %v", repo.requests)
	}
}

func TestConnectInitiate_ByReceiverActsAsAccept(t *testing.T) {
	repo := &mockConnectRepo{}
	rooms := &mockRoomEnsurer{}
	uc := NewConnectUsecase(repo, rooms, nil, nil)
	a, b := uuid.New(), uuid.New()

	if _, err := uc.Initiate(context.Background(), a, b, "0123456789"); err != nil {
		t.Fatalf("initiate: %v", err)
	}

	st, err := uc.Initiate(context.Background(), b, a, "0198765432")
	if err != nil {
		t.Fatalf("counter initiate: %v", err)
	}
	if st.Status != ConnectStatusConnected {
		t.Fatalf("status = %q, want connected", st.Status)
	}
	if st.Phone != "0123456789" {
		t.Fatalf("receiver should see sender's phone, got %q", st.Phone)
	}
	if rooms.calls != 1 {
		t.Fatalf("expected one chat room, got %d", rooms.calls)
	}

	// The original sender now sees the receiver's phone.
	senderView, err := uc.StatusFor(context.Background(), a, b)
	if err != nil {
		t.Fatalf("status for sender: %v", err)
	}
	if senderView.Phone != "0198765432" {
		t.Fatalf("sender should see receiver's phone, got %q", senderView.Phone)
	}
}

func TestConnectAccept_OnlyReceiver(t *testing.T) {
	repo := &mockConnectRepo{}
	uc := NewConnectUsecase(repo, &mockRoomEnsurer{}, nil, nil)
	a, b := uuid.New(), uuid.New()

	st, err := uc.Initiate(context.Background(), a, b, "0123456789")
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}

	if _, err := uc.Accept(context.Background(), a, st.RequestID, "0198765432"); !errors.Is(err, ErrNotRequestReceiver) {
		t.Fatalf("expected ErrNotRequestReceiver, got %v", err)
	}

	accepted, err := uc.Accept(context.Background(), b, st.RequestID, "0198765432")
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if accepted.Status != ConnectStatusConnected || accepted.Phone != "0123456789" {
		t.Fatalf("accepted = %+v", accepted)
	}

	if _, err := uc.Accept(context.Background(), b, st.RequestID, "0198765432"); !errors.Is(err, ErrAlreadyConnected) {
		t.Fatalf("expected ErrAlreadyConnected, got %v", err)
	}
}

func TestConnectInitiate_RaceOnPairIndex(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	// Simulate losing the insert race: the pair row lands after our lookup
	// misses, so the unique index rejects our insert and we re-read.
	repo := &mockConnectRepo{
		requests: []connect.Request{{
			ID:          uuid.New(),
			SenderID:    b,
			ReceiverID:  a,
			SenderPhone: "01112345678",
			Status:      connect.StatusPending,
		}},
		missFinds: 1,
	}
	uc := NewConnectUsecase(repo, &mockRoomEnsurer{}, nil, nil)

	st, err := uc.Initiate(context.Background(), a, b, "0123456789")
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}
	if st.Status != ConnectStatusConnected {
		t.Fatalf("losing initiator should become the accepting side, got %q", st.Status)
	}
}

func TestConnectStatusFor_None(t *testing.T) {
	uc := NewConnectUsecase(&mockConnectRepo{}, nil, nil, nil)
	st, err := uc.StatusFor(context.Background(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if st.Status != ConnectStatusNone || st.Phone != "" {
		t.Fatalf("st = %+v", st)
	}
}

func TestConnectInitiate_FallsBackToProfilePhone(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()
	repo := &mockConnectRepo{}
	profiles := &mockProfileRepo{profiles: map[uuid.UUID]repository.Profile{
		alice: {UserID: alice, PhoneNumber: "012-3456789"},
	}}
	uc := NewConnectUsecase(repo, nil, profiles, nil)

	st, err := uc.Initiate(context.Background(), alice, bob, "")
	if err != nil {
		t.Fatalf("Initiate() error = %v", err)
	}
	if st.Status != ConnectStatusPendingSent {
		t.Fatalf("status = %q, want %q", st.Status, ConnectStatusPendingSent)
	}
	if got := repo.requests[0].SenderPhone; got != "012-3456789" {
		t.Fatalf("stored phone = %q, want profile number", got)
	}
}

func TestConnectInitiate_NoPhoneAnywhere(t *testing.T) {
	alice := uuid.New()
	profiles := &mockProfileRepo{profiles: map[uuid.UUID]repository.Profile{}}
	uc := NewConnectUsecase(&mockConnectRepo{}, nil, profiles, nil)

	if _, err := uc.Initiate(context.Background(), alice, uuid.New(), ""); !errors.Is(err, ErrInvalidPhoneNumber) {
		t.Fatalf("expected ErrInvalidPhoneNumber, got %v", err)
	}
}
