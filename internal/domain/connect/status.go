// Package connect models the consent gate between two matched users.
//
// Status graph:
//
//	NONE ──► PENDING ──► ACCEPTED
//
// ACCEPTED is terminal. There is no rejected or expired state: a request
// can only ever move forward, and exactly one request row exists per
// unordered user pair.
package connect

import (
	"fmt"

	"github.com/google/uuid"
)

// Status mirrors the connect_requests status enum in PostgreSQL.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
)

// ParseStatus converts a raw string to a Status, rejecting unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusPending, StatusAccepted:
		return st, nil
	}
	return "", fmt.Errorf("unknown connect status %q", s)
}

// Request is the state-machine view of a connect request row.
type Request struct {
	ID            uuid.UUID
	SenderID      uuid.UUID
	ReceiverID    uuid.UUID
	SenderPhone   string
	ReceiverPhone string // empty until the receiver accepts
	Status        Status
}

// Involves reports whether userID is either party of the request.
func (r Request) Involves(userID uuid.UUID) bool {
	return r.SenderID == userID || r.ReceiverID == userID
}

// CounterpartyPhone returns the other party's phone number as seen by
// selfID. Only an accepted request discloses anything; a party never sees
// their own number through this path.
func (r Request) CounterpartyPhone(selfID uuid.UUID) (string, bool) {
	if r.Status != StatusAccepted {
		return "", false
	}
	switch selfID {
	case r.SenderID:
		return r.ReceiverPhone, true
	case r.ReceiverID:
		return r.SenderPhone, true
	}
	return "", false
}

// RelationKind enumerates how a pair of users currently stand.
type RelationKind int

const (
	NoRequest RelationKind = iota
	PendingAsSender
	PendingAsReceiver
	Connected
)

// Relation is the tagged view a caller renders from: which side of the
// request they are on, plus the counterparty's phone once connected.
type Relation struct {
	Kind      RelationKind
	RequestID uuid.UUID
	Phone     string
}

// RelationFor derives selfID's relation from the pair's request, if any.
func RelationFor(selfID uuid.UUID, req *Request) Relation {
	if req == nil {
		return Relation{Kind: NoRequest}
	}
	if phone, ok := req.CounterpartyPhone(selfID); ok {
		return Relation{Kind: Connected, RequestID: req.ID, Phone: phone}
	}
	if req.SenderID == selfID {
		return Relation{Kind: PendingAsSender, RequestID: req.ID}
	}
	return Relation{Kind: PendingAsReceiver, RequestID: req.ID}
}
