package connect

import (
	"testing"

	"github.com/google/uuid"
)

func TestValidMobile(t *testing.T) {
	valid := []string{
		"0123456789",
		"+60123456789",
		"60123456789",
		"012-3456789",
		"01112345678",
		"011-12345678",
	}

	invalid := []string{
		"",
		"abc",
		"012345678",     // seven-digit body too short
		"01512345678",   // 015 with eight digits needs the 011 prefix
		"012345678901",  // too long
		"0151234567",    // 5 is not a valid third digit for 7-digit bodies
		"+70123456789",  // wrong country code
		"011-1234567",   // 011 requires eight digits
	}

	for _, s := range valid {
		if !ValidMobile(s) {
			t.Errorf("ValidMobile(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if ValidMobile(s) {
			t.Errorf("ValidMobile(%q) = true, want false", s)
		}
	}
}

func TestParseStatus(t *testing.T) {
	if _, err := ParseStatus("pending"); err != nil {
		t.Fatalf("pending should parse: %v", err)
	}
	if _, err := ParseStatus("accepted"); err != nil {
		t.Fatalf("accepted should parse: %v", err)
	}
	if _, err := ParseStatus("rejected"); err == nil {
		t.Fatalf("there is no rejected state")
	}
}

func TestRelationFor(t *testing.T) {
	sender := uuid.New()
	receiver := uuid.New()

	if rel := RelationFor(sender, nil); rel.Kind != NoRequest {
		t.Fatalf("no request must yield NoRequest")
	}

	pending := &Request{
		ID:          uuid.New(),
		SenderID:    sender,
		ReceiverID:  receiver,
		SenderPhone: "0123456789",
		Status:      StatusPending,
	}
	if rel := RelationFor(sender, pending); rel.Kind != PendingAsSender {
		t.Fatalf("sender of a pending request must see PendingAsSender")
	}
	rel := RelationFor(receiver, pending)
	if rel.Kind != PendingAsReceiver {
		t.Fatalf("receiver of a pending request must see PendingAsReceiver")
	}
	if rel.RequestID != pending.ID {
		t.Fatalf("receiver relation must carry the request id for accepting")
	}
	if rel.Phone != "" {
		t.Fatalf("no phone may leak before acceptance")
	}

	accepted := *pending
	accepted.ReceiverPhone = "0198765432"
	accepted.Status = StatusAccepted

	senderRel := RelationFor(sender, &accepted)
	if senderRel.Kind != Connected || senderRel.Phone != "0198765432" {
		t.Fatalf("sender must see the receiver's phone, got %+v", senderRel)
	}
	receiverRel := RelationFor(receiver, &accepted)
	if receiverRel.Kind != Connected || receiverRel.Phone != "0123456789" {
		t.Fatalf("receiver must see the sender's phone, got %+v", receiverRel)
	}
}

func TestCounterpartyPhone_PendingDisclosesNothing(t *testing.T) {
	req := Request{
		ID:          uuid.New(),
		SenderID:    uuid.New(),
		ReceiverID:  uuid.New(),
		SenderPhone: "0123456789",
		Status:      StatusPending,
	}
	if _, ok := req.CounterpartyPhone(req.ReceiverID); ok {
		t.Fatalf("pending request must not disclose the sender's phone")
	}
	if _, ok := req.CounterpartyPhone(req.SenderID); ok {
		t.Fatalf("pending request must not disclose anything to the sender")
	}
}
