package notifier

import (
	"strings"
	"testing"

	"sukasamasuka/internal/config"
)

func TestMatchEmailBody(t *testing.T) {
	t.Parallel()

	cfg := config.SMTPConfig{From: "noreply@sukasamasuka.my", FromName: "SukaSamaSuka"}
	msg := MatchEmail(cfg, "aisyah@example.com", "Aisyah", "Pegawai Tadbir", "N41", 2)

	if got, want := msg.From, "SukaSamaSuka <noreply@sukasamasuka.my>"; got != want {
		t.Fatalf("From = %q, want %q", got, want)
	}
	if len(msg.To) != 1 || msg.To[0] != "aisyah@example.com" {
		t.Fatalf("To = %v", msg.To)
	}
	if !strings.Contains(msg.Body, "Hi Aisyah,") {
		t.Errorf("body missing greeting: %q", msg.Body)
	}
	if !strings.Contains(msg.Body, "We've found 2 new match(es) for your job post: Pegawai Tadbir (N41).") {
		t.Errorf("body missing match line: %q", msg.Body)
	}
}

func TestMatchEmailNoName(t *testing.T) {
	t.Parallel()

	cfg := config.SMTPConfig{From: "noreply@sukasamasuka.my"}
	msg := MatchEmail(cfg, "x@example.com", "", "Jururawat", "U29", 1)

	if msg.From != "noreply@sukasamasuka.my" {
		t.Fatalf("From = %q", msg.From)
	}
	if !strings.HasPrefix(msg.Body, "Hi,\n") {
		t.Errorf("body = %q", msg.Body)
	}
}

func TestBuildEmailDataHeaders(t *testing.T) {
	t.Parallel()

	data := buildEmailData(EmailMessage{
		From:    "SukaSamaSuka <noreply@sukasamasuka.my>",
		To:      []string{"a@example.com"},
		Subject: "You have new swap matches!",
		Body:    "hello",
	})

	for _, want := range []string{
		"From: SukaSamaSuka <noreply@sukasamasuka.my>\r\n",
		"To: a@example.com\r\n",
		"Subject: You have new swap matches!\r\n",
		"\r\n\r\nhello",
	} {
		if !strings.Contains(data, want) {
			t.Errorf("data missing %q", want)
		}
	}
}

func TestExtractAddress(t *testing.T) {
	t.Parallel()

	if got := extractAddress("SukaSamaSuka <noreply@sukasamasuka.my>"); got != "noreply@sukasamasuka.my" {
		t.Fatalf("got %q", got)
	}
	if got := extractAddress("noreply@sukasamasuka.my"); got != "noreply@sukasamasuka.my" {
		t.Fatalf("got %q", got)
	}
}
