package auth_test

import (
	"strings"
	"testing"

	"github.com/gorilla/sessions"

	"github.com/saschaorth/item-catalog/pkg/auth"
)

const stateAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func TestNewStateToken(t *testing.T) {
	token, err := auth.NewStateToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(token) != 32 {
		t.Errorf("expected 32 characters, got %d (%q)", len(token), token)
	}
	for _, c := range token {
		if !strings.ContainsRune(stateAlphabet, c) {
			t.Errorf("token %q contains %q outside the uppercase+digit alphabet", token, c)
		}
	}

	other, err := auth.NewStateToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == other {
		t.Error("two generated tokens are identical")
	}
}

func newSession(t *testing.T) *sessions.Session {
	t.Helper()
	store := sessions.NewCookieStore([]byte("test-secret"))
	return sessions.NewSession(store, auth.SessionName)
}

func TestIdentityStoreAndLoad(t *testing.T) {
	session := newSession(t)

	identity := auth.Identity{
		StateToken:  "ABC123",
		Username:    "test@web.de",
		Email:       "test@web.de",
		UserID:      7,
		Provider:    auth.ProviderGoogle,
		AccessToken: "ya29.token",
		GplusID:     "108123",
	}
	identity.Store(session)

	got := auth.LoadIdentity(session)
	if got != identity {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, identity)
	}
	if !got.LoggedIn() {
		t.Error("expected LoggedIn after storing a full identity")
	}
}

func TestClearIdentityRemovesEveryKey(t *testing.T) {
	session := newSession(t)

	auth.Identity{
		StateToken:  "ABC123",
		Username:    "test@web.de",
		Email:       "test@web.de",
		UserID:      7,
		Provider:    auth.ProviderGoogle,
		AccessToken: "ya29.token",
		GplusID:     "108123",
	}.Store(session)

	auth.ClearIdentity(session)

	if got := auth.LoadIdentity(session); got != (auth.Identity{}) {
		t.Errorf("expected zero identity after clear, got %+v", got)
	}
	if len(session.Values) != 0 {
		t.Errorf("expected no session values after clear, got %v", session.Values)
	}
}

func TestLoadIdentityFromEmptySession(t *testing.T) {
	identity := auth.LoadIdentity(newSession(t))
	if identity.LoggedIn() {
		t.Error("empty session must not be logged in")
	}
	if identity != (auth.Identity{}) {
		t.Errorf("expected zero identity, got %+v", identity)
	}
}

func TestConnected(t *testing.T) {
	tests := []struct {
		name     string
		identity auth.Identity
		subject  string
		want     bool
	}{
		{"same subject with token", auth.Identity{AccessToken: "tok", GplusID: "x"}, "x", true},
		{"different subject", auth.Identity{AccessToken: "tok", GplusID: "x"}, "y", false},
		{"no token", auth.Identity{GplusID: "x"}, "x", false},
		{"anonymous", auth.Identity{}, "x", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.identity.Connected(tt.subject); got != tt.want {
				t.Errorf("Connected(%q) = %v, want %v", tt.subject, got, tt.want)
			}
		})
	}
}
