package auth

import (
	"crypto/rand"
	"fmt"

	"github.com/gorilla/sessions"
)

// SessionName is the cookie name for the catalog session.
const SessionName = "itemcatalog_session"

// Session value keys. Handlers never touch these directly; they go through
// Identity so a logout cannot leave a stale key behind.
const (
	keyStateToken  = "state"
	keyUsername    = "username"
	keyEmail       = "email"
	keyUserID      = "user_id"
	keyProvider    = "provider"
	keyAccessToken = "access_token"
	keyGplusID     = "gplus_id"
)

// ProviderGoogle is the provider name stored in the session after a Google login.
const ProviderGoogle = "google"

const (
	stateTokenLength   = 32
	stateTokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Identity is the typed view of everything the session knows about the
// browser's user. A zero Identity is anonymous. The whole value is saved or
// discarded as a unit, so a logout cannot leave a partial identity behind.
type Identity struct {
	StateToken  string // anti-forgery token for the login flow
	Username    string
	Email       string
	UserID      int64
	Provider    string
	AccessToken string // provider access token
	GplusID     string // provider subject id
}

// LoggedIn reports whether the session carries an authenticated user.
// Presence-only; the access token is not re-validated per request.
func (i Identity) LoggedIn() bool {
	return i.Username != ""
}

// Connected reports whether the session holds provider credentials for the
// given subject. Used for the idempotent "already connected" short-circuit.
func (i Identity) Connected(subjectID string) bool {
	return i.AccessToken != "" && i.GplusID == subjectID
}

// LoadIdentity reads the typed identity out of a gorilla session.
// Missing or mistyped values read as zero.
func LoadIdentity(session *sessions.Session) Identity {
	str := func(key string) string {
		s, _ := session.Values[key].(string)
		return s
	}
	id, _ := session.Values[keyUserID].(int64)
	return Identity{
		StateToken:  str(keyStateToken),
		Username:    str(keyUsername),
		Email:       str(keyEmail),
		UserID:      id,
		Provider:    str(keyProvider),
		AccessToken: str(keyAccessToken),
		GplusID:     str(keyGplusID),
	}
}

// Store writes the identity into the session values. Zero fields are removed
// rather than stored, so Store(Identity{}) is equivalent to a full logout.
func (i Identity) Store(session *sessions.Session) {
	set := func(key, val string) {
		if val == "" {
			delete(session.Values, key)
			return
		}
		session.Values[key] = val
	}
	set(keyStateToken, i.StateToken)
	set(keyUsername, i.Username)
	set(keyEmail, i.Email)
	set(keyProvider, i.Provider)
	set(keyAccessToken, i.AccessToken)
	set(keyGplusID, i.GplusID)
	if i.UserID == 0 {
		delete(session.Values, keyUserID)
	} else {
		session.Values[keyUserID] = i.UserID
	}
}

// ClearIdentity removes every identity key from the session, leaving flashes
// and any non-identity state intact.
func ClearIdentity(session *sessions.Session) {
	Identity{}.Store(session)
}

// NewStateToken returns a random anti-forgery token of 32 uppercase letters
// and digits, generated fresh per login-page render.
func NewStateToken() (string, error) {
	buf := make([]byte, stateTokenLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate state token: %w", err)
	}
	for i, b := range buf {
		buf[i] = stateTokenAlphabet[int(b)%len(stateTokenAlphabet)]
	}
	return string(buf), nil
}
