// Package auth signs the user in with a third-party identity provider using
// the OAuth2 device authorization flow, which suits a terminal program.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

var (
	// ErrNotConfigured is returned when no client ID was provided.
	ErrNotConfigured = errors.New("sign-in is not configured: missing client ID")
	// ErrSignInFailed wraps any provider-side failure.
	ErrSignInFailed = errors.New("sign-in failed")
	// ErrSignInInProgress is returned when SignIn is called while another is running.
	ErrSignInInProgress = errors.New("sign-in already in progress")
	// ErrSessionClosed is returned after Close.
	ErrSessionClosed = errors.New("session closed")
)

// Config describes the identity provider.
type Config struct {
	ClientID     string
	ClientSecret string
	Endpoint     oauth2.Endpoint
	UserInfoURL  string
	Scopes       []string
	HTTPClient   *http.Client // optional
}

// GoogleConfig returns the Google endpoints for the given OAuth client.
func GoogleConfig(clientID, clientSecret string) Config {
	return Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:       "https://accounts.google.com/o/oauth2/auth",
			DeviceAuthURL: "https://oauth2.googleapis.com/device/code",
			TokenURL:      "https://oauth2.googleapis.com/token",
			AuthStyle:     oauth2.AuthStyleInParams,
		},
		UserInfoURL: "https://openidconnect.googleapis.com/v1/userinfo",
		Scopes:      []string{"openid", "email", "profile"},
	}
}

// User is the signed-in account.
type User struct {
	ID    string `json:"sub"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// DisplayName prefers the full name and falls back to the email address.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// Prompt shows the user where to go and which code to enter.
type Prompt func(userCode, verificationURI string)

// Session holds the signed-in user for the lifetime of the program. Create it
// at startup, pass it to whatever needs it and Close it on exit.
type Session struct {
	id    string
	cfg   Config
	oauth *oauth2.Config
	log   logrus.FieldLogger

	mu     sync.Mutex
	user   *User
	token  *oauth2.Token
	cancel context.CancelFunc
	closed bool
}

// NewSession creates a signed-out session.
func NewSession(cfg Config, log logrus.FieldLogger) *Session {
	id := uuid.NewString()
	return &Session{
		id:  id,
		cfg: cfg,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     cfg.Endpoint,
			Scopes:       cfg.Scopes,
		},
		log: log.WithField("session", id),
	}
}

// ID identifies the session in logs.
func (s *Session) ID() string { return s.id }

// Configured reports whether a client ID is available.
func (s *Session) Configured() bool { return s.cfg.ClientID != "" }

// SignIn runs the device flow: it requests a user code, hands it to prompt,
// waits for the user to approve and then fetches their profile. A nil error
// means the handshake completed.
func (s *Session) SignIn(ctx context.Context, prompt Prompt) (User, error) {
	if !s.Configured() {
		return User{}, ErrNotConfigured
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return User{}, ErrSessionClosed
	}
	if s.cancel != nil {
		s.mu.Unlock()
		return User{}, ErrSignInInProgress
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	defer func() {
		cancel()
		s.mu.Lock()
		s.cancel = nil
		s.mu.Unlock()
	}()

	if s.cfg.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, s.cfg.HTTPClient)
	}

	da, err := s.oauth.DeviceAuth(ctx)
	if err != nil {
		return User{}, fmt.Errorf("%w: requesting device code: %w", ErrSignInFailed, err)
	}
	if prompt != nil {
		uri := da.VerificationURIComplete
		if uri == "" {
			uri = da.VerificationURI
		}
		prompt(da.UserCode, uri)
	}

	token, err := s.oauth.DeviceAccessToken(ctx, da)
	if err != nil {
		return User{}, fmt.Errorf("%w: waiting for approval: %w", ErrSignInFailed, err)
	}

	user, err := s.fetchUser(ctx, token)
	if err != nil {
		return User{}, fmt.Errorf("%w: %w", ErrSignInFailed, err)
	}

	s.mu.Lock()
	s.user = &user
	s.token = token
	s.mu.Unlock()

	s.log.WithField("user", user.Email).Info("signed in")
	return user, nil
}

func (s *Session) fetchUser(ctx context.Context, token *oauth2.Token) (User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.UserInfoURL, nil)
	if err != nil {
		return User{}, err
	}
	resp, err := s.oauth.Client(ctx, token).Do(req)
	if err != nil {
		return User{}, fmt.Errorf("fetching user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return User{}, fmt.Errorf("fetching user info: unexpected status %s", resp.Status)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return User{}, fmt.Errorf("decoding user info: %w", err)
	}
	return user, nil
}

// User returns the signed-in user, if any.
func (s *Session) User() (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

// SignedIn reports whether a sign-in has completed.
func (s *Session) SignedIn() bool {
	_, ok := s.User()
	return ok
}

// SignOut forgets the user and token.
func (s *Session) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.token = nil
}

// Close cancels any sign-in in progress and signs out.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.closed = true
	s.user = nil
	s.token = nil
	s.mu.Unlock()
	return nil
}
