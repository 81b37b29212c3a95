package state

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/robertmeta/recipe-cli/model"
	"github.com/robertmeta/recipe-cli/store"
)

// AuthAPI is the part of the remote API used by AuthStore.
type AuthAPI interface {
	Login(ctx context.Context, creds model.Credentials) (*model.AuthResponse, error)
	Register(ctx context.Context, creds model.Credentials) (*model.AuthResponse, error)
}

// Session is the identity state owned by AuthStore. An empty Error means
// no error is shown.
type Session struct {
	User             *model.User `json:"user"`
	IsLoggedIn       bool        `json:"isLoggedIn"`
	IsGuest          bool        `json:"isGuest"`
	IsLoginModalOpen bool        `json:"isLoginModalOpen"`
	HasToken         bool        `json:"hasToken"`
	Loading          bool        `json:"loading"`
	Error            string      `json:"error,omitempty"`
}

func initialSession() Session {
	return Session{IsLoginModalOpen: true}
}

// AuthStore owns the session. It is the only writer of the token slot.
type AuthStore struct {
	mu      sync.Mutex
	session Session
	api     AuthAPI
	tokens  store.TokenStore
	bus     *Bus
	log     zerolog.Logger
}

// NewAuthStore creates an AuthStore in its initial state: logged out with
// the login modal open.
func NewAuthStore(remote AuthAPI, tokens store.TokenStore, bus *Bus, log zerolog.Logger) *AuthStore {
	return &AuthStore{
		session: initialSession(),
		api:     remote,
		tokens:  tokens,
		bus:     bus,
		log:     log,
	}
}

// Session returns a copy of the current session.
func (s *AuthStore) Session() Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.session
	if s.session.User != nil {
		u := *s.session.User
		out.User = &u
	}
	return out
}

// Login authenticates with email and password.
func (s *AuthStore) Login(ctx context.Context, email, password string) error {
	return s.authenticate(ctx, "login", model.Credentials{Email: email, Password: password}, s.api.Login, MsgLoginFailed)
}

// Register creates an account. A password/confirmation mismatch is
// rejected locally without contacting the API.
func (s *AuthStore) Register(ctx context.Context, email, password, confirmPassword string) error {
	if password != confirmPassword {
		s.SetError(MsgPasswordMismatch)
		return &RejectedError{Op: "register", Message: MsgPasswordMismatch, Err: ErrPasswordMismatch}
	}
	return s.authenticate(ctx, "register", model.Credentials{Email: email, Password: password}, s.api.Register, MsgRegisterFailed)
}

type authCall func(context.Context, model.Credentials) (*model.AuthResponse, error)

func (s *AuthStore) authenticate(ctx context.Context, op string, creds model.Credentials, call authCall, fallback string) error {
	if err := creds.Validate(); err != nil {
		s.SetError(MsgMissingCredentials)
		return &RejectedError{Op: op, Message: MsgMissingCredentials, Err: ErrMissingCredentials}
	}
	creds.Email = strings.TrimSpace(creds.Email)

	s.mu.Lock()
	s.session.Loading = true
	s.session.Error = ""
	s.mu.Unlock()

	resp, err := call(ctx, creds)
	if err != nil {
		msg := rejectionMessage(err, fallback)
		s.mu.Lock()
		s.session.Loading = false
		s.session.Error = msg
		s.mu.Unlock()

		s.log.Debug().Str("op", op).Err(err).Msg("auth rejected")
		return &RejectedError{Op: op, Message: msg, Err: err}
	}

	hasToken := true
	if err := s.tokens.SetToken(ctx, resp.AccessToken); err != nil {
		hasToken = false
		s.log.Warn().Err(err).Msg("failed to persist access token")
	}

	user := resp.User
	s.mu.Lock()
	s.session.Loading = false
	s.session.User = &user
	s.session.IsLoggedIn = true
	s.session.IsGuest = false
	s.session.IsLoginModalOpen = false
	s.session.HasToken = hasToken
	s.session.Error = ""
	s.mu.Unlock()

	s.log.Info().Str("op", op).Int64("user_id", user.ID).Msg("authenticated")
	return nil
}

// OpenLoginModal shows the login prompt.
func (s *AuthStore) OpenLoginModal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.IsLoginModalOpen = true
}

// CloseLoginModal hides the login prompt and clears any error.
func (s *AuthStore) CloseLoginModal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.IsLoginModalOpen = false
	s.session.Error = ""
}

// SetGuest sets the guest flag.
func (s *AuthStore) SetGuest(guest bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.IsGuest = guest
}

// ContinueAsGuest marks the session as a guest and closes the login prompt.
func (s *AuthStore) ContinueAsGuest() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.IsGuest = true
	s.session.IsLoginModalOpen = false
	s.session.Error = ""
}

// SetError replaces the error message. An empty message clears it.
func (s *AuthStore) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Error = msg
}

// Logout drops the session, erases the token, reopens the login prompt and
// publishes auth.logged_out. The in-memory reset happens even when erasing
// the token fails; that error is returned.
func (s *AuthStore) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.session.User = nil
	s.session.IsLoggedIn = false
	s.session.IsGuest = false
	s.session.Error = ""
	s.session.IsLoginModalOpen = true
	s.session.HasToken = false
	s.mu.Unlock()

	err := s.tokens.ClearToken(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to erase access token")
	}

	s.log.Debug().Str("event", EventLoggedOut).Msg("publish")
	s.bus.PublishLoggedOut()
	return err
}

// restoreToken records whether a token survived from an earlier run.
func (s *AuthStore) restoreToken(ctx context.Context) error {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.HasToken = token != ""
	return nil
}
