package state_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robertmeta/recipe-cli/api"
	"github.com/robertmeta/recipe-cli/model"
	"github.com/robertmeta/recipe-cli/state"
	"github.com/robertmeta/recipe-cli/store"
)

func TestAuth_InitialState(t *testing.T) {
	app := state.New(newFakeAPI(), store.NewMemoryTokenStore())
	s := app.Auth.Session()

	assert.Nil(t, s.User)
	assert.False(t, s.IsLoggedIn)
	assert.False(t, s.IsGuest)
	assert.True(t, s.IsLoginModalOpen)
	assert.False(t, s.Loading)
	assert.Empty(t, s.Error)
}

func TestAuth_LoginSuccess(t *testing.T) {
	fake := newFakeAPI()
	fake.login = func(c model.Credentials) (*model.AuthResponse, error) {
		assert.Equal(t, "cook@example.com", c.Email)
		return &model.AuthResponse{
			AccessToken: "tok-1",
			Message:     "Login successful",
			User:        model.User{ID: 3, Email: c.Email},
		}, nil
	}
	tokens := store.NewMemoryTokenStore()
	app := state.New(fake, tokens)
	ctx := context.Background()

	require.NoError(t, app.Auth.Login(ctx, " cook@example.com ", "secret"))

	s := app.Auth.Session()
	assert.True(t, s.IsLoggedIn)
	require.NotNil(t, s.User)
	assert.Equal(t, int64(3), s.User.ID)
	assert.False(t, s.IsLoginModalOpen)
	assert.False(t, s.IsGuest)
	assert.False(t, s.Loading)
	assert.True(t, s.HasToken)

	tok, err := tokens.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)
}

func TestAuth_LoginRejected(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{
			name:    "server message surfaced",
			err:     &api.APIError{Status: http.StatusUnauthorized, Message: "Invalid email or password"},
			wantMsg: "Invalid email or password",
		},
		{
			name:    "no server message",
			err:     &api.APIError{Status: http.StatusInternalServerError},
			wantMsg: state.MsgLoginFailed,
		},
		{
			name:    "transport error",
			err:     errors.New("connection refused"),
			wantMsg: state.MsgLoginFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeAPI()
			fake.login = func(model.Credentials) (*model.AuthResponse, error) { return nil, tt.err }
			tokens := store.NewMemoryTokenStore()
			app := state.New(fake, tokens)

			err := app.Auth.Login(context.Background(), "a@b.c", "pw")
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.ErrorIs(t, err, tt.err)

			s := app.Auth.Session()
			assert.Equal(t, tt.wantMsg, s.Error)
			assert.False(t, s.IsLoggedIn)
			assert.False(t, s.Loading)

			tok, _ := tokens.Token(context.Background())
			assert.Empty(t, tok)
		})
	}
}

func TestAuth_MissingCredentials(t *testing.T) {
	fake := newFakeAPI()
	app := state.New(fake, store.NewMemoryTokenStore())

	err := app.Auth.Login(context.Background(), "  ", "pw")
	require.ErrorIs(t, err, state.ErrMissingCredentials)
	assert.Equal(t, state.MsgMissingCredentials, app.Auth.Session().Error)
	assert.Equal(t, 0, fake.count("login"))
}

func TestAuth_RegisterPasswordMismatch(t *testing.T) {
	fake := newFakeAPI()
	app := state.New(fake, store.NewMemoryTokenStore())

	err := app.Auth.Register(context.Background(), "a@b.c", "one", "two")
	require.ErrorIs(t, err, state.ErrPasswordMismatch)

	s := app.Auth.Session()
	assert.Equal(t, "Passwords do not match", s.Error)
	assert.False(t, s.Loading)
	assert.Equal(t, 0, fake.count("register"), "no remote call on mismatch")
}

func TestAuth_RegisterSuccessAndRejection(t *testing.T) {
	fake := newFakeAPI()
	fake.register = func(c model.Credentials) (*model.AuthResponse, error) {
		if c.Email == "taken@example.com" {
			return nil, &api.APIError{Status: http.StatusConflict, Message: "User already exists"}
		}
		return &model.AuthResponse{AccessToken: "new", User: model.User{ID: 9, Email: c.Email}}, nil
	}
	tokens := store.NewMemoryTokenStore()
	app := state.New(fake, tokens)
	ctx := context.Background()

	err := app.Auth.Register(ctx, "taken@example.com", "pw", "pw")
	require.Error(t, err)
	assert.Equal(t, "User already exists", app.Auth.Session().Error)

	require.NoError(t, app.Auth.Register(ctx, "new@example.com", "pw", "pw"))
	s := app.Auth.Session()
	assert.True(t, s.IsLoggedIn)
	assert.Empty(t, s.Error)

	tok, _ := tokens.Token(ctx)
	assert.Equal(t, "new", tok)
}

func TestAuth_ModalAndGuest(t *testing.T) {
	app := state.New(newFakeAPI(), store.NewMemoryTokenStore())

	app.Auth.SetError("stale")
	app.Auth.CloseLoginModal()
	s := app.Auth.Session()
	assert.False(t, s.IsLoginModalOpen)
	assert.Empty(t, s.Error, "closing the modal clears the error")

	app.Auth.OpenLoginModal()
	assert.True(t, app.Auth.Session().IsLoginModalOpen)

	app.Auth.ContinueAsGuest()
	s = app.Auth.Session()
	assert.True(t, s.IsGuest)
	assert.False(t, s.IsLoginModalOpen)

	app.Auth.SetGuest(false)
	assert.False(t, app.Auth.Session().IsGuest)

	app.Auth.SetError("x")
	app.Auth.SetError("")
	assert.Empty(t, app.Auth.Session().Error)
}

func TestAuth_TokenWriteFailureKeepsLogin(t *testing.T) {
	fake := newFakeAPI()
	fake.login = func(c model.Credentials) (*model.AuthResponse, error) {
		return &model.AuthResponse{AccessToken: "t", User: model.User{ID: 1, Email: c.Email}}, nil
	}
	app := state.New(fake, failingTokens{err: errors.New("disk full")})

	require.NoError(t, app.Auth.Login(context.Background(), "a@b.c", "pw"))
	s := app.Auth.Session()
	assert.True(t, s.IsLoggedIn)
	assert.False(t, s.HasToken)
}

func TestAuth_Logout(t *testing.T) {
	fake := newFakeAPI()
	fake.login = func(c model.Credentials) (*model.AuthResponse, error) {
		return &model.AuthResponse{AccessToken: "t", User: model.User{ID: 1, Email: c.Email}}, nil
	}
	tokens := store.NewMemoryTokenStore()
	app := state.New(fake, tokens)
	ctx := context.Background()

	require.NoError(t, app.Auth.Login(ctx, "a@b.c", "pw"))

	fired := 0
	app.Bus.SubscribeLoggedOut(func() { fired++ })

	require.NoError(t, app.Auth.Logout(ctx))

	s := app.Auth.Session()
	assert.Nil(t, s.User)
	assert.False(t, s.IsLoggedIn)
	assert.False(t, s.IsGuest)
	assert.True(t, s.IsLoginModalOpen)
	assert.False(t, s.HasToken)
	assert.Equal(t, 1, fired)

	tok, _ := tokens.Token(ctx)
	assert.Empty(t, tok)
}

func TestAuth_LogoutTokenFailure(t *testing.T) {
	boom := errors.New("locked")
	app := state.New(newFakeAPI(), failingTokens{err: boom})

	fired := false
	app.Bus.SubscribeLoggedOut(func() { fired = true })

	err := app.Auth.Logout(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.True(t, fired, "the event is published even when the token cannot be erased")
	assert.True(t, app.Auth.Session().IsLoginModalOpen)
}

func TestAuth_SessionIsACopy(t *testing.T) {
	fake := newFakeAPI()
	fake.login = func(c model.Credentials) (*model.AuthResponse, error) {
		return &model.AuthResponse{AccessToken: "t", User: model.User{ID: 1, Email: c.Email}}, nil
	}
	app := state.New(fake, store.NewMemoryTokenStore())
	require.NoError(t, app.Auth.Login(context.Background(), "a@b.c", "pw"))

	s := app.Auth.Session()
	s.User.Email = "mutated"
	assert.Equal(t, "a@b.c", app.Auth.Session().User.Email)
}
