package state

import (
	"errors"

	"github.com/robertmeta/recipe-cli/api"
)

// User-facing messages stored in the error field of a store.
const (
	MsgMissingCredentials = "Email and password are required"
	MsgPasswordMismatch   = "Passwords do not match"
	MsgLoginFailed        = "Login failed"
	MsgRegisterFailed     = "Registration failed"
	MsgNoRecipes          = "No recipes found matching your criteria"
	MsgPredictFailed      = "Failed to predict recipes"
	MsgCategoriesFailed   = "Failed to fetch categories"
	MsgFavoritesFailed    = "Failed to fetch favorite recipes"
	MsgToggleFailed       = "Failed to toggle favorite status"
)

// Sentinel errors used as causes of a RejectedError, or returned alone when
// an operation is refused before it starts.
var (
	ErrMissingCredentials = errors.New("missing credentials")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrNoRecipes          = errors.New("no recipes found")
	ErrNoIngredients      = errors.New("no ingredients selected")
	ErrSuperseded         = errors.New("search superseded by a newer one")
)

// RejectedError is returned when an operation ends rejected. Message is the
// string the store now holds in its error field.
type RejectedError struct {
	Op      string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RejectedError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *RejectedError) Unwrap() error {
	return e.Err
}

// rejectionMessage picks the server message carried by err, or fallback.
func rejectionMessage(err error, fallback string) string {
	if msg, ok := api.ServerMessage(err); ok {
		return msg
	}
	return fallback
}
