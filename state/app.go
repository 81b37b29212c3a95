// Package state holds the client-side stores of the recipe finder and the
// event bus that couples them.
//
// AuthStore owns the session and the persisted access token.
// RecipeSearchStore owns search filters, results and categories.
// FavoritesStore owns the saved recipe list. Stores never call each other;
// AuthStore publishes auth.logged_out and FavoritesStore publishes
// favorites.toggled, and the others subscribe.
package state

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/robertmeta/recipe-cli/api"
	"github.com/robertmeta/recipe-cli/store"
)

// RemoteAPI is everything the stores need from the recipe API.
type RemoteAPI interface {
	AuthAPI
	SearchAPI
	FavoritesAPI
}

var _ RemoteAPI = (*api.Client)(nil)

// Option configures an App.
type Option func(*options)

type options struct {
	log        zerolog.Logger
	latestOnly bool
}

// WithLogger sets the logger shared by all stores.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithLatestSearchOnly discards responses of searches superseded by a newer
// one instead of letting the last completion win.
func WithLatestSearchOnly() Option {
	return func(o *options) { o.latestOnly = true }
}

// App bundles the stores and their bus.
type App struct {
	Bus       *Bus
	Auth      *AuthStore
	Recipes   *RecipeSearchStore
	Favorites *FavoritesStore
}

// Snapshot is a copy of every store's state.
type Snapshot struct {
	Session   Session        `json:"auth"`
	Search    SearchState    `json:"recipes"`
	Favorites FavoritesState `json:"favorites"`
}

// New builds the stores and subscribes them to each other's events.
func New(remote RemoteAPI, tokens store.TokenStore, opts ...Option) *App {
	o := options{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	bus := NewBus()
	app := &App{
		Bus:       bus,
		Auth:      NewAuthStore(remote, tokens, bus, o.log.With().Str("store", "auth").Logger()),
		Recipes:   NewRecipeSearchStore(remote, o.log.With().Str("store", "recipes").Logger(), o.latestOnly),
		Favorites: NewFavoritesStore(remote, bus, o.log.With().Str("store", "favorites").Logger()),
	}

	bus.SubscribeLoggedOut(app.Recipes.onLoggedOut)
	bus.SubscribeLoggedOut(app.Favorites.onLoggedOut)
	bus.SubscribeFavoriteToggled(app.Recipes.onFavoriteToggled)

	return app
}

// Bootstrap notes whether an access token survived from an earlier run and
// loads the category list. A category failure is returned but leaves the
// app usable.
func (a *App) Bootstrap(ctx context.Context) error {
	if err := a.Auth.restoreToken(ctx); err != nil {
		return err
	}
	return a.Recipes.LoadCategories(ctx)
}

// Snapshot returns the state of all three stores.
func (a *App) Snapshot() Snapshot {
	return Snapshot{
		Session:   a.Auth.Session(),
		Search:    a.Recipes.State(),
		Favorites: a.Favorites.State(),
	}
}
