package state

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/robertmeta/recipe-cli/model"
)

// FavoritesAPI is the part of the remote API used by FavoritesStore.
type FavoritesAPI interface {
	Favorites(ctx context.Context) ([]model.Recipe, error)
	ToggleFavorite(ctx context.Context, recipeID int64) (*model.ToggleResult, error)
}

// FavoritesState is the state owned by FavoritesStore.
type FavoritesState struct {
	Items      []model.Recipe `json:"favorites"`
	SelectedID *int64         `json:"selectedId"`
	Loading    bool           `json:"loading"`
	Error      string         `json:"error,omitempty"`
}

func initialFavoritesState() FavoritesState {
	return FavoritesState{Items: []model.Recipe{}}
}

// FavoritesStore holds the user's saved recipes.
type FavoritesStore struct {
	mu    sync.Mutex
	state FavoritesState
	api   FavoritesAPI
	bus   *Bus
	log   zerolog.Logger
}

// NewFavoritesStore creates an empty store.
func NewFavoritesStore(remote FavoritesAPI, bus *Bus, log zerolog.Logger) *FavoritesStore {
	return &FavoritesStore{
		state: initialFavoritesState(),
		api:   remote,
		bus:   bus,
		log:   log,
	}
}

// State returns a copy of the current state.
func (s *FavoritesStore) State() FavoritesState {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.state
	out.Items = model.CloneRecipes(s.state.Items)
	if s.state.SelectedID != nil {
		id := *s.state.SelectedID
		out.SelectedID = &id
	}
	return out
}

// FetchFavorites replaces the list with the server's. On failure the
// current list is kept.
func (s *FavoritesStore) FetchFavorites(ctx context.Context) error {
	s.mu.Lock()
	s.state.Loading = true
	s.state.Error = ""
	s.mu.Unlock()

	items, err := s.api.Favorites(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = false
	if err != nil {
		msg := rejectionMessage(err, MsgFavoritesFailed)
		s.state.Error = msg
		return &RejectedError{Op: "favorites", Message: msg, Err: err}
	}
	s.state.Items = model.CloneRecipes(items)
	return nil
}

// ToggleFavorite flips a recipe's favorite status on the server and applies
// the server's answer: true marks the listed recipe, false removes it. The
// list never gains entries here. favorites.toggled is published on success.
func (s *FavoritesStore) ToggleFavorite(ctx context.Context, recipeID int64) error {
	res, err := s.api.ToggleFavorite(ctx, recipeID)
	if err != nil {
		s.mu.Lock()
		s.state.Error = MsgToggleFailed
		s.mu.Unlock()

		s.log.Debug().Int64("recipe_id", recipeID).Err(err).Msg("toggle rejected")
		return &RejectedError{Op: "toggle", Message: MsgToggleFailed, Err: err}
	}

	ev := FavoriteToggled{RecipeID: res.RecipeID, IsFavorite: res.IsFavorite}

	s.mu.Lock()
	if i := model.FindRecipe(s.state.Items, ev.RecipeID); i >= 0 {
		if ev.IsFavorite {
			s.state.Items[i].IsFavorite = true
		} else {
			s.state.Items = append(s.state.Items[:i:i], s.state.Items[i+1:]...)
		}
	}
	s.mu.Unlock()

	s.log.Debug().
		Str("event", EventFavoriteToggled).
		Int64("recipe_id", ev.RecipeID).
		Bool("is_favorite", ev.IsFavorite).
		Msg("publish")
	s.bus.PublishFavoriteToggled(ev)
	return nil
}

// SetSelectedID selects a favorite by id without checking that it exists.
// Nil clears the selection.
func (s *FavoritesStore) SetSelectedID(id *int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == nil {
		s.state.SelectedID = nil
		return
	}
	v := *id
	s.state.SelectedID = &v
}

// SetError replaces the error message. An empty message clears it.
func (s *FavoritesStore) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Error = msg
}

// Selected returns the selected favorite, or false for no or a dangling
// selection.
func (s *FavoritesStore) Selected() (model.Recipe, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.SelectedID == nil {
		return model.Recipe{}, false
	}
	i := model.FindRecipe(s.state.Items, *s.state.SelectedID)
	if i < 0 {
		return model.Recipe{}, false
	}
	return s.state.Items[i], true
}

func (s *FavoritesStore) onLoggedOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = initialFavoritesState()
}
