package state

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/robertmeta/recipe-cli/model"
)

// SearchAPI is the part of the remote API used by RecipeSearchStore.
type SearchAPI interface {
	Categories(ctx context.Context) ([]string, error)
	Predict(ctx context.Context, q model.PredictQuery) ([]model.Recipe, error)
}

// SearchState is the state owned by RecipeSearchStore.
type SearchState struct {
	Results    []model.Recipe `json:"results"`
	SelectedID *int64         `json:"selectedId"`
	Categories []string       `json:"categories"`
	Filters    model.Filters  `json:"filters"`
	Loading    bool           `json:"loading"`
	Error      string         `json:"error,omitempty"`
}

func initialSearchState() SearchState {
	return SearchState{
		Results:    []model.Recipe{},
		Categories: []string{},
		Filters:    model.DefaultFilters(),
	}
}

// RecipeSearchStore holds search filters, prediction results and the
// category list.
type RecipeSearchStore struct {
	mu         sync.Mutex
	state      SearchState
	api        SearchAPI
	log        zerolog.Logger
	latestOnly bool
	gen        uint64
}

// NewRecipeSearchStore creates an empty store. With latestOnly set, only the
// response of the most recently started search is applied.
func NewRecipeSearchStore(remote SearchAPI, log zerolog.Logger, latestOnly bool) *RecipeSearchStore {
	return &RecipeSearchStore{
		state:      initialSearchState(),
		api:        remote,
		log:        log,
		latestOnly: latestOnly,
	}
}

// State returns a copy of the current state.
func (s *RecipeSearchStore) State() SearchState {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.state
	out.Results = model.CloneRecipes(s.state.Results)
	out.Categories = append([]string{}, s.state.Categories...)
	out.Filters = s.state.Filters.Clone()
	if s.state.SelectedID != nil {
		id := *s.state.SelectedID
		out.SelectedID = &id
	}
	return out
}

// SetIngredients replaces the ingredient list. Entries are trimmed, blanks
// dropped and duplicates removed.
func (s *RecipeSearchStore) SetIngredients(list []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Filters.Ingredients = model.NormalizeIngredients(list)
}

// AddIngredient appends one ingredient unless it is blank or already present.
func (s *RecipeSearchStore) AddIngredient(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Filters.Ingredients = model.NormalizeIngredients(append(s.state.Filters.Ingredients, name))
}

// RemoveIngredient drops the ingredient equal to name, if any.
func (s *RecipeSearchStore) RemoveIngredient(name string) {
	name = strings.TrimSpace(name)

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]string, 0, len(s.state.Filters.Ingredients))
	for _, ing := range s.state.Filters.Ingredients {
		if ing != name {
			kept = append(kept, ing)
		}
	}
	s.state.Filters.Ingredients = kept
}

// SetMealType sets the meal-type filter and re-runs the search when
// ingredients are selected. An empty value means "All".
func (s *RecipeSearchStore) SetMealType(ctx context.Context, mealType string) error {
	mealType = strings.TrimSpace(mealType)
	if mealType == "" {
		mealType = model.MealTypeAll
	}

	s.mu.Lock()
	s.state.Filters.MealType = mealType
	s.mu.Unlock()

	return s.requery(ctx)
}

// SetTotalTime sets the total-time filter in minutes and re-runs the search
// when ingredients are selected. Zero means any duration.
func (s *RecipeSearchStore) SetTotalTime(ctx context.Context, minutes int) error {
	if minutes < 0 {
		minutes = 0
	}

	s.mu.Lock()
	s.state.Filters.TotalTime = minutes
	s.mu.Unlock()

	return s.requery(ctx)
}

func (s *RecipeSearchStore) requery(ctx context.Context) error {
	s.mu.Lock()
	empty := len(s.state.Filters.Ingredients) == 0
	s.mu.Unlock()

	if empty {
		return nil
	}
	return s.Search(ctx)
}

// Search asks the API for recipes matching the stored filters. It returns
// ErrNoIngredients without changing state when no ingredient is selected.
// An empty prediction list is a rejection.
func (s *RecipeSearchStore) Search(ctx context.Context) error {
	s.mu.Lock()
	if len(s.state.Filters.Ingredients) == 0 {
		s.mu.Unlock()
		return ErrNoIngredients
	}
	query := s.state.Filters.Query()
	s.gen++
	gen := s.gen
	s.state.Loading = true
	s.state.Error = ""
	s.mu.Unlock()

	s.log.Debug().
		Uint64("gen", gen).
		Strs("ingredients", query.Ingredients).
		Msg("search")

	recipes, err := s.api.Predict(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.latestOnly && gen != s.gen {
		s.log.Debug().Uint64("gen", gen).Uint64("latest", s.gen).Msg("discarding superseded search")
		return ErrSuperseded
	}

	s.state.Loading = false
	switch {
	case err != nil:
		msg := rejectionMessage(err, MsgPredictFailed)
		s.state.Results = []model.Recipe{}
		s.state.Error = msg
		return &RejectedError{Op: "search", Message: msg, Err: err}
	case len(recipes) == 0:
		s.state.Results = []model.Recipe{}
		s.state.Error = MsgNoRecipes
		return &RejectedError{Op: "search", Message: MsgNoRecipes, Err: ErrNoRecipes}
	}

	s.state.Results = model.CloneRecipes(recipes)
	s.state.Error = ""
	return nil
}

// LoadCategories replaces the category list. A failure leaves the state
// untouched.
func (s *RecipeSearchStore) LoadCategories(ctx context.Context) error {
	cats, err := s.api.Categories(ctx)
	if err != nil {
		msg := rejectionMessage(err, MsgCategoriesFailed)
		s.log.Warn().Err(err).Msg("failed to load categories")
		return &RejectedError{Op: "categories", Message: msg, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Categories = append([]string{}, cats...)
	return nil
}

// SetSelectedID selects a recipe by id without checking that it exists.
// Nil clears the selection.
func (s *RecipeSearchStore) SetSelectedID(id *int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == nil {
		s.state.SelectedID = nil
		return
	}
	v := *id
	s.state.SelectedID = &v
}

// Selected returns the selected recipe. The second result is false when
// nothing is selected or the selection no longer matches a result.
func (s *RecipeSearchStore) Selected() (model.Recipe, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.SelectedID == nil {
		return model.Recipe{}, false
	}
	i := model.FindRecipe(s.state.Results, *s.state.SelectedID)
	if i < 0 {
		return model.Recipe{}, false
	}
	return s.state.Results[i], true
}

func (s *RecipeSearchStore) onFavoriteToggled(ev FavoriteToggled) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := model.FindRecipe(s.state.Results, ev.RecipeID); i >= 0 {
		s.state.Results[i].IsFavorite = ev.IsFavorite
	}
}

// onLoggedOut clears results, selection, filters and errors. Categories are
// not user data and survive.
func (s *RecipeSearchStore) onLoggedOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	cats := s.state.Categories
	s.state = initialSearchState()
	s.state.Categories = cats
	s.gen++
}
