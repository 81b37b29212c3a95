package state_test

import (
	"context"
	"sync"

	"github.com/robertmeta/recipe-cli/model"
)

// fakeAPI is a scriptable RemoteAPI. Unset funcs return zero values.
type fakeAPI struct {
	mu    sync.Mutex
	calls map[string]int

	login      func(model.Credentials) (*model.AuthResponse, error)
	register   func(model.Credentials) (*model.AuthResponse, error)
	categories func() ([]string, error)
	predict    func(context.Context, model.PredictQuery) ([]model.Recipe, error)
	favorites  func() ([]model.Recipe, error)
	toggle     func(int64) (*model.ToggleResult, error)
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{calls: make(map[string]int)}
}

func (f *fakeAPI) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) Login(_ context.Context, c model.Credentials) (*model.AuthResponse, error) {
	f.record("login")
	if f.login == nil {
		return &model.AuthResponse{}, nil
	}
	return f.login(c)
}

func (f *fakeAPI) Register(_ context.Context, c model.Credentials) (*model.AuthResponse, error) {
	f.record("register")
	if f.register == nil {
		return &model.AuthResponse{}, nil
	}
	return f.register(c)
}

func (f *fakeAPI) Categories(context.Context) ([]string, error) {
	f.record("categories")
	if f.categories == nil {
		return nil, nil
	}
	return f.categories()
}

func (f *fakeAPI) Predict(ctx context.Context, q model.PredictQuery) ([]model.Recipe, error) {
	f.record("predict")
	if f.predict == nil {
		return nil, nil
	}
	return f.predict(ctx, q)
}

func (f *fakeAPI) Favorites(context.Context) ([]model.Recipe, error) {
	f.record("favorites")
	if f.favorites == nil {
		return nil, nil
	}
	return f.favorites()
}

func (f *fakeAPI) ToggleFavorite(_ context.Context, id int64) (*model.ToggleResult, error) {
	f.record("toggle")
	if f.toggle == nil {
		return &model.ToggleResult{RecipeID: id}, nil
	}
	return f.toggle(id)
}

// failingTokens is a token store whose writes always fail.
type failingTokens struct{ err error }

func (f failingTokens) Token(context.Context) (string, error)  { return "", f.err }
func (f failingTokens) SetToken(context.Context, string) error { return f.err }
func (f failingTokens) ClearToken(context.Context) error       { return f.err }

func recipe(id int64, name string, fav bool) model.Recipe {
	return model.Recipe{ID: id, Name: name, IsFavorite: fav}
}

func ptr[T any](v T) *T { return &v }
