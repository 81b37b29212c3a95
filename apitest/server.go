// Package apitest provides an in-process fake of the recipe API for tests
// and local development.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/robertmeta/recipe-cli/model"
)

type account struct {
	id       int64
	email    string
	password string
	favs     []int64 // recipe ids in the order they were saved
}

type failure struct {
	status  int
	message string
}

// Server is a fake recipe API. All methods are safe for concurrent use.
type Server struct {
	mu         sync.Mutex
	accounts   map[string]*account
	tokens     map[string]*account
	recipes    []model.Recipe
	categories []string
	failures   map[string]failure
	hits       map[string]int
	nextUserID int64
	nextToken  int
	onPredict  func(ingredients []string)
	router     chi.Router
	log        zerolog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for server-side failures.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Server) { s.log = log }
}

// New creates a fake API seeded with SampleRecipes.
func New(opts ...Option) *Server {
	s := &Server{
		accounts:   make(map[string]*account),
		tokens:     make(map[string]*account),
		recipes:    SampleRecipes(),
		categories: []string{"Breakfast", "Lunch", "Dinner", "Dessert"},
		failures:   make(map[string]failure),
		hits:       make(map[string]int),
		nextUserID: 1,
		log:        zerolog.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.countHits)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Post("/register", s.handleRegister)
	})
	r.Route("/recipe", func(r chi.Router) {
		r.Get("/categories", s.handleCategories)
		r.Post("/predict", s.handlePredict)
	})
	r.Route("/favourite", func(r chi.Router) {
		r.Get("/get", s.handleFavorites)
		r.Post("/toggle/{recipeID}", s.handleToggle)
	})

	s.router = r
}

// Handler returns the HTTP handler serving the fake API.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the fake API on a local httptest server. The caller closes it.
func (s *Server) Start() *httptest.Server {
	return httptest.NewServer(s.router)
}

// AddUser registers an account directly and returns its ID.
func (s *Server) AddUser(email, password string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addAccount(email, password).id
}

// SetRecipes replaces the recipe catalogue.
func (s *Server) SetRecipes(recipes []model.Recipe) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipes = model.CloneRecipes(recipes)
}

// SetCategories replaces the category list.
func (s *Server) SetCategories(categories []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = append([]string{}, categories...)
}

// Fail makes every request to path answer with status and an error body
// carrying message. An empty message sends a body without one.
func (s *Server) Fail(path string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = failure{status: status, message: message}
}

// Recover clears a failure installed with Fail.
func (s *Server) Recover(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, path)
}

// OnPredict installs a hook run before each predict response is written.
// The hook runs without the server lock held and may block.
func (s *Server) OnPredict(fn func(ingredients []string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onPredict = fn
}

// Hits returns how many requests reached path.
func (s *Server) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

// countHits records each request and applies installed failures.
func (s *Server) countHits(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[r.URL.Path]++
		f, failing := s.failures[r.URL.Path]
		s.mu.Unlock()

		if failing {
			if f.message == "" {
				s.writeJSON(w, f.status, map[string]string{})
				return
			}
			s.writeJSON(w, f.status, map[string]string{"error": f.message})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) addAccount(email, password string) *account {
	acc := &account{id: s.nextUserID, email: email, password: password}
	s.nextUserID++
	s.accounts[strings.ToLower(email)] = acc
	return acc
}

func (s *Server) issueToken(acc *account) string {
	s.nextToken++
	token := fmt.Sprintf("token-%d-%d", acc.id, s.nextToken)
	s.tokens[token] = acc
	return token
}

// caller returns the account behind the bearer token, if any.
// Must be called with s.mu held.
func (s *Server) caller(r *http.Request) *account {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return nil
	}
	return s.tokens[token]
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[strings.ToLower(creds.Email)]
	if !ok || acc.password != creds.Password {
		s.writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	s.writeJSON(w, http.StatusOK, model.AuthResponse{
		AccessToken: s.issueToken(acc),
		Message:     "Login successful",
		User:        model.User{ID: acc.id, Email: acc.email},
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := creds.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[strings.ToLower(creds.Email)]; exists {
		s.writeError(w, http.StatusConflict, "User already exists")
		return
	}

	acc := s.addAccount(creds.Email, creds.Password)
	s.writeJSON(w, http.StatusCreated, model.AuthResponse{
		AccessToken: s.issueToken(acc),
		Message:     "Registration successful",
		User:        model.User{ID: acc.id, Email: acc.email},
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeJSON(w, http.StatusOK, map[string][]string{"categories": s.categories})
}

type predictBody struct {
	Ingredients []string `json:"ingredients"`
	TopN        int      `json:"top_n"`
	MealType    *string  `json:"mealType"`
	TotalTime   *int     `json:"totalTime"`
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var body predictBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(body.Ingredients) == 0 {
		s.writeError(w, http.StatusBadRequest, "At least one ingredient is required")
		return
	}

	s.mu.Lock()
	hook := s.onPredict
	s.mu.Unlock()
	if hook != nil {
		hook(body.Ingredients)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc := s.caller(r)
	var out []model.Recipe
	for _, rec := range s.recipes {
		if !matches(rec, body) {
			continue
		}
		rec.IsFavorite = acc != nil && acc.hasFavorite(rec.ID)
		out = append(out, rec)
		if body.TopN > 0 && len(out) == body.TopN {
			break
		}
	}
	if out == nil {
		out = []model.Recipe{}
	}

	s.writeJSON(w, http.StatusOK, map[string][]model.Recipe{"predictions": out})
}

func matches(rec model.Recipe, body predictBody) bool {
	if body.MealType != nil && !strings.EqualFold(rec.Category, *body.MealType) {
		return false
	}
	if body.TotalTime != nil && rec.TotalTimeMinutes > *body.TotalTime {
		return false
	}
	haystack := strings.ToLower(rec.CleanedIngredients + "," + rec.Ingredients)
	for _, ing := range body.Ingredients {
		if strings.Contains(haystack, strings.ToLower(strings.TrimSpace(ing))) {
			return true
		}
	}
	return false
}

func (s *Server) handleFavorites(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc := s.caller(r)
	if acc == nil {
		s.writeError(w, http.StatusUnauthorized, "Missing or invalid token")
		return
	}

	out := []model.Recipe{}
	for _, id := range acc.favs {
		if i := model.FindRecipe(s.recipes, id); i >= 0 {
			rec := s.recipes[i]
			rec.IsFavorite = true
			out = append(out, rec)
		}
	}
	s.writeJSON(w, http.StatusOK, map[string][]model.Recipe{"favorites": out})
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "recipeID"), 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid recipe ID")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc := s.caller(r)
	if acc == nil {
		s.writeError(w, http.StatusUnauthorized, "Missing or invalid token")
		return
	}
	if model.FindRecipe(s.recipes, id) < 0 {
		s.writeError(w, http.StatusNotFound, "Recipe not found")
		return
	}

	isFavorite := acc.toggle(id)
	msg := "Recipe removed from favorites"
	if isFavorite {
		msg = "Recipe added to favorites"
	}
	s.writeJSON(w, http.StatusOK, model.ToggleResult{
		Message:    msg,
		IsFavorite: isFavorite,
		RecipeID:   id,
	})
}

func (a *account) hasFavorite(id int64) bool {
	for _, f := range a.favs {
		if f == id {
			return true
		}
	}
	return false
}

// toggle flips membership and reports the new state.
func (a *account) toggle(id int64) bool {
	for i, f := range a.favs {
		if f == id {
			a.favs = append(a.favs[:i], a.favs[i+1:]...)
			return false
		}
	}
	a.favs = append(a.favs, id)
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Int("status", status).Msg("failed to write response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
