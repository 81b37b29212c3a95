// Package api provides the HTTP client for the remote recipe API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/robertmeta/recipe-cli/model"
)

// Endpoint paths, relative to the base URL.
const (
	PathLogin      = "/auth/login"
	PathRegister   = "/auth/register"
	PathCategories = "/recipe/categories"
	PathPredict    = "/recipe/predict"
	PathFavorites  = "/favourite/get"
	PathToggle     = "/favourite/toggle/"
)

// TokenSource supplies the bearer token attached to outbound requests.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds each request. Zero, the default, leaves requests
// unbounded so a hung call stays pending.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithTopN overrides how many predictions are requested.
func WithTopN(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.topN = n
		}
	}
}

// Client talks to the recipe API.
type Client struct {
	baseURL string
	tokens  TokenSource
	topN    int
	http    *http.Client
	log     zerolog.Logger
}

// NewClient creates a client for the API rooted at baseURL. tokens may be
// nil, in which case no Authorization header is ever sent.
func NewClient(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		topN:    model.DefaultTopN,
		http:    &http.Client{},
		log:     zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// predictRequest is the body of the predict call.
type predictRequest struct {
	Ingredients []string `json:"ingredients"`
	TopN        int      `json:"top_n"`
	MealType    *string  `json:"mealType"`
	TotalTime   *int     `json:"totalTime"`
}

type predictResponse struct {
	Predictions []model.Recipe `json:"predictions"`
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}

type favoritesResponse struct {
	Favorites []model.Recipe `json:"favorites"`
}

// errorBody is the shape of an error response.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Login authenticates an existing account.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (*model.AuthResponse, error) {
	var out model.AuthResponse
	if err := c.do(ctx, http.MethodPost, PathLogin, creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account and authenticates it.
func (c *Client) Register(ctx context.Context, creds model.Credentials) (*model.AuthResponse, error) {
	var out model.AuthResponse
	if err := c.do(ctx, http.MethodPost, PathRegister, creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Categories returns the meal categories known to the API.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var out categoriesResponse
	if err := c.do(ctx, http.MethodGet, PathCategories, nil, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

// Predict returns recipes matching q. An empty slice is a valid answer.
func (c *Client) Predict(ctx context.Context, q model.PredictQuery) ([]model.Recipe, error) {
	body := predictRequest{
		Ingredients: q.Ingredients,
		TopN:        c.topN,
		MealType:    q.MealType,
		TotalTime:   q.TotalTime,
	}
	if body.Ingredients == nil {
		body.Ingredients = []string{}
	}

	var out predictResponse
	if err := c.do(ctx, http.MethodPost, PathPredict, body, &out); err != nil {
		return nil, err
	}
	return out.Predictions, nil
}

// Favorites returns the authenticated user's saved recipes.
func (c *Client) Favorites(ctx context.Context) ([]model.Recipe, error) {
	var out favoritesResponse
	if err := c.do(ctx, http.MethodGet, PathFavorites, nil, &out); err != nil {
		return nil, err
	}
	return out.Favorites, nil
}

// ToggleFavorite flips the favorite status of a recipe on the server.
func (c *Client) ToggleFavorite(ctx context.Context, recipeID int64) (*model.ToggleResult, error) {
	var out model.ToggleResult
	path := PathToggle + strconv.FormatInt(recipeID, 10)
	if err := c.do(ctx, http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do sends a JSON request and decodes a JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("api: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	reqID := ulid.Make().String()
	req.Header.Set("X-Request-Id", reqID)

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("api: read token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: read response: %w", err)
	}

	c.log.Debug().
		Str("request_id", reqID).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, respBody)
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}

// newAPIError builds an APIError, preferring the body's "error" field over
// its "message" field.
func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		switch {
		case eb.Error != "":
			apiErr.Message = eb.Error
		case eb.Message != "":
			apiErr.Message = eb.Message
		}
	}
	return apiErr
}
