// Package model defines the core data structures for recipe-cli.
package model

import (
	"errors"
	"strings"
)

// Recipe is a single dish as returned by the prediction and favorites
// endpoints. Only IsFavorite changes after a recipe is fetched.
type Recipe struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"recipe_name"`
	CuisinePath        string  `json:"cuisine_path"`
	TotalTime          string  `json:"total_time"`
	TotalTimeMinutes   int     `json:"total_time_mins"`
	PrepTime           string  `json:"prep_time"`
	CookTime           string  `json:"cook_time"`
	Timing             string  `json:"timing"`
	Servings           int     `json:"servings"`
	Rating             float64 `json:"rating"`
	Ingredients        string  `json:"ingredients"`
	CleanedIngredients string  `json:"cleaned_ingredients"`
	Nutrition          string  `json:"nutrition"`
	Directions         string  `json:"directions"`
	ImageURL           string  `json:"img_src"`
	Category           string  `json:"category"`
	MainCategory       string  `json:"main_category"`
	IsFavorite         bool    `json:"isFavorite"`
}

// IngredientList splits the comma-separated ingredients text.
func (r *Recipe) IngredientList() []string {
	return splitTrimmed(r.Ingredients, ",")
}

// DirectionSteps splits the newline-separated directions text.
func (r *Recipe) DirectionSteps() []string {
	return splitTrimmed(r.Directions, "\n")
}

// NutritionFacts splits the comma-separated nutrition text.
func (r *Recipe) NutritionFacts() []string {
	return splitTrimmed(r.Nutrition, ",")
}

// splitTrimmed splits s on sep, trims each part and drops empty ones.
func splitTrimmed(s, sep string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FindRecipe returns the index of the recipe with the given ID, or -1.
func FindRecipe(recipes []Recipe, id int64) int {
	for i := range recipes {
		if recipes[i].ID == id {
			return i
		}
	}
	return -1
}

// CloneRecipes returns a copy of recipes that shares no backing array.
func CloneRecipes(recipes []Recipe) []Recipe {
	if recipes == nil {
		return []Recipe{}
	}
	out := make([]Recipe, len(recipes))
	copy(out, recipes)
	return out
}

// User identifies an authenticated account.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// Credentials is the body of the login and register calls.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks that both fields are present.
func (c *Credentials) Validate() error {
	if strings.TrimSpace(c.Email) == "" || c.Password == "" {
		return errors.New("email and password are required")
	}
	return nil
}

// AuthResponse is returned by a successful login or registration.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	Message     string `json:"message"`
	User        User   `json:"user"`
}

// ToggleResult is the server's verdict after a favorite toggle.
type ToggleResult struct {
	Message    string `json:"message"`
	IsFavorite bool   `json:"isFavorite"`
	RecipeID   int64  `json:"recipeId"`
}
