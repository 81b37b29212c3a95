package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCredentials_Validation(t *testing.T) {
	tests := []struct {
		name    string
		creds   Credentials
		wantErr bool
	}{
		{
			name:    "valid credentials",
			creds:   Credentials{Email: "cook@example.com", Password: "secret"},
			wantErr: false,
		},
		{
			name:    "missing email",
			creds:   Credentials{Password: "secret"},
			wantErr: true,
		},
		{
			name:    "blank email",
			creds:   Credentials{Email: "   ", Password: "secret"},
			wantErr: true,
		},
		{
			name:    "missing password",
			creds:   Credentials{Email: "cook@example.com"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.creds.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRecipe_IngredientList(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		expect []string
	}{
		{"simple", "eggs, milk, flour", []string{"eggs", "milk", "flour"}},
		{"empty entries dropped", "eggs,, ,milk,", []string{"eggs", "milk"}},
		{"whitespace only", "   ", nil},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Recipe{Ingredients: tt.text}
			assert.Equal(t, tt.expect, r.IngredientList())
		})
	}
}

func TestRecipe_DirectionSteps(t *testing.T) {
	r := Recipe{Directions: "Whisk the eggs.\n\n  Heat the pan.  \n\t\nServe."}
	assert.Equal(t, []string{"Whisk the eggs.", "Heat the pan.", "Serve."}, r.DirectionSteps())
}

func TestRecipe_NutritionFacts(t *testing.T) {
	r := Recipe{Nutrition: "Calories 200, Fat 10g ,,Protein 8g"}
	assert.Equal(t, []string{"Calories 200", "Fat 10g", "Protein 8g"}, r.NutritionFacts())
}

func TestFindRecipe(t *testing.T) {
	recipes := []Recipe{{ID: 1}, {ID: 7}, {ID: 3}}

	assert.Equal(t, 1, FindRecipe(recipes, 7))
	assert.Equal(t, 0, FindRecipe(recipes, 1))
	assert.Equal(t, -1, FindRecipe(recipes, 42))
	assert.Equal(t, -1, FindRecipe(nil, 1))
}

func TestCloneRecipes(t *testing.T) {
	orig := []Recipe{{ID: 1, IsFavorite: false}}
	clone := CloneRecipes(orig)
	clone[0].IsFavorite = true

	assert.False(t, orig[0].IsFavorite, "clone must not share the backing array")
	assert.NotNil(t, CloneRecipes(nil))
	assert.Empty(t, CloneRecipes(nil))
}
