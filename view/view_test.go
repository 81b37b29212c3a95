package view

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robertmeta/recipe-cli/model"
)

func sample() model.Recipe {
	return model.Recipe{
		ID:               3,
		Name:             "Veggie Omelette",
		TotalTime:        "15 mins",
		TotalTimeMinutes: 15,
		PrepTime:         "5 mins",
		CookTime:         "10 mins",
		Servings:         1,
		Rating:           4.3,
		Ingredients:      "3 eggs, 1/4 cup milk,, spinach ",
		Nutrition:        "Calories 280, Protein 20g",
		Directions:       "Whisk eggs.\n\nFold when set.",
		ImageURL:         "https://images.example.com/omelette.jpg",
		Category:         "Breakfast",
		MainCategory:     "Breakfast and Brunch",
		IsFavorite:       true,
	}
}

func TestWriteList(t *testing.T) {
	recipes := []model.Recipe{
		sample(),
		{ID: 12, Name: "Soup", TotalTimeMinutes: 40},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteList(&buf, recipes))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "3 * Veggie Omelette")
	assert.Contains(t, lines[0], "15 mins")
	assert.Contains(t, lines[0], "4.3/5")
	assert.Contains(t, lines[1], "12   Soup")
	assert.Contains(t, lines[1], "40 mins")
	assert.Contains(t, lines[1], "unrated")
}

func TestWriteList_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteList(&buf, nil))
	assert.Equal(t, "No recipes.\n", buf.String())
}

func TestMarkdown(t *testing.T) {
	r := sample()
	md := Markdown(&r)

	assert.True(t, strings.HasPrefix(md, "# Veggie Omelette *\n"))
	assert.Contains(t, md, "**Category:** Breakfast")
	assert.Contains(t, md, "**Servings:** 1")
	assert.Contains(t, md, "## Ingredients\n\n- 3 eggs\n- 1/4 cup milk\n- spinach\n")
	assert.Contains(t, md, "## Directions\n\n1. Whisk eggs.\n2. Fold when set.\n")
	assert.Contains(t, md, "- Calories 280\n- Protein 20g\n")
	assert.Contains(t, md, "![Veggie Omelette](https://images.example.com/omelette.jpg)")
}

func TestMarkdown_SparseRecipe(t *testing.T) {
	r := model.Recipe{ID: 1, Name: "Toast"}
	md := Markdown(&r)

	assert.NotContains(t, md, "## Ingredients")
	assert.NotContains(t, md, "## Directions")
	assert.NotContains(t, md, "![")
	assert.Contains(t, md, "**Total:** -")
}

func TestWriteHTML(t *testing.T) {
	r := sample()
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, &r))

	html := buf.String()
	assert.Contains(t, html, "<h1>Veggie Omelette *</h1>")
	assert.Contains(t, html, "<h2>Ingredients</h2>")
	assert.Contains(t, html, "<li>3 eggs</li>")
	assert.Contains(t, html, "<ol>")
	assert.Contains(t, html, `<img src="https://images.example.com/omelette.jpg" alt="Veggie Omelette">`)
}

func TestCategories(t *testing.T) {
	cats := []string{"Breakfast", "Dinner"}
	assert.Equal(t, "- Breakfast\n- Dinner\n", CategoriesMarkdown(cats))

	var buf bytes.Buffer
	require.NoError(t, WriteCategoriesHTML(&buf, cats))
	assert.Equal(t, "<ul>\n<li>Breakfast</li>\n<li>Dinner</li>\n</ul>\n", buf.String())
}

func TestWriteText(t *testing.T) {
	r := sample()
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, &r))

	out := buf.String()
	assert.Contains(t, out, "Veggie Omelette (#3)")
	assert.Contains(t, out, "Favorite")
	assert.Contains(t, out, "  - spinach")
	assert.Contains(t, out, "  2. Fold when set.")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestWriters_PropagateErrors(t *testing.T) {
	r := sample()
	assert.Error(t, WriteList(failingWriter{}, []model.Recipe{r}))
	assert.Error(t, WriteMarkdown(failingWriter{}, &r))
	assert.Error(t, WriteHTML(failingWriter{}, &r))
	assert.Error(t, WriteText(failingWriter{}, &r))
}
