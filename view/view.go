// Package view renders recipes for the terminal, as Markdown and as HTML.
package view

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/robertmeta/recipe-cli/model"
)

// FavoriteMarker prefixes favorite recipes in list output.
const FavoriteMarker = "*"

// Ingredients returns the recipe's ingredient lines.
func Ingredients(r *model.Recipe) []string { return r.IngredientList() }

// Directions returns the recipe's steps.
func Directions(r *model.Recipe) []string { return r.DirectionSteps() }

// Nutrition returns the recipe's nutrition facts.
func Nutrition(r *model.Recipe) []string { return r.NutritionFacts() }

// WriteList writes one line per recipe: id, favorite marker, name, total
// time and rating.
func WriteList(w io.Writer, recipes []model.Recipe) error {
	if len(recipes) == 0 {
		if _, err := fmt.Fprintln(w, "No recipes."); err != nil {
			return fmt.Errorf("failed to write list: %w", err)
		}
		return nil
	}

	width := 0
	for _, r := range recipes {
		if n := len(r.Name); n > width {
			width = n
		}
	}

	for _, r := range recipes {
		mark := " "
		if r.IsFavorite {
			mark = FavoriteMarker
		}
		line := fmt.Sprintf("%5d %s %-*s  %-14s  %s", r.ID, mark, width, r.Name, totalTime(&r), rating(r.Rating))
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return fmt.Errorf("failed to write list: %w", err)
		}
	}
	return nil
}

func totalTime(r *model.Recipe) string {
	switch {
	case r.TotalTime != "":
		return r.TotalTime
	case r.TotalTimeMinutes > 0:
		return fmt.Sprintf("%d mins", r.TotalTimeMinutes)
	default:
		return "-"
	}
}

func rating(v float64) string {
	if v <= 0 {
		return "unrated"
	}
	return fmt.Sprintf("%.1f/5", v)
}

// Markdown returns the recipe as a Markdown document.
func Markdown(r *model.Recipe) string {
	var b strings.Builder

	title := r.Name
	if r.IsFavorite {
		title += " " + FavoriteMarker
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	var meta []string
	if r.Category != "" {
		meta = append(meta, "**Category:** "+r.Category)
	}
	if r.MainCategory != "" && r.MainCategory != r.Category {
		meta = append(meta, "**Cuisine:** "+r.MainCategory)
	}
	if r.PrepTime != "" {
		meta = append(meta, "**Prep:** "+r.PrepTime)
	}
	if r.CookTime != "" {
		meta = append(meta, "**Cook:** "+r.CookTime)
	}
	meta = append(meta, "**Total:** "+totalTime(r))
	if r.Servings > 0 {
		meta = append(meta, fmt.Sprintf("**Servings:** %d", r.Servings))
	}
	meta = append(meta, "**Rating:** "+rating(r.Rating))
	b.WriteString(strings.Join(meta, "  \n"))
	b.WriteString("\n")

	if items := Ingredients(r); len(items) > 0 {
		b.WriteString("\n## Ingredients\n\n")
		for _, it := range items {
			fmt.Fprintf(&b, "- %s\n", it)
		}
	}

	if steps := Directions(r); len(steps) > 0 {
		b.WriteString("\n## Directions\n\n")
		for i, step := range steps {
			fmt.Fprintf(&b, "%d. %s\n", i+1, step)
		}
	}

	if facts := Nutrition(r); len(facts) > 0 {
		b.WriteString("\n## Nutrition\n\n")
		for _, f := range facts {
			fmt.Fprintf(&b, "- %s\n", f)
		}
	}

	if r.ImageURL != "" {
		fmt.Fprintf(&b, "\n![%s](%s)\n", r.Name, r.ImageURL)
	}

	return b.String()
}

// WriteMarkdown writes the recipe as Markdown.
func WriteMarkdown(w io.Writer, r *model.Recipe) error {
	if _, err := io.WriteString(w, Markdown(r)); err != nil {
		return fmt.Errorf("failed to write markdown: %w", err)
	}
	return nil
}

// WriteHTML writes the recipe as an HTML fragment converted from its
// Markdown form.
func WriteHTML(w io.Writer, r *model.Recipe) error {
	return writeHTML(w, Markdown(r))
}

// CategoriesMarkdown returns the categories as a bulleted list.
func CategoriesMarkdown(categories []string) string {
	var b strings.Builder
	for _, c := range categories {
		fmt.Fprintf(&b, "- %s\n", c)
	}
	return b.String()
}

// WriteCategoriesHTML writes the categories as an HTML list.
func WriteCategoriesHTML(w io.Writer, categories []string) error {
	return writeHTML(w, CategoriesMarkdown(categories))
}

func writeHTML(w io.Writer, md string) error {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return fmt.Errorf("failed to render HTML: %w", err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write HTML: %w", err)
	}
	return nil
}

// WriteText writes the recipe as plain text for the terminal.
func WriteText(w io.Writer, r *model.Recipe) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s (#%d)\n", r.Name, r.ID)
	if r.IsFavorite {
		b.WriteString("Favorite\n")
	}
	if r.Category != "" {
		fmt.Fprintf(&b, "Category: %s\n", r.Category)
	}
	fmt.Fprintf(&b, "Total time: %s\n", totalTime(r))
	if r.Servings > 0 {
		fmt.Fprintf(&b, "Servings: %d\n", r.Servings)
	}
	fmt.Fprintf(&b, "Rating: %s\n", rating(r.Rating))

	if items := Ingredients(r); len(items) > 0 {
		b.WriteString("\nIngredients:\n")
		for _, it := range items {
			fmt.Fprintf(&b, "  - %s\n", it)
		}
	}
	if steps := Directions(r); len(steps) > 0 {
		b.WriteString("\nDirections:\n")
		for i, step := range steps {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, step)
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write recipe: %w", err)
	}
	return nil
}
