package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/robertmeta/recipe-cli/model"
	"github.com/robertmeta/recipe-cli/view"
)

const (
	formatText     = "text"
	formatJSON     = "json"
	formatMarkdown = "markdown"
	formatHTML     = "html"
)

func parseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "", formatText:
		return formatText, nil
	case formatJSON, formatMarkdown, formatHTML:
		return f, nil
	case "md":
		return formatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown format %q (expected text, json, markdown or html)", s)
	}
}

func writeCategories(w io.Writer, format string, categories []string) error {
	switch format {
	case formatJSON:
		return outputJSON(w, map[string]interface{}{
			"count":      len(categories),
			"categories": categories,
		})
	case formatMarkdown:
		_, err := io.WriteString(w, view.CategoriesMarkdown(categories))
		return err
	case formatHTML:
		return view.WriteCategoriesHTML(w, categories)
	default:
		for _, cat := range categories {
			fmt.Fprintln(w, cat)
		}
		return nil
	}
}

// writeRecipes renders a list. Markdown and HTML render every recipe in full.
func writeRecipes(w io.Writer, format string, recipes []model.Recipe) error {
	switch format {
	case formatJSON:
		return outputJSON(w, recipes)
	case formatMarkdown, formatHTML:
		for i := range recipes {
			if i > 0 && format == formatMarkdown {
				if _, err := io.WriteString(w, "\n---\n\n"); err != nil {
					return err
				}
			}
			if err := writeRecipe(w, format, &recipes[i]); err != nil {
				return err
			}
		}
		return nil
	default:
		return view.WriteList(w, recipes)
	}
}

func writeRecipe(w io.Writer, format string, r *model.Recipe) error {
	switch format {
	case formatJSON:
		return outputJSON(w, r)
	case formatMarkdown:
		return view.WriteMarkdown(w, r)
	case formatHTML:
		return view.WriteHTML(w, r)
	default:
		return view.WriteText(w, r)
	}
}
