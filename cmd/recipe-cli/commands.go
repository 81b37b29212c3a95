package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/robertmeta/recipe-cli/model"
	"github.com/robertmeta/recipe-cli/state"
)

func (r *runner) login(c *cli.Context) error {
	return r.withSession(c, func(ctx context.Context, s *session) error {
		if err := s.app.Auth.Login(ctx, c.String("email"), c.String("password")); err != nil {
			return authExitErr(err)
		}
		return outputJSON(c.App.Writer, map[string]interface{}{
			"success": true,
			"session": s.app.Auth.Session(),
		})
	})
}

func (r *runner) register(c *cli.Context) error {
	confirm := c.String("confirm")
	if !c.IsSet("confirm") {
		confirm = c.String("password")
	}

	return r.withSession(c, func(ctx context.Context, s *session) error {
		if err := s.app.Auth.Register(ctx, c.String("email"), c.String("password"), confirm); err != nil {
			return authExitErr(err)
		}
		return outputJSON(c.App.Writer, map[string]interface{}{
			"success": true,
			"session": s.app.Auth.Session(),
		})
	})
}

func (r *runner) logout(c *cli.Context) error {
	return r.withSession(c, func(ctx context.Context, s *session) error {
		if err := s.app.Auth.Logout(ctx); err != nil {
			return cli.Exit(fmt.Sprintf("Failed to erase token: %v", err), ExitDataError)
		}
		return outputJSON(c.App.Writer, map[string]interface{}{
			"success": true,
		})
	})
}

func (r *runner) status(c *cli.Context) error {
	return r.withSession(c, func(ctx context.Context, s *session) error {
		token, err := s.db.Token(ctx)
		if err != nil {
			return cli.Exit(fmt.Sprintf("Failed to read token: %v", err), ExitDataError)
		}
		return outputJSON(c.App.Writer, map[string]interface{}{
			"logged_in": token != "",
			"api":       r.cfg.APIBaseURL,
			"db":        r.cfg.DBPath,
		})
	})
}

func (r *runner) categories(c *cli.Context) error {
	format, err := parseFormat(c.String("format"))
	if err != nil {
		return cli.Exit(err.Error(), ExitUsageError)
	}

	return r.withSession(c, func(ctx context.Context, s *session) error {
		if err := s.app.Recipes.LoadCategories(ctx); err != nil {
			return exitErr(err)
		}
		return writeCategories(c.App.Writer, format, s.app.Recipes.State().Categories)
	})
}

// applyFilters loads the search flags into the store. Meal type and total
// time go in first so the store does not re-query before the ingredients
// are set.
func applyFilters(ctx context.Context, c *cli.Context, recipes *state.RecipeSearchStore) error {
	filters, err := model.BuildFilters(c.StringSlice("ingredient"), c.String("meal-type"), c.String("total-time"))
	if err != nil {
		return cli.Exit(err.Error(), ExitUsageError)
	}
	if len(filters.Ingredients) == 0 {
		return cli.Exit("At least one --ingredient is required", ExitUsageError)
	}

	if err := recipes.SetMealType(ctx, filters.MealType); err != nil {
		return exitErr(err)
	}
	if err := recipes.SetTotalTime(ctx, filters.TotalTime); err != nil {
		return exitErr(err)
	}
	recipes.SetIngredients(filters.Ingredients)
	return nil
}

func (r *runner) search(c *cli.Context) error {
	format, err := parseFormat(c.String("format"))
	if err != nil {
		return cli.Exit(err.Error(), ExitUsageError)
	}

	return r.withSession(c, func(ctx context.Context, s *session) error {
		if err := applyFilters(ctx, c, s.app.Recipes); err != nil {
			return err
		}
		if err := s.app.Recipes.Search(ctx); err != nil {
			return exitErr(err)
		}

		st := s.app.Recipes.State()
		if format == formatJSON {
			return outputJSON(c.App.Writer, map[string]interface{}{
				"count":   len(st.Results),
				"filters": st.Filters,
				"results": st.Results,
			})
		}
		return writeRecipes(c.App.Writer, format, st.Results)
	})
}

func (r *runner) favorites(c *cli.Context) error {
	format, err := parseFormat(c.String("format"))
	if err != nil {
		return cli.Exit(err.Error(), ExitUsageError)
	}

	return r.withSession(c, func(ctx context.Context, s *session) error {
		if err := s.app.Favorites.FetchFavorites(ctx); err != nil {
			return exitErr(err)
		}

		items := s.app.Favorites.State().Items
		if format == formatJSON {
			return outputJSON(c.App.Writer, map[string]interface{}{
				"count":     len(items),
				"favorites": items,
			})
		}
		return writeRecipes(c.App.Writer, format, items)
	})
}

func parseRecipeID(c *cli.Context, usage string) (int64, error) {
	if c.NArg() < 1 {
		return 0, cli.Exit(usage, ExitUsageError)
	}
	id, err := strconv.ParseInt(c.Args().Get(0), 10, 64)
	if err != nil || id <= 0 {
		return 0, cli.Exit("Invalid recipe ID", ExitUsageError)
	}
	return id, nil
}

func (r *runner) toggle(c *cli.Context) error {
	id, err := parseRecipeID(c, "Usage: recipe-cli toggle <recipe-id>")
	if err != nil {
		return err
	}

	return r.withSession(c, func(ctx context.Context, s *session) error {
		var got *state.FavoriteToggled
		s.app.Bus.SubscribeFavoriteToggled(func(ev state.FavoriteToggled) { got = &ev })

		if err := s.app.Favorites.ToggleFavorite(ctx, id); err != nil {
			return exitErr(err)
		}
		return outputJSON(c.App.Writer, map[string]interface{}{
			"success":     true,
			"recipe_id":   got.RecipeID,
			"is_favorite": got.IsFavorite,
		})
	})
}

func (r *runner) show(c *cli.Context) error {
	id, err := parseRecipeID(c, "Usage: recipe-cli show <recipe-id> (-i <ingredient>... | --favorites)")
	if err != nil {
		return err
	}
	format, err := parseFormat(c.String("format"))
	if err != nil {
		return cli.Exit(err.Error(), ExitUsageError)
	}

	return r.withSession(c, func(ctx context.Context, s *session) error {
		var (
			rec model.Recipe
			ok  bool
		)
		if c.Bool("favorites") {
			if err := s.app.Favorites.FetchFavorites(ctx); err != nil {
				return exitErr(err)
			}
			s.app.Favorites.SetSelectedID(&id)
			rec, ok = s.app.Favorites.Selected()
		} else {
			if err := applyFilters(ctx, c, s.app.Recipes); err != nil {
				return err
			}
			if err := s.app.Recipes.Search(ctx); err != nil {
				return exitErr(err)
			}
			s.app.Recipes.SetSelectedID(&id)
			rec, ok = s.app.Recipes.Selected()
		}
		if !ok {
			return cli.Exit(fmt.Sprintf("Recipe %d not found", id), ExitDataError)
		}
		return writeRecipe(c.App.Writer, format, &rec)
	})
}
