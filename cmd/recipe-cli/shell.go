package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/robertmeta/recipe-cli/model"
	"github.com/robertmeta/recipe-cli/state"
	"github.com/robertmeta/recipe-cli/view"
)

const shellHelp = `Commands:
  add <ingredient>[, <ingredient>...]   add ingredients
  rm <ingredient>                       remove an ingredient
  meal <type|All>                       set meal type (re-runs the search)
  time [minutes|any]                    set maximum total time (re-runs the search),
                                        or list the choices when given nothing
  search                                search with the current filters
  select <id>                           select a search result
  show [id]                             show the selected recipe
  fav <id>                              toggle a favorite
  favs                                  list favorites
  login <email> <password>              log in
  register <email> <password> <confirm> create an account
  guest                                 continue as guest
  logout                                log out
  state                                 print all state as JSON
  help                                  show this help
  quit                                  leave the shell
`

var errQuit = errors.New("quit")

// shell is an interactive session over a single App.
type shell struct {
	app *state.App
	out io.Writer
}

func (r *runner) shell(c *cli.Context) error {
	return r.withSession(c, func(ctx context.Context, s *session) error {
		if err := s.app.Bootstrap(ctx); err != nil {
			log.Warn().Err(err).Msg("bootstrap incomplete")
		}

		sh := &shell{app: s.app, out: c.App.Writer}
		return sh.run(ctx, c.App.Reader)
	})
}

func (sh *shell) run(ctx context.Context, in io.Reader) error {
	sess := sh.app.Auth.Session()
	switch {
	case sess.HasToken:
		fmt.Fprintln(sh.out, "A stored access token was found. Type 'help' for commands.")
	default:
		fmt.Fprintln(sh.out, "Not logged in. Use 'login', 'register' or 'guest'. Type 'help' for commands.")
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(sh.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(sh.out)
			return scanner.Err()
		}

		err := sh.exec(ctx, scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(sh.out, "error: %v\n", err)
		}
	}
}

// exec runs one shell line.
func (sh *shell) exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))

	switch cmd {
	case "help", "?":
		fmt.Fprint(sh.out, shellHelp)
	case "quit", "exit":
		return errQuit

	case "add":
		for _, ing := range strings.Split(rest, ",") {
			sh.app.Recipes.AddIngredient(ing)
		}
		sh.printIngredients()
	case "rm":
		sh.app.Recipes.RemoveIngredient(rest)
		sh.printIngredients()
	case "meal":
		return sh.afterRequery(sh.app.Recipes.SetMealType(ctx, rest))
	case "time":
		if rest == "" {
			sh.printTimeOptions()
			return nil
		}
		minutes, err := model.ParseTotalTime(rest)
		if err != nil {
			return err
		}
		return sh.afterRequery(sh.app.Recipes.SetTotalTime(ctx, minutes))
	case "search":
		if err := sh.app.Recipes.Search(ctx); err != nil {
			return err
		}
		return view.WriteList(sh.out, sh.app.Recipes.State().Results)

	case "select":
		id, err := shellID(args)
		if err != nil {
			return err
		}
		sh.app.Recipes.SetSelectedID(&id)
		if _, ok := sh.app.Recipes.Selected(); !ok {
			return fmt.Errorf("recipe %d is not in the results", id)
		}
	case "show":
		if len(args) > 0 {
			id, err := shellID(args)
			if err != nil {
				return err
			}
			sh.app.Recipes.SetSelectedID(&id)
		}
		rec, ok := sh.app.Recipes.Selected()
		if !ok {
			return errors.New("no recipe selected")
		}
		return view.WriteText(sh.out, &rec)

	case "fav":
		id, err := shellID(args)
		if err != nil {
			return err
		}
		if err := sh.app.Favorites.ToggleFavorite(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(sh.out, "Toggled favorite %d.\n", id)
	case "favs":
		if err := sh.app.Favorites.FetchFavorites(ctx); err != nil {
			return err
		}
		return view.WriteList(sh.out, sh.app.Favorites.State().Items)

	case "login":
		if len(args) != 2 {
			return errors.New("usage: login <email> <password>")
		}
		if err := sh.app.Auth.Login(ctx, args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(sh.out, "Logged in as %s.\n", sh.app.Auth.Session().User.Email)
	case "register":
		if len(args) != 3 {
			return errors.New("usage: register <email> <password> <confirm>")
		}
		if err := sh.app.Auth.Register(ctx, args[0], args[1], args[2]); err != nil {
			return err
		}
		fmt.Fprintf(sh.out, "Registered %s.\n", sh.app.Auth.Session().User.Email)
	case "guest":
		sh.app.Auth.ContinueAsGuest()
		fmt.Fprintln(sh.out, "Continuing as guest.")
	case "logout":
		if err := sh.app.Auth.Logout(ctx); err != nil {
			return err
		}
		fmt.Fprintln(sh.out, "Logged out.")

	case "state":
		return outputJSON(sh.out, sh.app.Snapshot())

	default:
		return fmt.Errorf("unknown command %q (type 'help')", cmd)
	}
	return nil
}

// afterRequery prints results after a filter change that may have searched.
func (sh *shell) afterRequery(err error) error {
	if err != nil {
		return err
	}
	st := sh.app.Recipes.State()
	fmt.Fprintf(sh.out, "Filters: meal=%s time=%s\n", st.Filters.MealType, minutesLabel(st.Filters.TotalTime))
	if len(st.Filters.Ingredients) == 0 {
		return nil
	}
	return view.WriteList(sh.out, st.Results)
}

func (sh *shell) printIngredients() {
	ings := sh.app.Recipes.State().Filters.Ingredients
	if len(ings) == 0 {
		fmt.Fprintln(sh.out, "Ingredients: (none)")
		return
	}
	fmt.Fprintf(sh.out, "Ingredients: %s\n", strings.Join(ings, ", "))
}

func (sh *shell) printTimeOptions() {
	labels := make([]string, len(model.TotalTimeOptions))
	for i, m := range model.TotalTimeOptions {
		labels[i] = minutesLabel(m)
	}
	fmt.Fprintf(sh.out, "Total time: %s (choices: %s)\n",
		minutesLabel(sh.app.Recipes.State().Filters.TotalTime), strings.Join(labels, ", "))
}

func minutesLabel(m int) string {
	if m == 0 {
		return "any"
	}
	return strconv.Itoa(m) + "m"
}

func shellID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errors.New("expected one recipe id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid recipe id %q", args[0])
	}
	return id, nil
}
