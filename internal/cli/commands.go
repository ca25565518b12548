package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"
	"watchlist/internal/errors"
	"watchlist/internal/models"
)

func (a *App) printMovies(movies []models.Movie, userID string) {
	if len(movies) == 0 {
		fmt.Fprintln(a.out, "no movies")
		return
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tYEAR\tDIRECTOR\tSEEN\tFAV\tTIER")
	for i := range movies {
		m := &movies[i]
		st := m.StateFor(userID)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			m.ID, m.Title, orDash(m.YearString()), orDash(m.Director), mark(st.Seen), mark(st.Favorite), st.Tier)
	}
	_ = tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func mark(b bool) string {
	if b {
		return "x"
	}
	return "."
}

func runList(_ context.Context, a *App, args []string) error {
	fs := a.newFlagSet("list")
	q := fs.String("q", "", "filter by title, director, notes or year")
	if _, err := parseInterspersed(fs, args); err != nil {
		return err
	}
	userID, err := a.resolveUser("me")
	if err != nil {
		return err
	}
	a.store.SetGlobalQuery(*q)
	a.printMovies(a.store.FilteredMovies(), userID)
	return nil
}

func runRecent(_ context.Context, a *App, args []string) error {
	fs := a.newFlagSet("recent")
	q := fs.String("q", "", "filter by title, director, notes or year")
	if _, err := parseInterspersed(fs, args); err != nil {
		return err
	}
	userID, err := a.resolveUser("me")
	if err != nil {
		return err
	}
	a.store.SetGlobalQuery(*q)
	a.printMovies(a.store.Recent(), userID)
	return nil
}

func runFavorites(_ context.Context, a *App, args []string) error {
	fs := a.newFlagSet("favorites")
	who := fs.String("user", "me", "me, partner or a user id")
	q := fs.String("q", "", "filter query")
	if _, err := parseInterspersed(fs, args); err != nil {
		return err
	}
	userID, err := a.resolveUser(*who)
	if err != nil {
		return err
	}
	a.store.SetGlobalQuery(*q)
	a.printMovies(a.store.Favorites(userID), userID)
	return nil
}

func runTiers(_ context.Context, a *App, args []string) error {
	fs := a.newFlagSet("tiers")
	who := fs.String("user", "me", "me, partner or a user id")
	q := fs.String("q", "", "filter query")
	if _, err := parseInterspersed(fs, args); err != nil {
		return err
	}
	userID, err := a.resolveUser(*who)
	if err != nil {
		return err
	}
	a.store.SetGlobalQuery(*q)
	board := a.store.TierBoard(userID)
	for _, t := range models.TierLanes {
		lane := board.Lane(t)
		fmt.Fprintf(a.out, "[%s] (%d)\n", t, len(lane))
		for _, m := range lane {
			fmt.Fprintf(a.out, "  %s  %s\n", m.ID, m.Title)
		}
	}
	return nil
}

func runTop(_ context.Context, a *App, args []string) error {
	fs := a.newFlagSet("top")
	who := fs.String("user", "me", "me, partner or a user id")
	if _, err := parseInterspersed(fs, args); err != nil {
		return err
	}
	userID, err := a.resolveUser(*who)
	if err != nil {
		return err
	}
	top := a.store.TopTier(userID)
	if len(top) == 0 {
		fmt.Fprintln(a.out, "no tiered movies")
		return nil
	}
	for i, m := range top {
		fmt.Fprintf(a.out, "%d. [%s] %s\n", i+1, m.StateFor(userID).Tier, m.Title)
	}
	return nil
}

func runStats(ctx context.Context, a *App, args []string) error {
	fs := a.newFlagSet("stats")
	who := fs.String("user", "me", "me, partner or a user id")
	if _, err := parseInterspersed(fs, args); err != nil {
		return err
	}
	userID, err := a.resolveUser(*who)
	if err != nil {
		return err
	}
	st, err := a.store.StatsFor(ctx, userID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "total %d  favorites %d  seen %d (%d%%)  tier S %d\n", st.Total, st.Fav, st.Seen, st.SeenPct, st.TierS)
	return nil
}

func runAdd(ctx context.Context, a *App, args []string) error {
	fs := a.newFlagSet("add")
	title := fs.String("title", "", "movie title (required)")
	year := fs.String("year", "", "release year")
	director := fs.String("director", "", "director")
	notes := fs.String("notes", "", "free-form notes")
	tier := fs.String("tier", "", "your tier: S, A, B, C, D")
	fav := fs.Bool("fav", false, "mark as favorite")
	seen := fs.Bool("seen", false, "mark as seen")
	if _, err := parseInterspersed(fs, args); err != nil {
		return err
	}

	t, err := models.ParseTier(*tier)
	if err != nil {
		return err
	}
	movie, err := a.store.CreateMovie(ctx, models.CreateMovieInput{
		Title:    *title,
		Year:     models.YearInput(*year),
		Director: *director,
		Notes:    *notes,
		Tier:     t,
		Favorite: *fav,
		Seen:     *seen,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "added %s %q\n", movie.ID, movie.Title)
	return nil
}

// runFlag backs the seen and fav commands.
func runFlag(ctx context.Context, a *App, name string, args []string, patchFor func(bool) models.PerUserPatch) error {
	fs := a.newFlagSet(name)
	who := fs.String("user", "me", "me, partner or a user id")
	off := fs.Bool("off", false, "clear instead of set")
	pos, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(pos) != 1 {
		return errors.Validationf("%s needs exactly one movie id", name)
	}
	userID, err := a.resolveUser(*who)
	if err != nil {
		return err
	}
	movie, err := a.store.UpdatePerUser(ctx, pos[0], userID, patchFor(!*off))
	if err != nil {
		return err
	}
	st := movie.StateFor(userID)
	fmt.Fprintf(a.out, "%s: seen=%s fav=%s tier=%s\n", movie.Title, strconv.FormatBool(st.Seen), strconv.FormatBool(st.Favorite), st.Tier)
	return nil
}

func runSeen(ctx context.Context, a *App, args []string) error {
	return runFlag(ctx, a, "seen", args, func(v bool) models.PerUserPatch {
		return models.PerUserPatch{Seen: &v}
	})
}

func runFav(ctx context.Context, a *App, args []string) error {
	return runFlag(ctx, a, "fav", args, func(v bool) models.PerUserPatch {
		return models.PerUserPatch{Favorite: &v}
	})
}

func runTier(ctx context.Context, a *App, args []string) error {
	fs := a.newFlagSet("tier")
	who := fs.String("user", "me", "me, partner or a user id")
	pos, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(pos) != 2 {
		return errors.Validation("tier needs a movie id and a tier")
	}
	t, err := models.ParseTier(pos[1])
	if err != nil {
		return err
	}
	userID, err := a.resolveUser(*who)
	if err != nil {
		return err
	}
	movie, err := a.store.UpdatePerUser(ctx, pos[0], userID, models.PerUserPatch{Tier: &t})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s: tier %s\n", movie.Title, t)
	return nil
}

func runDelete(ctx context.Context, a *App, args []string) error {
	if len(args) != 1 {
		return errors.Validation("delete needs exactly one movie id")
	}
	if err := a.store.DeleteMovie(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "deleted %s\n", args[0])
	return nil
}

func runSwitch(ctx context.Context, a *App, _ []string) error {
	if err := a.store.SwitchUser(ctx); err != nil {
		return err
	}
	return runWhoami(ctx, a, nil)
}

func runWhoami(_ context.Context, a *App, _ []string) error {
	me, ok := a.store.Me()
	if !ok {
		return errors.NotFound("acting user is unknown")
	}
	fmt.Fprintf(a.out, "%s (%s) [%s]\n", me.Name, me.ID, me.Initial)
	return nil
}

func runLogin(ctx context.Context, a *App, args []string) error {
	authn, ok := a.port.(Authenticator)
	if !ok {
		return errors.Validation("login needs a remote backend; set WATCHLIST_API_BASE_URL")
	}
	fs := a.newFlagSet("login")
	password := fs.String("password", "", "shared password")
	pos, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(pos) != 1 {
		return errors.Validation("login needs exactly one user id")
	}

	res, err := authn.Login(ctx, pos[0], *password)
	if err != nil {
		return err
	}
	if err := a.tokens.Save(res.AccessToken); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "signed in as %s (%s)\n", res.User.Name, res.User.ID)
	return nil
}

func runLogout(_ context.Context, a *App, _ []string) error {
	if err := a.tokens.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "signed out")
	return nil
}
