// Package cli implements watchlistctl, a terminal front-end over the state
// store. It talks to whichever backend the configuration selects.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"watchlist/internal/errors"
	"watchlist/internal/providers"
	"watchlist/internal/services"
	"watchlist/internal/session"
	"watchlist/internal/state"
)

// Authenticator is implemented by backends that issue access tokens.
type Authenticator interface {
	Login(ctx context.Context, userID, password string) (services.LoginResult, error)
}

type command struct {
	usage     string
	needsInit bool
	run       func(ctx context.Context, a *App, args []string) error
}

var commands = map[string]command{
	"list":      {"list [-q query]", true, runList},
	"recent":    {"recent [-q query]", true, runRecent},
	"favorites": {"favorites [-user me|partner|<id>] [-q query]", true, runFavorites},
	"tiers":     {"tiers [-user me|partner|<id>] [-q query]", true, runTiers},
	"top":       {"top [-user me|partner|<id>]", true, runTop},
	"stats":     {"stats [-user me|partner|<id>]", true, runStats},
	"add":       {"add -title T [-year Y] [-director D] [-notes N] [-tier S|A|B|C|D] [-fav] [-seen]", true, runAdd},
	"seen":      {"seen <movieId> [-user ...] [-off]", true, runSeen},
	"fav":       {"fav <movieId> [-user ...] [-off]", true, runFav},
	"tier":      {"tier <movieId> <S|A|B|C|D|none> [-user ...]", true, runTier},
	"delete":    {"delete <movieId>", true, runDelete},
	"switch":    {"switch", true, runSwitch},
	"whoami":    {"whoami", true, runWhoami},
	"login":     {"login <userId> [-password P]", false, runLogin},
	"logout":    {"logout", false, runLogout},
}

type App struct {
	port   services.WatchlistServiceInterface
	tokens session.TokenStore
	store  *state.Store
	nav    *navigator
	out    io.Writer
	errOut io.Writer
}

func NewApp(port services.WatchlistServiceInterface, tokens session.TokenStore, logger providers.Logger, out, errOut io.Writer) *App {
	nav := &navigator{errOut: errOut}
	return &App{
		port:   port,
		tokens: tokens,
		store:  state.NewStore(port, nav, logger),
		nav:    nav,
		out:    out,
		errOut: errOut,
	}
}

// Run executes one command line, e.g. ["tier", "m1", "S"].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.Usage()
		return errors.Validation("no command given")
	}
	cmd, ok := commands[args[0]]
	if !ok {
		a.Usage()
		return errors.Validationf("unknown command %q", args[0])
	}

	a.nav.route = "/" + args[0]
	if cmd.needsInit {
		if err := a.store.Init(ctx); err != nil {
			return err
		}
	}
	return cmd.run(ctx, a, args[1:])
}

func (a *App) Usage() {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(a.errOut, "usage: watchlistctl [-config file] <command> [args]")
	fmt.Fprintln(a.errOut, "commands:")
	for _, name := range names {
		fmt.Fprintf(a.errOut, "  %s\n", commands[name].usage)
	}
}

// navigator maps the login redirect onto a hint for the terminal user.
type navigator struct {
	route  string
	errOut io.Writer
}

func (n *navigator) CurrentRoute() string {
	return n.route
}

func (n *navigator) Redirect(route string) {
	n.route = route
	if route == state.LoginRoute {
		fmt.Fprintln(n.errOut, "not signed in or backend unreachable; try: watchlistctl login <userId>")
	}
}

// newFlagSet returns a flag set that reports errors instead of exiting.
func (a *App) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	return fs
}

// parseInterspersed lets positional arguments come before flags, as in
// "tier m1 S -user partner".
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, errors.Validation(err.Error())
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

// resolveUser turns "me", "partner" or an explicit id into a user id.
func (a *App) resolveUser(who string) (string, error) {
	who = strings.TrimSpace(who)
	switch strings.ToLower(who) {
	case "", "me":
		me, ok := a.store.Me()
		if !ok {
			return "", errors.NotFound("acting user is unknown")
		}
		return me.ID, nil
	case "partner":
		target, ok := a.store.Target()
		if !ok {
			return "", errors.NotFound("no partner user")
		}
		return target.ID, nil
	default:
		u, ok := a.store.User(who)
		if !ok {
			return "", errors.NotFoundf("user %s not found", who)
		}
		return u.ID, nil
	}
}
