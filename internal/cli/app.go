// Package cli implements astroctl, the operator tool for the astrochat
// database: schema migration, account creation and password resets.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dmitrijs2005/astrochat/internal/common"
	"github.com/dmitrijs2005/astrochat/internal/server/gateway"
)

var errUsage = errors.New("usage")

// Commands lists the subcommands in help order.
var Commands = []string{"migrate", "create-user", "issue-token", "check-token", "reset-password", "show-profile", "help"}

type App struct {
	gateway *gateway.Gateway
	out     io.Writer
}

func NewApp(g *gateway.Gateway, out io.Writer) *App {
	return &App{gateway: g, out: out}
}

// SplitCommand drops everything before the first known subcommand, so
// configuration flags can precede it.
func SplitCommand(args []string) []string {
	for i, a := range args {
		for _, c := range Commands {
			if a == c {
				return args[i:]
			}
		}
	}
	return nil
}

// Run executes one subcommand.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return errUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "migrate":
		return a.migrate(ctx)
	case "create-user":
		return a.createUser(ctx, rest)
	case "issue-token":
		return a.issueToken(ctx, rest)
	case "check-token":
		return a.checkToken(ctx, rest)
	case "reset-password":
		return a.resetPassword(ctx, rest)
	case "show-profile":
		return a.showProfile(ctx, rest)
	case "help":
		a.usage()
		return nil
	default:
		a.usage()
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func (a *App) usage() {
	fmt.Fprintln(a.out, `Usage: astroctl [config flags] <command> [args]

Commands:
  migrate                          create or upgrade the schema
  create-user <username> <email>   register an account (password is prompted)
  issue-token <email> [minutes]    print a fresh password reset token
  check-token <email> <token>      report whether a reset token is valid
  reset-password <email> <token>   set a new password using a reset token
  show-profile <user-id>           print the stored birth profile`)
}

func (a *App) migrate(ctx context.Context) error {
	if err := a.gateway.InitializeSchema(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "schema is up to date")
	return nil
}

func (a *App) createUser(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: create-user <username> <email>", errUsage)
	}
	pw, err := GetNewPassword(a.out)
	if err != nil {
		return err
	}

	u, err := a.gateway.CreateUser(ctx, args[0], args[1], pw)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return fmt.Errorf("user %s already exists", args[1])
		}
		return err
	}
	fmt.Fprintf(a.out, "created user %d (%s)\n", u.ID, u.Email)
	return nil
}

func (a *App) issueToken(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: issue-token <email> [minutes]", errUsage)
	}
	var ttl time.Duration
	if len(args) == 2 {
		minutes, err := strconv.Atoi(args[1])
		if err != nil || minutes <= 0 {
			return fmt.Errorf("%w: minutes must be a positive integer", errUsage)
		}
		ttl = time.Duration(minutes) * time.Minute
	}

	token, err := a.gateway.IssueResetToken(ctx, args[0], ttl)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("no user with email %s", args[0])
		}
		return err
	}
	fmt.Fprintln(a.out, token)
	return nil
}

func (a *App) checkToken(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: check-token <email> <token>", errUsage)
	}
	ok, err := a.gateway.ValidateResetToken(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintln(a.out, "valid")
	} else {
		fmt.Fprintln(a.out, "invalid")
	}
	return nil
}

func (a *App) resetPassword(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: reset-password <email> <token>", errUsage)
	}
	pw, err := GetNewPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.gateway.ResetPassword(ctx, args[0], args[1], pw); err != nil {
		if errors.Is(err, common.ErrInvalidToken) {
			return errors.New("invalid or expired token")
		}
		return err
	}
	fmt.Fprintln(a.out, "password updated")
	return nil
}

func (a *App) showProfile(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: show-profile <user-id>", errUsage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("%w: user id must be an integer", errUsage)
	}

	p, err := a.gateway.GetProfile(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("user %d has no profile", id)
		}
		return err
	}

	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}
