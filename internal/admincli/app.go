// Package admincli implements lacsctl, the operator tool that talks to the
// database directly: it bootstraps the first administrator, resets admin
// passwords and runs location imports outside the HTTP server.
package admincli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lacs/lacsapi/internal/flagx"
	"github.com/lacs/lacsapi/internal/logging"
	"github.com/lacs/lacsapi/internal/server"
	"github.com/lacs/lacsapi/internal/server/auth"
	"github.com/lacs/lacsapi/internal/server/config"
	"github.com/lacs/lacsapi/internal/server/models"
	"github.com/lacs/lacsapi/internal/server/repositories/repomanager"
)

// ErrUnknownCommand is returned for a missing or unrecognized subcommand.
var ErrUnknownCommand = errors.New("unknown command")

// operator is the caller identity used for service calls made from the
// command line.
var operator = &auth.Claims{
	RegisteredClaims: jwt.RegisteredClaims{Subject: "lacsctl"},
	Rol:              models.RoleAdministrador,
	Tipo:             auth.KindAdmin,
}

type App struct {
	manager  repomanager.RepositoryManager
	services *server.Services
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stderr, c.LogLevel)

	m, err := repomanager.NewMongoRepositoryManager(ctx, c.MongoURI, c.DatabaseName)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	return newApp(m, server.NewServices(c, m, nil, logger), os.Stdin, os.Stdout), nil
}

func newApp(m repomanager.RepositoryManager, svc *server.Services, in io.Reader, out io.Writer) *App {
	return &App{manager: m, services: svc, reader: bufio.NewReader(in), out: out}
}

// Run executes the subcommand named by the first element of args.
func (a *App) Run(ctx context.Context, args []string) error {
	defer a.manager.Close(ctx)

	cmd, rest := flagx.SplitCommand(args)
	switch cmd {
	case "bootstrap-admin":
		return a.BootstrapAdmin(ctx)
	case "reset-admin-password":
		return a.ResetAdminPassword(ctx, rest)
	case "load-locations":
		return a.LoadLocations(ctx, rest)
	case "generate-credentials":
		return a.GenerateCredentials(ctx)
	case "help", "":
		a.usage()
		if cmd == "" {
			return ErrUnknownCommand
		}
		return nil
	}
	a.usage()
	return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
}

func (a *App) usage() {
	fmt.Fprintln(a.out, `usage: lacsctl [config flags] <command> [command flags]

commands:
  bootstrap-admin             create the first administrator
  reset-admin-password NICK   set a new administrator password
  load-locations [-force]     import the SEPOMEX catalogue
  generate-credentials        preview a nickname and password`)
}
