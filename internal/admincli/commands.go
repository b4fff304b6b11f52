package admincli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/lacs/lacsapi/internal/common"
	"github.com/lacs/lacsapi/internal/server/services"
)

var errPasswordMismatch = errors.New("passwords do not match")

func (a *App) askNames() (services.Names, error) {
	var (
		n   services.Names
		err error
	)
	if n.Nombre, err = GetSimpleText(a.reader, "Nombre", a.out); err != nil {
		return n, err
	}
	if n.ApellidoPaterno, err = GetSimpleText(a.reader, "Apellido paterno", a.out); err != nil {
		return n, err
	}
	if n.ApellidoMaterno, err = GetSimpleText(a.reader, "Apellido materno (optional)", a.out); err != nil && !errors.Is(err, io.EOF) {
		return n, err
	}
	return n, nil
}

func (a *App) BootstrapAdmin(ctx context.Context) error {
	names, err := a.askNames()
	if err != nil {
		return err
	}

	created, err := a.services.Admins.CreateFirstAdmin(ctx, names)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Administrator created. Store these credentials now, the password is not shown again.\n")
	fmt.Fprintf(a.out, "  nickname: %s\n  password: %s\n", created.Credentials.Nickname, created.Credentials.Password)
	return nil
}

func (a *App) ResetAdminPassword(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reset-admin-password", flag.ContinueOnError)
	fs.SetOutput(a.out)
	if err := fs.Parse(args); err != nil {
		return err
	}

	nickname := fs.Arg(0)
	if nickname == "" {
		var err error
		if nickname, err = GetSimpleText(a.reader, "Administrator nickname", a.out); err != nil {
			return err
		}
	}
	if nickname == "" {
		return fmt.Errorf("%w: nickname is required", common.ErrorValidation)
	}

	pw, err := GetPassword(a.out, "New password")
	if err != nil {
		return err
	}
	again, err := GetPassword(a.out, "Repeat password")
	if err != nil {
		return err
	}
	if pw != again {
		return errPasswordMismatch
	}

	if err := a.services.Admins.SetPassword(ctx, nickname, pw); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Password updated for %s\n", nickname)
	return nil
}

func (a *App) LoadLocations(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("load-locations", flag.ContinueOnError)
	fs.SetOutput(a.out)
	force := fs.Bool("force", false, "reload even if locations are present")
	if err := fs.Parse(args); err != nil {
		return err
	}

	report, err := a.services.Locations.LoadSync(ctx, *force)
	if err != nil {
		return err
	}
	return a.printJSON(report)
}

func (a *App) GenerateCredentials(ctx context.Context) error {
	names, err := a.askNames()
	if err != nil {
		return err
	}
	creds, err := a.services.Admins.GenerateCredentials(ctx, operator, names)
	if err != nil {
		return err
	}
	return a.printJSON(creds)
}

func (a *App) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
