package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/darasa/console/core/identity"
	"github.com/darasa/console/core/nav"
)

var errNotLoggedIn = errors.New("not logged in")

func (cli *commandLine) login(ctx context.Context, uname, pwd string) error {
	creds := identity.Credentials{Username: uname, Password: pwd}
	if err := cli.provider.Login(ctx, creds); err != nil {
		return err
	}
	ident := cli.provider.Identity()
	fmt.Fprintf(cli.out, "Logged in as %s (%s)\n", ident.DisplayName(), ident.Role)
	fmt.Fprintf(cli.out, "Landing screen: %s\n", nav.DefaultLandingFor(ident.Role))
	return nil
}

func (cli *commandLine) logout() error {
	cli.provider.Logout()
	fmt.Fprintln(cli.out, "Logged out")
	return nil
}

func (cli *commandLine) whoami() error {
	ident := cli.provider.Identity()
	if ident == nil {
		return errNotLoggedIn
	}
	fmt.Fprintf(cli.out, "%s\n", ident.DisplayName())
	fmt.Fprintf(cli.out, "  username: %s\n", ident.Username)
	fmt.Fprintf(cli.out, "  email:    %s\n", ident.Email)
	fmt.Fprintf(cli.out, "  role:     %s\n", ident.Role)
	if ident.SchoolID != nil {
		fmt.Fprintf(cli.out, "  school:   %s\n", *ident.SchoolID)
	}
	return nil
}

func (cli *commandLine) menu() error {
	sess := cli.provider.Current()
	if !sess.IsAuthenticated() {
		return errNotLoggedIn
	}
	for _, entry := range nav.For(sess.Role()) {
		fmt.Fprintf(cli.out, "%-20s %s\n", entry.Screen, entry.Label)
	}
	return nil
}
