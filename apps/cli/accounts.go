package main

import (
	"fmt"
	"syscall"

	"github.com/peertutor/peertutor/core/listview"
	"github.com/peertutor/peertutor/core/user"
)

func (cli *commandLine) promptPassword() (string, error) {
	fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Fprintln(cli.out)
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

func (cli *commandLine) login(args []string) error {
	fs := newFlagSet("login")
	email := fs.String("email", "", "Account email. The password will be prompted next.")
	admin := fs.Bool("admin", false, "Sign in against the admin endpoint.")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		fs.Usage()
		return errHelp
	}
	pwd, err := cli.promptPassword()
	if err != nil {
		return err
	}

	creds := user.Credentials{Email: *email, Password: pwd}
	login := cli.auth.Login
	if *admin {
		login = cli.auth.AdminLogin
	}
	ctx, err := login(creds)
	if err != nil {
		return err
	}
	printContext(cli.out, ctx)
	return nil
}

func (cli *commandLine) listUsers(args []string) error {
	fs := newFlagSet("users")
	role := fs.String("role", "", "Filter by role (STUDENT|TUTOR|ADMIN).")
	search := fs.String("search", "", "Search by ID, username or email.")
	if err := fs.Parse(args); err != nil {
		return err
	}

	users, err := cli.users.QueryAll()
	if err != nil {
		return err
	}

	opts := listview.Options[user.User]{
		Search:       *search,
		SearchFields: user.User.SearchFields,
	}
	if *role != "" {
		want := user.Role(*role)
		opts.Filter = func(u user.User) bool { return u.Role == want }
	}
	for _, u := range listview.Derive(users, opts) {
		fmt.Fprintf(cli.out, "%d\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, u.Role)
	}
	return nil
}

func (cli *commandLine) register(args []string) error {
	fs := newFlagSet("register")
	username := fs.String("username", "", "Desired username.")
	email := fs.String("email", "", "Account email. The password will be prompted next.")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" || *email == "" {
		fs.Usage()
		return errHelp
	}
	pwd, err := cli.promptPassword()
	if err != nil {
		return err
	}

	usr, err := cli.auth.Register(user.NewUser{Username: *username, Email: *email, Password: pwd})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "registered %s (user %d)\n", usr.Username, usr.ID)
	return nil
}
