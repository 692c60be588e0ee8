// Command bankcli is a terminal client for the demo bank. A successful login
// is persisted in the local database and survives between invocations.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"apexbank/internal/auth"
	"apexbank/internal/config"
	"apexbank/internal/mockdata"
	"apexbank/internal/storage"
)

var errNotSignedIn = errors.New("not signed in, run: bankcli login")

const usage = `Usage: bankcli [-config <file>] [-db <db_path>] [-seed <n>] <command> [flags]

Commands:
  login         sign in with email, password and one-time passcode
  logout        sign out and forget the stored login
  whoami        show the signed-in user
  accounts      list accounts
  transactions  list transactions (-account, -q, -category, -type, -limit)
  summary       show the dashboard figures
`

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app is the state shared by every command of one invocation.
type app struct {
	data    *mockdata.Dataset
	session auth.Provider
	in      *prompter
	stdout  io.Writer
	stderr  io.Writer
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("bankcli", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }

	configPath := fs.String("config", os.Getenv("APEXBANK_CONFIG"), "Path to a YAML config file")
	dbPath := fs.String("db", "", "Path to database file (default from config)")
	seed := fs.String("seed", "", "Random seed for the generated data (default from config)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fmt.Fprint(stdout, usage)
		return fmt.Errorf("missing command")
	}

	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *dbPath != "" {
		cfg.Storage.Path = *dbPath
	}
	if *seed != "" {
		n, err := strconv.ParseUint(*seed, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid -seed %q: %w", *seed, err)
		}
		cfg.Data.Seed = n
	}

	opts, err := cfg.DataOptions()
	if err != nil {
		return err
	}
	password, err := cfg.Password()
	if err != nil {
		return err
	}

	db, err := storage.NewDB(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	a := &app{
		data:   mockdata.Generate(opts),
		in:     newPrompter(stdin, stderr),
		stdout: stdout,
		stderr: stderr,
	}
	session := auth.NewSession(a.data, password, db, auth.StorageKey)
	if err := session.Restore(ctx); err != nil {
		return err
	}
	a.session = session

	cmd, cmdArgs := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "login":
		return a.login(ctx, cmdArgs)
	case "logout":
		return a.logout(ctx)
	case "whoami":
		return a.whoami()
	case "accounts":
		return a.accounts()
	case "transactions":
		return a.transactions(cmdArgs)
	case "summary":
		return a.summary()
	default:
		fmt.Fprint(stdout, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// signedInUser returns the id of the stored login.
func (a *app) signedInUser() (string, error) {
	state := a.session.State()
	if state.User == nil {
		return "", errNotSignedIn
	}
	return state.User.ID, nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	email := fs.String("email", "", "Email address (will prompt if omitted)")
	password := fs.String("password", "", "Password (will prompt if omitted)")
	otp := fs.String("otp", "", "One-time passcode (will prompt if omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var err error
	if *email == "" {
		if *email, err = a.in.line("Email: "); err != nil {
			return fmt.Errorf("failed to read email: %w", err)
		}
	}
	if *password == "" {
		if *password, err = a.in.secret("Password: "); err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
	}

	if err := a.session.Login(*email, *password).Err(); err != nil {
		return err
	}

	if *otp == "" {
		fmt.Fprintln(a.stderr, "A verification code has been sent to your registered device.")
		if *otp, err = a.in.line("Code: "); err != nil {
			return fmt.Errorf("failed to read code: %w", err)
		}
	}

	res, err := a.session.VerifyOTP(ctx, *otp)
	if err != nil {
		return err
	}
	if err := res.Err(); err != nil {
		return err
	}

	user := a.session.State().User
	fmt.Fprintf(a.stdout, "Signed in as %s (%s)\n", user.Name, user.Email)
	return nil
}

func (a *app) logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, "Signed out")
	return nil
}

func (a *app) whoami() error {
	state := a.session.State()
	if state.User == nil {
		fmt.Fprintln(a.stdout, "Not signed in")
		return nil
	}
	u := state.User
	fmt.Fprintf(a.stdout, "%s <%s>\n%s member since %s\n", u.Name, u.Email, u.Tier, u.MemberSince)
	return nil
}

// parseLimit accepts a positive row limit; zero or less means no limit.
func parseLimit(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid -limit %q: %w", s, err)
	}
	return n, nil
}
