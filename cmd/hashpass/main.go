// Command hashpass prints a bcrypt hash of the demo password for the
// auth.global_password_hash setting, or checks a password against one.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"apexbank/internal/auth"

	"golang.org/x/term"
)

var errMismatch = errors.New("password does not match hash")

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("hashpass", flag.ContinueOnError)
	fs.SetOutput(stderr)

	plain := fs.String("password", "", "Password (optional, will prompt if omitted)")
	envLine := fs.Bool("env", false, "Print a DEMO_PASSWORD_HASH= line for a .env file")
	check := fs.String("check", "", "Verify the password against this hash instead of hashing it")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		fmt.Fprintln(stdout, "Usage: hashpass [-password <password>] [-env] [-check <hash>]")
		fs.PrintDefaults()
		return fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	password := *plain
	if password == "" {
		var err error
		if password, err = promptPassword(stdin, stderr); err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
	}
	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("password cannot be empty")
	}

	if *check != "" {
		stored, err := auth.PasswordFromHash(*check)
		if err != nil {
			return err
		}
		if !stored.Matches(password) {
			return errMismatch
		}
		fmt.Fprintln(stdout, "ok")
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if *envLine {
		// godotenv expands $ in unquoted and double-quoted values.
		fmt.Fprintf(stdout, "DEMO_PASSWORD_HASH='%s'\n", hash)
		return nil
	}
	fmt.Fprintln(stdout, hash)
	return nil
}

// promptPassword writes the prompt to out so stdout stays clean for piping.
func promptPassword(stdin io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "Password: ")
	defer fmt.Fprintln(out)

	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
