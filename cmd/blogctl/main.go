// blogctl is a small operator tool for the blog server. It talks to the
// database directly, so run it on the host that owns the SQLite file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/auth"
	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/server/service"
	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/server/storage/sqlite"
	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/token"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "blogctl: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 1 {
		usage()
		return fmt.Errorf("no command given")
	}

	_ = godotenv.Load()

	switch args[0] {
	case "user-create":
		return userCreate(args[1:])
	case "help", "-h", "--help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: blogctl <command> [flags]

Commands:
  user-create   create an account directly in the database

Flags for user-create:
  -db        path to the SQLite database file (default "blog.db")
  -username  account username
  -email     account email`)
}

func userCreate(args []string) error {
	fs := flag.NewFlagSet("user-create", flag.ExitOnError)
	dbPath := fs.String("db", "blog.db", "path to the SQLite database file")
	username := fs.String("username", "", "account username")
	email := fs.String("email", "", "account email")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *username == "" || *email == "" {
		return fmt.Errorf("-username and -email are required")
	}

	password, err := promptSecret("Password: ")
	if err != nil {
		return err
	}
	confirm, err := promptSecret("Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	phrase, err := promptLine("Recovery phrase: ")
	if err != nil {
		return err
	}

	ctx := context.Background()

	store, err := sqlite.New(ctx, *dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	// Token secrets are irrelevant for registration, but the service
	// constructor wants a token service, so feed it throwaway ones.
	tokens := token.NewService(
		token.SigningConfig{Secret: []byte("unused")},
		token.SigningConfig{Secret: []byte("unused")},
	)

	authService := service.NewAuthService(logger, store, tokens, auth.NewPasswordHasher(0), service.LogDelivery{Logger: logger})

	user, err := authService.Register(ctx, *username, *email, password, phrase)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	fmt.Printf("created user %s (%s)\n", user.Username, user.ID)

	return nil
}

// promptSecret reads a line without echoing when stdin is a terminal.
func promptSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	return readLine()
}

func promptLine(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	return readLine()
}

func readLine() (string, error) {
	var sb strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				break
			}
			sb.WriteByte(buf[0])
		}
		if err != nil {
			if sb.Len() > 0 {
				break
			}
			return "", err
		}
	}

	return strings.TrimRight(sb.String(), "\r"), nil
}
