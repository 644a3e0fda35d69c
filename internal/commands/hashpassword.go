package commands

import (
	"flag"
	"fmt"
	"os"
	"syscall"

	"github.com/klabast/wb-services/leave-planner/internal/app"
	"golang.org/x/term"
)

// HashPassword handles the hash-password subcommand: it prompts for
// credentials and writes the auth.secret file used to protect edit mode.
func HashPassword(args []string) {
	fs := flag.NewFlagSet("hash-password", flag.ExitOnError)
	overwrite := fs.Bool("overwrite", false, "Overwrite existing auth file without asking")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: leave-planner hash-password [OPTIONS]\n\n")
		fmt.Fprintf(os.Stderr, "Creates an auth.secret file with hashed password (Argon2id).\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  AUTH_FILE    Path to auth file (default: ./auth.secret)\n")
	}
	fs.Parse(args)

	fmt.Print("Enter username: ")
	var username string
	if _, err := fmt.Scanln(&username); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading username: %v\n", err)
		os.Exit(1)
	}

	if username == "" {
		fmt.Fprintf(os.Stderr, "Username cannot be empty\n")
		os.Exit(1)
	}

	password := readPassword("Enter password:   ")
	passwordConfirm := readPassword("Confirm password: ")

	if password == "" {
		fmt.Fprintf(os.Stderr, "Password cannot be empty\n")
		os.Exit(1)
	}

	if password != passwordConfirm {
		fmt.Fprintf(os.Stderr, "Passwords do not match\n")
		os.Exit(1)
	}

	if err := app.CreateAuthFile(username, password, *overwrite); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// readPassword reads a password from the terminal without echoing it.
func readPassword(prompt string) string {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading password: %v\n", err)
		os.Exit(1)
	}
	return string(password)
}
