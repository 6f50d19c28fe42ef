package cli

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/mrlokans/audiobook-store/internal/config"
	"github.com/mrlokans/audiobook-store/internal/database"
	"github.com/mrlokans/audiobook-store/internal/database/users"
)

const (
	maxUsernameLength = 80
	maxEmailLength    = 120
)

type CreateUserCommand struct {
	Username    string
	Email       string
	DatabaseURL string

	out io.Writer
}

func NewCreateUserCommand() *CreateUserCommand {
	return &CreateUserCommand{out: os.Stdout}
}

func (cmd *CreateUserCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ContinueOnError)

	fs.StringVar(&cmd.Username, "username", "", "Unique username, up to 80 characters (required)")
	fs.StringVar(&cmd.Email, "email", "", "Unique email address, up to 120 characters (required)")
	fs.StringVar(&cmd.DatabaseURL, "db", config.NewConfig().Database.URL, "sqlite file path or postgres:// URL (defaults to DATABASE_URL)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-user [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create a storefront user.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s create-user -username alice -email alice@example.com\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	cmd.Username = strings.TrimSpace(cmd.Username)
	cmd.Email = strings.TrimSpace(cmd.Email)

	if cmd.Username == "" || cmd.Email == "" {
		fs.Usage()
		return fmt.Errorf("username and email are required")
	}
	if len(cmd.Username) > maxUsernameLength {
		return fmt.Errorf("username must be at most %d characters", maxUsernameLength)
	}
	if len(cmd.Email) > maxEmailLength {
		return fmt.Errorf("email must be at most %d characters", maxEmailLength)
	}
	if !strings.Contains(cmd.Email, "@") {
		return fmt.Errorf("email %q is not a valid address", cmd.Email)
	}

	return nil
}

func (cmd *CreateUserCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	user, err := users.NewRepository(db.DB).CreateUser(cmd.Username, cmd.Email)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Fprintf(cmd.out, "Created user %d (%s <%s>)\n", user.ID, user.Username, user.Email)
	return nil
}
