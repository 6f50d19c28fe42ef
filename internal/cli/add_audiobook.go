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
	"github.com/mrlokans/audiobook-store/internal/database/catalog"
	"github.com/mrlokans/audiobook-store/internal/entities"
)

const (
	maxTitleLength  = 200
	maxAuthorLength = 100
)

type AddAudiobookCommand struct {
	Title       string
	Author      string
	Description string
	CoverURL    string
	AudioURL    string
	DatabaseURL string

	// nil when the flag was not given
	DurationSeconds *int
	Price           *float64

	out io.Writer
}

func NewAddAudiobookCommand() *AddAudiobookCommand {
	return &AddAudiobookCommand{out: os.Stdout}
}

func (cmd *AddAudiobookCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("add-audiobook", flag.ContinueOnError)

	var duration int
	var price float64

	fs.StringVar(&cmd.Title, "title", "", "Title, up to 200 characters (required)")
	fs.StringVar(&cmd.Author, "author", "", "Author, up to 100 characters (required)")
	fs.StringVar(&cmd.Description, "description", "", "Free-form description")
	fs.StringVar(&cmd.CoverURL, "cover-url", "", "Cover image URL")
	fs.StringVar(&cmd.AudioURL, "audio-url", "", "Audio file URL")
	fs.IntVar(&duration, "duration", 0, "Duration in seconds")
	fs.Float64Var(&price, "price", 0, "Price")
	fs.StringVar(&cmd.DatabaseURL, "db", config.NewConfig().Database.URL, "sqlite file path or postgres:// URL (defaults to DATABASE_URL)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s add-audiobook [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Add an audiobook to the store catalog.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s add-audiobook -title Dune -author \"Frank Herbert\" -duration 75600 -price 24.99\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "duration":
			cmd.DurationSeconds = &duration
		case "price":
			cmd.Price = &price
		}
	})

	cmd.Title = strings.TrimSpace(cmd.Title)
	cmd.Author = strings.TrimSpace(cmd.Author)

	if cmd.Title == "" || cmd.Author == "" {
		fs.Usage()
		return fmt.Errorf("title and author are required")
	}
	if len(cmd.Title) > maxTitleLength {
		return fmt.Errorf("title must be at most %d characters", maxTitleLength)
	}
	if len(cmd.Author) > maxAuthorLength {
		return fmt.Errorf("author must be at most %d characters", maxAuthorLength)
	}
	if cmd.DurationSeconds != nil && *cmd.DurationSeconds < 0 {
		return fmt.Errorf("duration must not be negative")
	}
	if cmd.Price != nil && *cmd.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}

	return nil
}

func (cmd *AddAudiobookCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	book := &entities.Audiobook{
		Title:           cmd.Title,
		Author:          cmd.Author,
		Description:     cmd.Description,
		CoverURL:        cmd.CoverURL,
		AudioURL:        cmd.AudioURL,
		DurationSeconds: cmd.DurationSeconds,
		Price:           cmd.Price,
	}
	if err := catalog.NewRepository(db.DB).CreateAudiobook(book); err != nil {
		return fmt.Errorf("failed to add audiobook: %w", err)
	}

	fmt.Fprintf(cmd.out, "Added audiobook %d: %q by %s\n", book.ID, book.Title, book.Author)
	return nil
}
