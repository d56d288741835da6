package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/emacsway/ganttproject/internal/cli"
	"github.com/emacsway/ganttproject/internal/db"
	"github.com/emacsway/ganttproject/internal/repository"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional .env next to the working directory; absence is fine.
	_ = godotenv.Load()

	// Determine DB path: env var or default ~/.ganttproject/project.db
	dbPath := os.Getenv("GANTTDB_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".ganttproject", "project.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	var opts []repository.Option
	if os.Getenv("GANTTDB_LOG") != "" {
		opts = append(opts, repository.WithObserver(repository.NewLogObserver(os.Stderr)))
	}

	app := &cli.App{
		DB:     repository.NewSQLiteProjectDatabase(database, opts...),
		Reader: repository.NewSQLiteTaskReader(database),
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
