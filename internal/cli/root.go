package cli

import (
	"github.com/emacsway/ganttproject/internal/repository"
	"github.com/spf13/cobra"
)

// App holds the store surfaces used by CLI commands.
type App struct {
	DB     repository.ProjectDatabase
	Reader repository.TaskReader

	// IsInteractive reports whether stdin is an interactive terminal;
	// commands fall back to forms when flags are omitted.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "ganttdb" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "ganttdb",
		Short: "Task graph store inspection and import tool",
	}

	root.AddCommand(
		newInitCmd(app),
		newTaskCmd(app),
		newDepCmd(app),
		newImportCmd(app),
		newShutdownCmd(app),
	)

	return root
}
