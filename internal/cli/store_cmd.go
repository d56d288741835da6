package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the task graph schema in a fresh store",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.DB.Init(context.Background()); err != nil {
				return err
			}
			fmt.Println("Schema initialized")
			return nil
		},
	}
}

func newShutdownCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "shutdown",
		Short: "Cleanly shut down the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.DB.Shutdown(context.Background())
		},
	}
}
