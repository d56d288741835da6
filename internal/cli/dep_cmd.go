package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/emacsway/ganttproject/internal/cli/formatter"
	"github.com/emacsway/ganttproject/internal/domain"
	"github.com/spf13/cobra"
)

func newDepCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dep",
		Short: "Manage task dependencies",
	}

	cmd.AddCommand(
		newDepAddCmd(app),
		newDepListCmd(app),
	)

	return cmd
}

func newDepAddCmd(app *App) *cobra.Command {
	var (
		depType  string
		lag      int
		hardness string
	)

	cmd := &cobra.Command{
		Use:   "add <dependee-id> <dependant-id>",
		Short: "Persist a dependency between two existing tasks",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dependee, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid dependee id %q", args[0])
			}
			dependant, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid dependant id %q", args[1])
			}
			ct, err := parseConstraintType(depType)
			if err != nil {
				return err
			}
			if !domain.ValidHardness[hardness] {
				return fmt.Errorf("unknown hardness %q (Strong|Rubber)", hardness)
			}

			dep := &domain.TaskDependency{
				DependeeID:  dependee,
				DependantID: dependant,
				Type:        ct,
				Lag:         lag,
				Hardness:    domain.Hardness(hardness),
			}
			if err := app.DB.InsertTaskDependency(context.Background(), dep); err != nil {
				return err
			}
			fmt.Printf("Inserted dependency %d -> %d\n", dependee, dependant)
			return nil
		},
	}

	cmd.Flags().StringVar(&depType, "type", "finish-start", "Constraint type (start-start|finish-start|finish-finish|start-finish)")
	cmd.Flags().IntVar(&lag, "lag", 0, "Lag in days")
	cmd.Flags().StringVar(&hardness, "hardness", string(domain.HardnessStrong), "Hardness (Strong|Rubber)")

	return cmd
}

func newDepListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List persisted dependencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := app.Reader.ListDependencies(context.Background())
			if err != nil {
				return err
			}

			headers := []string{"DEPENDEE", "DEPENDANT", "TYPE", "LAG", "HARDNESS"}
			rows := make([][]string, 0, len(deps))
			for _, d := range deps {
				rows = append(rows, []string{
					strconv.Itoa(d.DependeeID),
					strconv.Itoa(d.DependantID),
					d.Type.String(),
					strconv.Itoa(d.Lag),
					string(d.Hardness),
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func parseConstraintType(s string) (domain.ConstraintType, error) {
	switch s {
	case "start-start":
		return domain.ConstraintStartStart, nil
	case "", "finish-start":
		return domain.ConstraintFinishStart, nil
	case "finish-finish":
		return domain.ConstraintFinishFinish, nil
	case "start-finish":
		return domain.ConstraintStartFinish, nil
	}
	return domain.ConstraintFinishStart, fmt.Errorf("unknown constraint type %q", s)
}
