package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/emacsway/ganttproject/internal/cli/formatter"
	"github.com/emacsway/ganttproject/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage persisted tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskUpdateCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var (
		id         int
		name       string
		start      string
		duration   int
		color      string
		shape      string
		milestone  bool
		priority   string
		webLink    string
		cost       string
		costCalc   bool
		notes      string
		completion int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Persist a new task",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Interactive form when the required flags are omitted on a TTY.
			if !cmd.Flags().Changed("id") && app.IsInteractive != nil && app.IsInteractive() {
				formID, formName, formStart, formDuration, err := runTaskAddForm()
				if err != nil {
					return err
				}
				id, name, start, duration = formID, formName, formStart, formDuration
			}

			startDate, err := time.Parse(dateLayout, start)
			if err != nil {
				return fmt.Errorf("invalid start date %q: %w", start, err)
			}
			prio, err := parsePriority(priority)
			if err != nil {
				return err
			}

			t := &domain.Task{
				ID:         id,
				Name:       name,
				Color:      color,
				Shape:      shape,
				Milestone:  milestone,
				Start:      startDate,
				Duration:   duration,
				Completion: completion,
				Priority:   prio,
				WebLink:    webLink,
				Notes:      notes,
				Cost:       domain.Cost{ManualValue: decimal.Zero, Calculated: true},
			}
			if cost != "" {
				manual, err := decimal.NewFromString(cost)
				if err != nil {
					return fmt.Errorf("invalid cost %q: %w", cost, err)
				}
				t.Cost = domain.Cost{ManualValue: manual, Calculated: costCalc}
			}

			if err := app.DB.InsertTask(context.Background(), t); err != nil {
				return err
			}
			fmt.Printf("Inserted task %d %q\n", t.ID, t.Name)
			return nil
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "Task identifier (integer, unique)")
	cmd.Flags().StringVar(&name, "name", "", "Task name")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&duration, "duration", 1, "Duration in days")
	cmd.Flags().StringVar(&color, "color", "", "Display color")
	cmd.Flags().StringVar(&shape, "shape", "", "Serialized paint descriptor")
	cmd.Flags().BoolVar(&milestone, "milestone", false, "Mark as milestone")
	cmd.Flags().StringVar(&priority, "priority", "normal", "Priority (lowest|low|normal|high|highest)")
	cmd.Flags().StringVar(&webLink, "weblink", "", "Web link")
	cmd.Flags().StringVar(&cost, "cost", "", "Manual cost value (decimal)")
	cmd.Flags().BoolVar(&costCalc, "cost-calculated", false, "Cost is calculated from subtasks")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-text notes")
	cmd.Flags().IntVar(&completion, "completion", 0, "Completion percentage (0-100)")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List persisted tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.Reader.ListTasks(context.Background())
			if err != nil {
				return err
			}

			headers := []string{"ID", "NAME", "START", "DAYS", "DONE", "PRIORITY", "COST", "MS"}
			rows := make([][]string, 0, len(tasks))
			for _, t := range tasks {
				cost := formatter.StyleDim.Render("calc")
				if !t.Cost.IsDefault() {
					cost = t.Cost.ManualValue.String()
				}
				rows = append(rows, []string{
					strconv.Itoa(t.ID),
					t.Name,
					t.Start.Format(dateLayout),
					strconv.Itoa(t.Duration),
					fmt.Sprintf("%d%%", t.Completion),
					formatter.PriorityLabel(t.Priority),
					cost,
					formatter.Flag(t.Milestone),
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func newTaskUpdateCmd(app *App) *cobra.Command {
	var (
		name       string
		milestone  bool
		priority   string
		start      string
		shift      int
		duration   int
		completion int
		color      string
		notes      string
		addNotes   string
		webLink    string
		critical   bool
		expand     bool
	)

	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Batch field changes to a task into one update",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid task id %q", args[0])
			}

			task, err := app.Reader.GetTask(ctx, id)
			if err != nil {
				return err
			}

			builder := app.DB.CreateTaskUpdateBuilder(task)
			if cmd.Flags().Changed("name") {
				builder.SetName(name)
			}
			if cmd.Flags().Changed("milestone") {
				builder.SetMilestone(milestone)
			}
			if cmd.Flags().Changed("priority") {
				prio, err := parsePriority(priority)
				if err != nil {
					return err
				}
				builder.SetPriority(prio)
			}
			if cmd.Flags().Changed("start") {
				startDate, err := time.Parse(dateLayout, start)
				if err != nil {
					return fmt.Errorf("invalid start date %q: %w", start, err)
				}
				builder.SetStart(startDate)
			}
			if cmd.Flags().Changed("shift") {
				builder.Shift(shift)
			}
			if cmd.Flags().Changed("duration") {
				builder.SetDuration(duration)
			}
			if cmd.Flags().Changed("completion") {
				builder.SetCompletionPercentage(completion)
			}
			if cmd.Flags().Changed("color") {
				builder.SetColor(color)
			}
			if cmd.Flags().Changed("notes") {
				builder.SetNotes(notes)
			}
			if cmd.Flags().Changed("add-notes") {
				builder.AddNotes(addNotes)
			}
			if cmd.Flags().Changed("weblink") {
				builder.SetWebLink(webLink)
			}
			if cmd.Flags().Changed("critical") {
				builder.SetCritical(critical)
			}
			if cmd.Flags().Changed("expand") {
				builder.SetExpand(expand)
			}

			if err := builder.Execute(ctx); err != nil {
				return err
			}
			fmt.Printf("Updated task %d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().BoolVar(&milestone, "milestone", false, "Milestone flag")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (lowest|low|normal|high|highest)")
	cmd.Flags().StringVar(&start, "start", "", "New start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&shift, "shift", 0, "Shift start date by N days (may be negative)")
	cmd.Flags().IntVar(&duration, "duration", 0, "New duration in days")
	cmd.Flags().IntVar(&completion, "completion", 0, "Completion percentage (0-100)")
	cmd.Flags().StringVar(&color, "color", "", "Display color")
	cmd.Flags().StringVar(&notes, "notes", "", "Replace notes")
	cmd.Flags().StringVar(&addNotes, "add-notes", "", "Append a line to notes")
	cmd.Flags().StringVar(&webLink, "weblink", "", "Web link")
	cmd.Flags().BoolVar(&critical, "critical", false, "Critical-path flag")
	cmd.Flags().BoolVar(&expand, "expand", false, "Expanded-in-tree flag")

	return cmd
}

func parsePriority(s string) (domain.Priority, error) {
	switch s {
	case "", "normal":
		return domain.PriorityNormal, nil
	case "lowest":
		return domain.PriorityLowest, nil
	case "low":
		return domain.PriorityLow, nil
	case "high":
		return domain.PriorityHigh, nil
	case "highest":
		return domain.PriorityHighest, nil
	}
	return domain.PriorityNormal, fmt.Errorf("unknown priority %q", s)
}
