package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/emacsway/ganttproject/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// snapshotFile is the JSON shape accepted by "ganttdb import".
type snapshotFile struct {
	Tasks        []snapshotTask       `json:"tasks"`
	Dependencies []snapshotDependency `json:"dependencies"`
}

type snapshotTask struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Color          string `json:"color,omitempty"`
	Shape          string `json:"shape,omitempty"`
	Milestone      bool   `json:"milestone,omitempty"`
	ProjectTask    bool   `json:"projectTask,omitempty"`
	Start          string `json:"start"`
	Duration       int    `json:"duration"`
	Completion     int    `json:"completion,omitempty"`
	EarliestStart  string `json:"earliestStart,omitempty"`
	Priority       string `json:"priority,omitempty"`
	WebLink        string `json:"webLink,omitempty"`
	Cost           string `json:"cost,omitempty"`
	CostCalculated bool   `json:"costCalculated,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

type snapshotDependency struct {
	Dependee  int    `json:"dependee"`
	Dependant int    `json:"dependant"`
	Type      string `json:"type,omitempty"`
	Lag       int    `json:"lag,omitempty"`
	Hardness  string `json:"hardness,omitempty"`
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <snapshot.json>",
		Short: "Import a full task graph snapshot in one transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading snapshot: %w", err)
			}
			var file snapshotFile
			if err := json.Unmarshal(data, &file); err != nil {
				return fmt.Errorf("parsing snapshot: %w", err)
			}

			tasks := make([]*domain.Task, 0, len(file.Tasks))
			for _, st := range file.Tasks {
				t, err := st.toDomain()
				if err != nil {
					return err
				}
				tasks = append(tasks, t)
			}
			deps := make([]*domain.TaskDependency, 0, len(file.Dependencies))
			for _, sd := range file.Dependencies {
				d, err := sd.toDomain()
				if err != nil {
					return err
				}
				deps = append(deps, d)
			}

			if err := app.DB.ImportSnapshot(context.Background(), tasks, deps); err != nil {
				return err
			}
			fmt.Printf("Imported %d tasks and %d dependencies\n", len(tasks), len(deps))
			return nil
		},
	}
}

func (st snapshotTask) toDomain() (*domain.Task, error) {
	start, err := time.Parse(dateLayout, st.Start)
	if err != nil {
		return nil, fmt.Errorf("task %d: invalid start %q: %w", st.ID, st.Start, err)
	}
	prio, err := parsePriority(st.Priority)
	if err != nil {
		return nil, fmt.Errorf("task %d: %w", st.ID, err)
	}

	t := &domain.Task{
		ID:          st.ID,
		Name:        st.Name,
		Color:       st.Color,
		Shape:       st.Shape,
		Milestone:   st.Milestone,
		ProjectTask: st.ProjectTask,
		Start:       start,
		Duration:    st.Duration,
		Completion:  st.Completion,
		Priority:    prio,
		WebLink:     st.WebLink,
		Notes:       st.Notes,
		Cost:        domain.Cost{ManualValue: decimal.Zero, Calculated: true},
	}
	if st.EarliestStart != "" {
		earliest, err := time.Parse(dateLayout, st.EarliestStart)
		if err != nil {
			return nil, fmt.Errorf("task %d: invalid earliestStart %q: %w", st.ID, st.EarliestStart, err)
		}
		t.EarliestStart = &earliest
	}
	if st.Cost != "" {
		manual, err := decimal.NewFromString(st.Cost)
		if err != nil {
			return nil, fmt.Errorf("task %d: invalid cost %q: %w", st.ID, st.Cost, err)
		}
		t.Cost = domain.Cost{ManualValue: manual, Calculated: st.CostCalculated}
	}
	return t, nil
}

func (sd snapshotDependency) toDomain() (*domain.TaskDependency, error) {
	ct, err := parseConstraintType(sd.Type)
	if err != nil {
		return nil, fmt.Errorf("dependency %d->%d: %w", sd.Dependee, sd.Dependant, err)
	}
	hardness := domain.HardnessStrong
	if sd.Hardness != "" {
		if !domain.ValidHardness[sd.Hardness] {
			return nil, fmt.Errorf("dependency %d->%d: unknown hardness %q", sd.Dependee, sd.Dependant, sd.Hardness)
		}
		hardness = domain.Hardness(sd.Hardness)
	}
	return &domain.TaskDependency{
		DependeeID:  sd.Dependee,
		DependantID: sd.Dependant,
		Type:        ct,
		Lag:         sd.Lag,
		Hardness:    hardness,
	}, nil
}
