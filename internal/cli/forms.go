package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
)

// runTaskAddForm collects the required task fields interactively.
func runTaskAddForm() (id int, name, start string, duration int, err error) {
	var idStr, durationStr string
	start = time.Now().Format(dateLayout)
	durationStr = "1"

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Task ID").
				Placeholder("1").
				Value(&idStr).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Name").
				Value(&name).
				Validate(validateNonEmpty),
			huh.NewInput().
				Title("Start date (YYYY-MM-DD)").
				Value(&start).
				Validate(validateDate),
			huh.NewInput().
				Title("Duration (days)").
				Value(&durationStr).
				Validate(validatePositiveInt),
		),
	).WithShowHelp(false)

	if err = form.Run(); err != nil {
		return 0, "", "", 0, err
	}

	id, _ = strconv.Atoi(idStr)
	duration, _ = strconv.Atoi(durationStr)
	return id, name, start, duration, nil
}

func validateNonEmpty(s string) error {
	if s == "" {
		return fmt.Errorf("required")
	}
	return nil
}

func validateDate(s string) error {
	if _, err := time.Parse(dateLayout, s); err != nil {
		return fmt.Errorf("expected YYYY-MM-DD")
	}
	return nil
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fmt.Errorf("expected a positive integer")
	}
	return nil
}
