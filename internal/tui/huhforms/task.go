// Package huhforms builds the board's huh forms
package huhforms

import (
	"strings"

	"charm.land/huh/v2"
	"github.com/thenoetrevino/tablero/internal/models"
)

// TaskFormValues is bound to the task form fields
type TaskFormValues struct {
	Title       string
	Description string
	Status      models.Status
	Confirm     bool
}

// CreateTaskForm creates a huh form for adding or editing a task. The form
// writes into v in place. The column picker is only shown for new tasks;
// existing tasks change column by moving them.
func CreateTaskForm(v *TaskFormValues, isNew bool, descriptionLines int) *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Key("title").
			Title("Title").
			Placeholder("Enter task title...").
			CharLimit(models.MaxTitleLength).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return models.ErrEmptyTitle
				}
				return nil
			}).
			Value(&v.Title),
		huh.NewText().
			Key("description").
			Title("Description").
			Placeholder("Markdown is supported...").
			CharLimit(5000).
			Lines(descriptionLines).
			Value(&v.Description),
	}

	if isNew {
		options := make([]huh.Option[models.Status], 0, len(models.Statuses))
		for _, s := range models.Statuses {
			options = append(options, huh.NewOption(s.Label(), s))
		}
		fields = append(fields,
			huh.NewSelect[models.Status]().
				Key("status").
				Title("Column").
				Options(options...).
				Value(&v.Status),
		)
	}

	fields = append(fields,
		huh.NewConfirm().
			Key("confirm").
			Title("Save this task?").
			Affirmative("Yes").
			Negative("No").
			Value(&v.Confirm),
	)

	form := huh.NewForm(huh.NewGroup(fields...))
	return form.WithKeyMap(CreateKeyMapWithShiftEnter()).WithShowHelp(false)
}

// CreateConfirmForm asks a yes/no question, defaulting to no
func CreateConfirmForm(title string, confirm *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(title).
				Affirmative("Delete").
				Negative("Cancel").
				Value(confirm),
		),
	).WithShowHelp(false)
}
