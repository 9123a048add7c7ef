// Package huhforms builds the huh forms used by the board.
package huhforms

import (
	"errors"
	"strings"

	"charm.land/huh/v2"

	"github.com/thenoetrevino/taskboard/internal/models"
)

// maxTitleLength matches the task service's title limit.
const maxTitleLength = 255

// CreateTaskForm creates a huh form for adding a task. The form writes through
// the given pointers so the caller reads the values after completion.
func CreateTaskForm(
	title *string,
	description *string,
	priority *string,
	assignee *string,
	confirm *bool,
	users []models.User,
) *huh.Form {
	var fields []huh.Field

	fields = append(fields,
		huh.NewInput().
			Key("title").
			Title("Title").
			Placeholder("Enter task title...").
			CharLimit(maxTitleLength).
			Validate(validateTitle).
			Value(title),
	)

	fields = append(fields,
		huh.NewText().
			Key("description").
			Title("Description").
			Placeholder("Markdown is rendered in `task show`...").
			CharLimit(5000).
			Lines(4).
			Value(description),
	)

	fields = append(fields,
		huh.NewSelect[string]().
			Key("priority").
			Title("Priority").
			Options(PriorityOptions()...).
			Value(priority),
	)

	if len(users) > 0 {
		fields = append(fields,
			huh.NewSelect[string]().
				Key("assignee").
				Title("Assignee").
				Options(AssigneeOptions(users)...).
				Value(assignee),
		)
	}

	fields = append(fields,
		huh.NewConfirm().
			Key("confirm").
			Title("Create this task?").
			Affirmative("Yes").
			Negative("No").
			Value(confirm),
	)

	form := huh.NewForm(huh.NewGroup(fields...))
	return form.WithKeyMap(CreateKeyMapWithShiftEnter()).WithShowHelp(false)
}

// PriorityOptions lists every priority, most urgent first.
func PriorityOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, 3)
	for _, p := range models.Priorities() {
		opts = append(opts, huh.NewOption(string(p), string(p)))
	}
	return opts
}

// AssigneeOptions offers "Unassigned" followed by every user.
func AssigneeOptions(users []models.User) []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("Unassigned", "")}
	for _, u := range users {
		opts = append(opts, huh.NewOption(u.Name, u.ID))
	}
	return opts
}

func validateTitle(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("title is required")
	}
	return nil
}
