package state

import (
	"strings"

	"charm.land/huh/v2"

	"github.com/thenoetrevino/taskboard/internal/models"
)

// FormState holds the task creation form and the values it edits in place.
type FormState struct {
	Form *huh.Form

	FormTitle       string
	FormDescription string
	FormPriority    string
	FormAssignee    string
	FormConfirm     bool

	// FormStatus is the column the form was opened from.
	FormStatus models.Status
}

// NewFormState creates an empty FormState.
func NewFormState() *FormState {
	return &FormState{}
}

// Reset clears the form and its values, ready for the next task.
func (s *FormState) Reset(status models.Status) {
	s.Form = nil
	s.FormTitle = ""
	s.FormDescription = ""
	s.FormPriority = string(models.DefaultPriority)
	s.FormAssignee = ""
	s.FormConfirm = true
	s.FormStatus = status
}

// Title returns the trimmed title.
func (s *FormState) Title() string {
	return strings.TrimSpace(s.FormTitle)
}

// Description returns the trimmed description.
func (s *FormState) Description() string {
	return strings.TrimSpace(s.FormDescription)
}
