package huhforms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/taskboard/internal/config/colors"
	"github.com/thenoetrevino/taskboard/internal/models"
)

func TestAssigneeOptions(t *testing.T) {
	opts := AssigneeOptions([]models.User{{ID: "u1", Name: "Ada Lovelace"}})
	require.Len(t, opts, 2)
	assert.Equal(t, "", opts[0].Value)
	assert.Equal(t, "u1", opts[1].Value)
	assert.Equal(t, "Ada Lovelace", opts[1].Key)
}

func TestPriorityOptions(t *testing.T) {
	opts := PriorityOptions()
	require.Len(t, opts, 3)
	assert.Equal(t, "high", opts[0].Value)
}

func TestValidateTitle(t *testing.T) {
	assert.Error(t, validateTitle("   "))
	assert.NoError(t, validateTitle("Write docs"))
}

func TestCreateTaskForm(t *testing.T) {
	var title, description, priority, assignee string
	confirm := true
	form := CreateTaskForm(&title, &description, &priority, &assignee, &confirm, nil)
	require.NotNil(t, form)
	assert.NotNil(t, form.WithTheme(CreateTheme(*colors.Default())))
}
