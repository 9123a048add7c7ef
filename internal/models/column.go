package models

// Column is the board grouping for one status. Its ID is the status value.
type Column struct {
	ID    Status `json:"id"`
	Title string `json:"title"`
	Tasks []Task `json:"tasks"`
}

// NewColumn creates an empty column for status.
func NewColumn(status Status) Column {
	return Column{ID: status, Title: status.Label(), Tasks: []Task{}}
}
