package board

import (
	"slices"

	"github.com/thenoetrevino/taskboard/internal/models"
)

// GroupBy selects the list view grouping.
type GroupBy string

const (
	ByStatus   GroupBy = "status"
	ByPriority GroupBy = "priority"
	ByAssignee GroupBy = "assignee"
	ByProject  GroupBy = "project"
)

// ParseGroupBy validates a grouping name; empty means ByStatus.
func ParseGroupBy(s string) (GroupBy, bool) {
	switch g := GroupBy(s); g {
	case "":
		return ByStatus, true
	case ByStatus, ByPriority, ByAssignee, ByProject:
		return g, true
	}
	return "", false
}

// Group is one section of the list view.
type Group struct {
	Key   string
	Title string
	Tasks []models.Task
}

// Names resolves user and project ids to display names.
type Names struct {
	Users    map[string]models.User
	Projects map[string]models.Project
}

// NewNames indexes users and projects by id.
func NewNames(users []models.User, projects []models.Project) Names {
	n := Names{
		Users:    make(map[string]models.User, len(users)),
		Projects: make(map[string]models.Project, len(projects)),
	}
	for _, u := range users {
		n.Users[u.ID] = u
	}
	for _, p := range projects {
		n.Projects[p.ID] = p
	}
	return n
}

// User returns the user's name, the raw id for an unknown user, or
// "Unassigned" for an empty id.
func (n Names) User(id string) string {
	if id == "" {
		return "Unassigned"
	}
	if u, ok := n.Users[id]; ok {
		return u.Name
	}
	return id
}

// Project returns the project's name, the raw id for an unknown project, or
// "No project" for an empty id.
func (n Names) Project(id string) string {
	if id == "" {
		return "No project"
	}
	if p, ok := n.Projects[id]; ok {
		return p.Name
	}
	return id
}

// GroupTasks splits tasks into list sections. Status and priority groups
// always appear in their natural order, including empty ones; assignee and
// project groups only appear when they have tasks, ordered by title with the
// empty key last.
func GroupTasks(tasks []models.Task, by GroupBy, names Names) []Group {
	switch by {
	case ByPriority:
		groups := make([]Group, 0, 3)
		for _, p := range models.Priorities() {
			groups = append(groups, Group{Key: string(p), Title: string(p), Tasks: []models.Task{}})
		}
		for _, t := range tasks {
			if i := t.Priority.Rank(); i < len(groups) {
				groups[i].Tasks = append(groups[i].Tasks, t)
			}
		}
		return sortGroups(groups)

	case ByAssignee:
		return groupByKey(tasks, func(t models.Task) string { return t.AssigneeID }, names.User)

	case ByProject:
		return groupByKey(tasks, func(t models.Task) string { return t.ProjectID }, names.Project)

	default:
		cols := Columns(tasks)
		groups := make([]Group, len(cols))
		for i, c := range cols {
			groups[i] = Group{Key: string(c.ID), Title: c.Title, Tasks: c.Tasks}
		}
		return groups
	}
}

func groupByKey(tasks []models.Task, key func(models.Task) string, title func(string) string) []Group {
	index := map[string]int{}
	var groups []Group
	for _, t := range tasks {
		k := key(t)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group{Key: k, Title: title(k)})
		}
		groups[i].Tasks = append(groups[i].Tasks, t)
	}

	slices.SortStableFunc(groups, func(a, b Group) int {
		switch {
		case a.Key == "" && b.Key != "":
			return 1
		case a.Key != "" && b.Key == "":
			return -1
		case a.Title < b.Title:
			return -1
		case a.Title > b.Title:
			return 1
		}
		return 0
	})
	return sortGroups(groups)
}

func sortGroups(groups []Group) []Group {
	for i := range groups {
		SortTasks(groups[i].Tasks)
	}
	if groups == nil {
		return []Group{}
	}
	return groups
}
