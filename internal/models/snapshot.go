package models

// Snapshot is the plain data form of a workspace, used for persistence and
// import/export.
type Snapshot struct {
	Tasks    []Task    `json:"tasks"`
	Projects []Project `json:"projects"`
	Users    []User    `json:"users"`
}

// Clone deep-copies the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Tasks:    make([]Task, len(s.Tasks)),
		Projects: make([]Project, len(s.Projects)),
		Users:    make([]User, len(s.Users)),
	}
	for i, t := range s.Tasks {
		out.Tasks[i] = t.Clone()
	}
	copy(out.Projects, s.Projects)
	copy(out.Users, s.Users)
	return out
}
