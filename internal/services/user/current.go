package user

import (
	"os"
	osuser "os/user"
)

// CurrentUsername returns the OS account name, falling back to $USER and
// finally "unknown".
func CurrentUsername() string {
	if u, err := osuser.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "unknown"
}
