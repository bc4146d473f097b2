package users

import "os/user"

// osUserName returns the OS account display name, or "" when lookup fails.
func osUserName() string {
	u, err := user.Current()
	if err != nil {
		return ""
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}
