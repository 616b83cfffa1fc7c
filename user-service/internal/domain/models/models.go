package models

type User struct {
	UID      string `json:"uuid,omitempty"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Pass     string `json:"-"`
	Role     string `json:"role"`
}

// Identity is the public part of a user returned to clients.
type Identity struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (u User) Identity() Identity {
	return Identity{Username: u.Username, Email: u.Email}
}
