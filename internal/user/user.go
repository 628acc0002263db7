package user

import "time"

// User is an account. Role is fixed at registration time and only changes
// through a direct administrative edit.
type User struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func sanitize(u User) User {
	u.Password = ""
	return u
}
