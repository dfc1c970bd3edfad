package domain

import "time"

// DefaultProfilePicture is used when a registering author does not provide one.
const DefaultProfilePicture = "/img/default-profile.png"

// Author models a registered writer. Username and email are each globally
// unique; the password is only ever stored as a bcrypt hash.
type Author struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Username       string    `json:"username"`
	PasswordHash   string    `json:"-"`
	Bio            string    `json:"bio,omitempty"`
	ProfilePicture string    `json:"profile_picture"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// FullName is the display form joined onto public article views.
func (a *Author) FullName() string {
	return a.FirstName + " " + a.LastName
}
