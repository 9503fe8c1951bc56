package domain

import "time"

// User represents a registered account.
type User struct {
	ID             string
	Email          string
	Name           string
	Bio            string
	PasswordHash   []byte
	ProfilePicURL  *string
	ProfilePicKey  *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PublicUser is the response view of a User. It never carries the password
// hash or the storage key of the uploaded picture.
type PublicUser struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Bio        string    `json:"bio,omitempty"`
	ProfilePic *string   `json:"profilePic"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Public returns the serializable view of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Bio:        u.Bio,
		ProfilePic: u.ProfilePicURL,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
