package domain

import (
	"net/mail"
	"time"
	"unicode/utf8"
)

// Field length bounds for users (characters).
const (
	MaxUserNameLength  = 100
	MaxAvatarURLLength = 500
)

// User represents a registered user of the board. Users carry no credentials;
// identity is informational only.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUser creates a validated User. The ID and CreatedAt are assigned by the
// store on persist.
func NewUser(name, email, avatarURL string) (*User, error) {
	u := &User{
		Name:      name,
		Email:     email,
		AvatarURL: avatarURL,
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// Validate checks the user's fields against the domain rules.
func (u *User) Validate() error {
	if u.Name == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(u.Name) > MaxUserNameLength {
		return ErrNameTooLong
	}
	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !validEmail(u.Email) {
		return ErrInvalidEmail
	}
	if utf8.RuneCountInString(u.AvatarURL) > MaxAvatarURLLength {
		return ErrAvatarURLTooLong
	}
	return nil
}

// validEmail accepts addr-spec style addresses ("user@host.tld") and rejects
// the name-addr forms net/mail would otherwise tolerate.
func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
