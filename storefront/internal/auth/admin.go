package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/azaliaz/luxefurnish/storefront/internal/domain/models"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	adminUsername = "Admin"
)

// AdminFastPath signs the operator in locally, without a round trip to the
// auth API. Only a bcrypt hash of the password is ever configured.
type AdminFastPath struct {
	email    string
	hash     []byte
	redirect string
}

// NewAdminFastPath returns nil, a disabled fast path, when email or hash is
// empty.
func NewAdminFastPath(email, passwordHash, redirectURL string) *AdminFastPath {
	email = strings.TrimSpace(email)
	if email == "" || passwordHash == "" {
		return nil
	}
	return &AdminFastPath{
		email:    strings.ToLower(email),
		hash:     []byte(passwordHash),
		redirect: redirectURL,
	}
}

// Match reports whether the credentials belong to the configured operator.
func (a *AdminFastPath) Match(email, password string) (models.User, bool) {
	if a == nil {
		return models.User{}, false
	}
	if strings.ToLower(strings.TrimSpace(email)) != a.email {
		return models.User{}, false
	}
	if bcrypt.CompareHashAndPassword(a.hash, []byte(password)) != nil {
		return models.User{}, false
	}
	return models.User{Username: adminUsername, Email: a.email}, true
}

func (a *AdminFastPath) Redirect() string {
	if a == nil {
		return ""
	}
	return a.redirect
}
