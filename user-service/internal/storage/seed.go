package storage

import (
	"errors"
	"strings"

	"github.com/azaliaz/luxefurnish/user-service/internal/domain/consts"
	"github.com/azaliaz/luxefurnish/user-service/internal/domain/models"
	storerrros "github.com/azaliaz/luxefurnish/user-service/internal/storage/errors"
)

type userSaver interface {
	SaveUser(models.User) (models.User, error)
}

// SeedAdmin creates the privileged account if it does not exist yet. The
// email is stored lowercased, as signup stores it. An empty email or
// password disables seeding.
func SeedAdmin(stor userSaver, email, pass string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || pass == "" {
		return nil
	}
	_, err := stor.SaveUser(models.User{
		Username: "Admin",
		Email:    email,
		Pass:     pass,
		Role:     consts.RoleAdmin,
	})
	if err != nil && !errors.Is(err, storerrros.ErrUserExists) {
		return err
	}
	return nil
}
