package storage

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/azaliaz/luxefurnish/user-service/internal/domain/consts"
	"github.com/azaliaz/luxefurnish/user-service/internal/domain/models"
	"github.com/azaliaz/luxefurnish/user-service/internal/logger"
	storerrros "github.com/azaliaz/luxefurnish/user-service/internal/storage/errors"
)

type MemStorage struct {
	mu        sync.RWMutex
	usersStor map[string]models.User
}

func New() *MemStorage {
	return &MemStorage{
		usersStor: make(map[string]models.User),
	}
}

func (ms *MemStorage) SaveUser(user models.User) (models.User, error) {
	log := logger.Get()
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, err := ms.findUser(user.Email); err == nil {
		return models.User{}, storerrros.ErrUserExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Pass), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("save user failed")
		return models.User{}, err
	}
	user.Pass = string(hash)
	user.UID = uuid.New().String()
	if user.Role == "" {
		user.Role = consts.RoleUser
	}
	ms.usersStor[user.UID] = user
	log.Debug().Str("uid", user.UID).Str("role", user.Role).Msg("user saved")
	return user, nil
}

func (ms *MemStorage) ValidUser(email, pass string) (models.User, error) {
	ms.mu.RLock()
	memUser, err := ms.findUser(email)
	ms.mu.RUnlock()
	if err != nil {
		return models.User{}, err
	}
	if err = bcrypt.CompareHashAndPassword([]byte(memUser.Pass), []byte(pass)); err != nil {
		return models.User{}, storerrros.ErrInvalidPassword
	}
	return memUser, nil
}

func (ms *MemStorage) GetUser(uid string) (models.User, error) {
	log := logger.Get()
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	user, ok := ms.usersStor[uid]
	if !ok {
		log.Error().Str("uid", uid).Msg("user not found")
		return models.User{}, storerrros.ErrUserNotFound
	}
	return user, nil
}

func (ms *MemStorage) findUser(email string) (models.User, error) {
	for _, user := range ms.usersStor {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return models.User{}, storerrros.ErrUserNoExist
}
