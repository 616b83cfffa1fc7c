package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/azaliaz/luxefurnish/user-service/internal/domain/consts"
	"github.com/azaliaz/luxefurnish/user-service/internal/domain/models"
	"github.com/azaliaz/luxefurnish/user-service/internal/logger"
	storerrros "github.com/azaliaz/luxefurnish/user-service/internal/storage/errors"
)

type DBStorage struct {
	pool *pgxpool.Pool
}

func NewDB(ctx context.Context, addr string) (*DBStorage, error) {
	pool, err := pgxpool.New(ctx, addr)
	if err != nil {
		return nil, err
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &DBStorage{
		pool: pool,
	}, nil
}

func (dbs *DBStorage) Close() {
	dbs.pool.Close()
}

func (dbs *DBStorage) SaveUser(user models.User) (models.User, error) {
	log := logger.Get()
	ctx, cancel := context.WithTimeout(context.Background(), consts.DBCtxTimeout)
	defer cancel()

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

	_, err = dbs.pool.Exec(ctx, "INSERT INTO users (uid, username, email, pass, role) VALUES ($1, $2, $3, $4, $5)",
		user.UID, user.Username, user.Email, user.Pass, user.Role)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return models.User{}, storerrros.ErrUserExists
		}
		log.Error().Err(err).Msg("failed to insert user")
		return models.User{}, err
	}
	log.Debug().Str("uid", user.UID).Str("role", user.Role).Msg("user saved")
	return user, nil
}

func (dbs *DBStorage) ValidUser(email, pass string) (models.User, error) {
	usr, err := dbs.queryUser("SELECT uid, username, email, pass, role FROM users WHERE lower(email) = lower($1)", email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storerrros.ErrUserNoExist
		}
		return models.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usr.Pass), []byte(pass)); err != nil {
		return models.User{}, storerrros.ErrInvalidPassword
	}
	return usr, nil
}

func (dbs *DBStorage) GetUser(uid string) (models.User, error) {
	usr, err := dbs.queryUser("SELECT uid, username, email, pass, role FROM users WHERE uid = $1", uid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storerrros.ErrUserNotFound
		}
		return models.User{}, err
	}
	return usr, nil
}

func (dbs *DBStorage) queryUser(query string, arg string) (models.User, error) {
	log := logger.Get()
	ctx, cancel := context.WithTimeout(context.Background(), consts.DBCtxTimeout)
	defer cancel()
	var usr models.User
	row := dbs.pool.QueryRow(ctx, query, arg)
	if err := row.Scan(&usr.UID, &usr.Username, &usr.Email, &usr.Pass, &usr.Role); err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			log.Error().Err(err).Msg("failed scan db data")
		}
		return models.User{}, err
	}
	return usr, nil
}

func Migrations(dbDsn string, migrationsPath string) error {
	log := logger.Get()
	migratePath := fmt.Sprintf("file://%s", migrationsPath)
	m, err := migrate.New(migratePath, dbDsn)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info().Msg("no migrations to apply")
			return nil
		}
		return err
	}
	log.Info().Msg("all migrations applied")
	return nil
}
