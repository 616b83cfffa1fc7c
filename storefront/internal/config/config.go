package config

import (
	"cmp"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAuthURL     = "http://localhost:5000"
	defaultStateDir    = ".luxefurnish"
	defaultAuthTimeout = 10 * time.Second
)

type Config struct {
	Debug            bool
	AuthURL          string
	AuthTimeout      time.Duration
	StateDir         string
	RedisAddr        string
	RedisPassword    string
	PersistCart      bool
	AdminEmail       string
	AdminPassHash    string
	AdminRedirectURL string
}

func ReadConfig() (*Config, error) {
	_ = godotenv.Load()
	return parse(os.Args[1:], os.Getenv)
}

func parse(args []string, getenv func(string) string) (*Config, error) {
	var authURL, stateDir, redisAddr string
	var timeout time.Duration
	var debug, persistCart bool

	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	fs.BoolVar(&debug, "debug", false, "flag to set Debug logger level")
	fs.StringVar(&authURL, "auth", defaultAuthURL, "auth service base url")
	fs.DurationVar(&timeout, "auth-timeout", defaultAuthTimeout, "auth request timeout")
	fs.StringVar(&stateDir, "state", defaultStateDir, "directory for the stored session and cart")
	fs.StringVar(&redisAddr, "redis", "", "redis address; when set, state is kept in redis")
	fs.BoolVar(&persistCart, "persist-cart", false, "keep the cart between runs")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	var err error
	if v := getenv("AUTH_TIMEOUT"); v != "" {
		if timeout, err = time.ParseDuration(v); err != nil {
			return nil, fmt.Errorf("parse AUTH_TIMEOUT: %w", err)
		}
	}
	if v := getenv("PERSIST_CART"); v != "" {
		if persistCart, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("parse PERSIST_CART: %w", err)
		}
	}

	return &Config{
		Debug:            debug,
		AuthURL:          cmp.Or(getenv("AUTH_URL"), authURL),
		AuthTimeout:      timeout,
		StateDir:         cmp.Or(getenv("STATE_DIR"), stateDir),
		RedisAddr:        cmp.Or(getenv("REDIS_ADDR"), redisAddr),
		RedisPassword:    getenv("REDIS_PASSWORD"),
		PersistCart:      persistCart,
		AdminEmail:       getenv("ADMIN_EMAIL"),
		AdminPassHash:    getenv("ADMIN_PASSWORD_HASH"),
		AdminRedirectURL: getenv("ADMIN_REDIRECT_URL"),
	}, nil
}
