package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/azaliaz/luxefurnish/storefront/internal/domain/models"
)

const (
	DefaultTimeout = 10 * time.Second

	signinPath = "/api/signin"
	signupPath = "/api/signup"

	maxResponseBody = 1 << 20
)

// Identity is what the auth API returns on success.
type Identity struct {
	User  models.User
	Role  string
	Token string
}

//go:generate mockgen -source=client.go -destination=./mocks/remote_mock.go -package=mocks

// Remote performs credential exchange with the auth API.
type Remote interface {
	SignIn(ctx context.Context, email, password string) (Identity, error)
	SignUp(ctx context.Context, username, email, password string) (Identity, error)
}

type reply struct {
	status int
	body   []byte
}

type authReply struct {
	Token string      `json:"token"`
	Role  string      `json:"role"`
	User  models.User `json:"user"`
	Error string      `json:"error"`
}

// Client talks to the user-service over HTTP. Transport failures and 5xx
// replies count against a circuit breaker; while it is open, calls fail
// fast with ServiceUnavailable.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	cb      *gobreaker.CircuitBreaker[reply]
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		timeout: timeout,
		cb: gobreaker.NewCircuitBreaker[reply](gobreaker.Settings{
			Name:        "auth-api",
			MaxRequests: 1,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
		}),
	}
}

func (c *Client) SignIn(ctx context.Context, email, password string) (Identity, error) {
	r, err := c.post(ctx, signinPath, map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return Identity{}, err
	}
	body := decodeReply(r.body)

	switch {
	case r.status == http.StatusOK:
		return body.identity()
	case r.status == http.StatusBadRequest:
		return Identity{}, newError(KindValidation, orDefault(body.Error, "Email and password are required"), nil)
	case r.status == http.StatusUnauthorized, r.status == http.StatusNotFound:
		return Identity{}, newError(KindInvalidCredentials, orDefault(body.Error, "Invalid email or password"), nil)
	case r.status == http.StatusTooManyRequests:
		return Identity{}, newError(KindServiceUnavailable, orDefault(body.Error, "Too many attempts, try again later"), nil)
	default:
		return Identity{}, unexpectedStatus(r.status, body.Error)
	}
}

func (c *Client) SignUp(ctx context.Context, username, email, password string) (Identity, error) {
	r, err := c.post(ctx, signupPath, map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	if err != nil {
		return Identity{}, err
	}
	body := decodeReply(r.body)

	switch {
	case r.status == http.StatusCreated, r.status == http.StatusOK:
		return body.identity()
	case r.status == http.StatusBadRequest:
		return Identity{}, newError(KindValidation, orDefault(body.Error, "Username, email and password are required"), nil)
	case r.status == http.StatusConflict:
		return Identity{}, newError(KindDuplicateAccount, orDefault(body.Error, "User already exists"), nil)
	case r.status == http.StatusTooManyRequests:
		return Identity{}, newError(KindServiceUnavailable, orDefault(body.Error, "Too many attempts, try again later"), nil)
	case r.status >= 400 && r.status < 500:
		return Identity{}, newError(KindRegistrationFailed, orDefault(body.Error, "Sign-up failed"), nil)
	default:
		return Identity{}, unexpectedStatus(r.status, body.Error)
	}
}

func (c *Client) post(ctx context.Context, path string, payload any) (reply, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return reply{}, fmt.Errorf("marshal request: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	r, err := c.cb.Execute(func() (reply, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
		if err != nil {
			return reply{}, err
		}
		req.Header.Set("Content-Type", "application/json")
		resp, err := c.http.Do(req)
		if err != nil {
			return reply{}, err
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
		if err != nil {
			return reply{}, err
		}
		r := reply{status: resp.StatusCode, body: body}
		if resp.StatusCode >= http.StatusInternalServerError {
			return r, fmt.Errorf("auth api responded %d", resp.StatusCode)
		}
		return r, nil
	})
	if err == nil {
		return r, nil
	}

	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return reply{}, newError(KindServiceUnavailable, "Service temporarily unavailable, please try again later", err)
	case errors.Is(err, context.DeadlineExceeded):
		return reply{}, newError(KindServiceUnavailable, "The server took too long to respond", err)
	case r.status >= http.StatusInternalServerError:
		return reply{}, unexpectedStatus(r.status, decodeReply(r.body).Error)
	default:
		return reply{}, newError(KindServiceUnavailable, "Unable to reach the server", err)
	}
}

func decodeReply(body []byte) authReply {
	var r authReply
	_ = json.Unmarshal(body, &r)
	return r
}

func (r authReply) identity() (Identity, error) {
	if r.User.Email == "" {
		return Identity{}, newError(KindServiceUnavailable, "Unexpected response from server", nil)
	}
	return Identity{User: r.User, Role: r.Role, Token: r.Token}, nil
}

func unexpectedStatus(status int, msg string) *Error {
	return newError(KindServiceUnavailable,
		orDefault(msg, "Service unavailable, please try again later"),
		fmt.Errorf("unexpected status %d", status))
}

func orDefault(msg, def string) string {
	if msg == "" {
		return def
	}
	return msg
}
