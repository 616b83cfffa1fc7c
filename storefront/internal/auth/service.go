// Package auth signs shoppers in and out against the remote auth API and
// keeps the session store in step with the result.
package auth

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/go-playground/validator/v10"

	"github.com/azaliaz/luxefurnish/storefront/internal/domain/models"
	"github.com/azaliaz/luxefurnish/storefront/internal/logger"
	"github.com/azaliaz/luxefurnish/storefront/internal/validation"
)

// SessionStore is the part of the session store the service drives.
type SessionStore interface {
	Set(ctx context.Context, user models.User) error
	Clear(ctx context.Context) error
}

type signinForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signupForm struct {
	Username string `json:"username" validate:"required,min=2,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type Service struct {
	remote   Remote
	session  SessionStore
	admin    *AdminFastPath
	redirect string
	valid    *validator.Validate
	pending  atomic.Bool
}

type Option func(*Service)

func WithAdminFastPath(a *AdminFastPath) Option {
	return func(s *Service) {
		s.admin = a
	}
}

// WithAdminRedirect sets where users with the admin role returned by the
// auth API are sent after signing in.
func WithAdminRedirect(url string) Option {
	return func(s *Service) {
		s.redirect = url
	}
}

func NewService(remote Remote, session SessionStore, opts ...Option) *Service {
	s := &Service{
		remote:  remote,
		session: session,
		valid:   validation.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.redirect == "" {
		s.redirect = s.admin.Redirect()
	}
	return s
}

// Pending reports whether a submission is in flight.
func (s *Service) Pending() bool {
	return s.pending.Load()
}

// SignIn validates the form and starts the exchange. Errors returned
// directly are ErrBusy or a validation *Error; everything else is reported
// through the Request.
func (s *Service) SignIn(ctx context.Context, email, password string) (*Request, error) {
	if s.Pending() {
		return nil, ErrBusy
	}
	form := signinForm{Email: strings.TrimSpace(email), Password: password}
	if err := s.valid.Struct(form); err != nil {
		return nil, newError(KindValidation, validation.Message(err), err)
	}

	if user, ok := s.admin.Match(form.Email, form.Password); ok {
		log := logger.Get()
		log.Info().Msg("admin signed in locally")
		log.Debug().Str("email", user.Email).Msg("admin fast path matched")
		s.establish(ctx, user)
		return completed(Result{User: user, Role: RoleAdmin, Redirect: s.admin.Redirect()}, nil), nil
	}

	return s.start(ctx, func(ctx context.Context) (Identity, error) {
		return s.remote.SignIn(ctx, form.Email, form.Password)
	})
}

// SignUp registers a new account; on success the shopper is signed in.
func (s *Service) SignUp(ctx context.Context, username, email, password string) (*Request, error) {
	if s.Pending() {
		return nil, ErrBusy
	}
	form := signupForm{
		Username: strings.TrimSpace(username),
		Email:    strings.TrimSpace(email),
		Password: password,
	}
	if err := s.valid.Struct(form); err != nil {
		return nil, newError(KindValidation, validation.Message(err), err)
	}

	return s.start(ctx, func(ctx context.Context) (Identity, error) {
		return s.remote.SignUp(ctx, form.Username, form.Email, form.Password)
	})
}

// SignOut clears the session. Safe to call when nobody is signed in.
func (s *Service) SignOut(ctx context.Context) error {
	return s.session.Clear(ctx)
}

func (s *Service) start(ctx context.Context, call func(context.Context) (Identity, error)) (*Request, error) {
	if !s.pending.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	req := newRequest()
	ctx = context.WithoutCancel(ctx)

	go func() {
		log := logger.Get()
		id, err := call(ctx)
		if err != nil {
			log.Debug().Err(err).Msg("auth request failed")
			s.pending.Store(false)
			req.finish(Result{}, err)
			return
		}
		s.establish(ctx, id.User)
		res := Result{User: id.User, Role: id.Role}
		if id.Role == RoleAdmin {
			res.Redirect = s.redirect
		}
		s.pending.Store(false)
		req.finish(res, nil)
	}()
	return req, nil
}

func (s *Service) establish(ctx context.Context, user models.User) {
	if err := s.session.Set(ctx, user); err != nil {
		log := logger.Get()
		log.Warn().Err(err).Msg("session kept in memory only")
	}
}
