package shell

import (
	"errors"

	"github.com/azaliaz/luxefurnish/storefront/internal/auth"
)

// RequestAuth opens the sign-in dialog; checkout falls back to it when
// nobody is signed in.
func (s *Shell) RequestAuth() {
	s.printf("Please sign in to continue to checkout.\n")
	s.signIn()
}

func (s *Shell) signIn() {
	if user, ok := s.session.User(); ok {
		s.printf("Logged in as %s.\n", user.Username)
		return
	}
	email, ok := s.ask("Email")
	if !ok {
		return
	}
	password, ok := s.ask("Password")
	if !ok {
		return
	}
	req, err := s.auth.SignIn(s.ctx, email, password)
	if res, ok := s.await(req, err); ok {
		s.printf("Welcome back, %s!\n", res.User.Username)
	}
}

func (s *Shell) signUp() {
	if user, ok := s.session.User(); ok {
		s.printf("Logged in as %s. Sign out first to create another account.\n", user.Username)
		return
	}
	username, ok := s.ask("Username")
	if !ok {
		return
	}
	email, ok := s.ask("Email")
	if !ok {
		return
	}
	password, ok := s.ask("Password")
	if !ok {
		return
	}
	req, err := s.auth.SignUp(s.ctx, username, email, password)
	if res, ok := s.await(req, err); ok {
		s.printf("Account created. Welcome, %s!\n", res.User.Username)
	}
}

// await blocks on the submission and prints its failure message, if any.
func (s *Shell) await(req *auth.Request, err error) (auth.Result, bool) {
	if errors.Is(err, auth.ErrBusy) {
		return auth.Result{}, false
	}
	if err != nil {
		s.printf("%s\n", auth.Message(err))
		return auth.Result{}, false
	}
	if req.Status() == auth.StatusPending {
		s.printf("Please wait...\n")
	}
	res, err := req.Wait(s.ctx)
	if err != nil {
		if s.ctx.Err() == nil {
			s.printf("%s\n", auth.Message(err))
		}
		return auth.Result{}, false
	}
	if res.Redirect != "" {
		s.printf("Redirecting to %s\n", res.Redirect)
	}
	return res, true
}

func (s *Shell) signOut() {
	if err := s.auth.SignOut(s.ctx); err != nil {
		s.printf("Signed out, but the stored session could not be removed.\n")
		return
	}
	s.printf("Signed out.\n")
}

func (s *Shell) whoami() {
	user, ok := s.session.User()
	if !ok {
		s.printf("Not signed in.\n")
		return
	}
	s.printf("Logged in as %s <%s>.\n", user.Username, user.Email)
}
