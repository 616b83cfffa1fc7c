// Package shell is the line-oriented storefront front end: it lists the
// catalog, edits the cart, signs shoppers in and walks them through
// checkout.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/azaliaz/luxefurnish/storefront/internal/auth"
	"github.com/azaliaz/luxefurnish/storefront/internal/cart"
	"github.com/azaliaz/luxefurnish/storefront/internal/catalog"
	"github.com/azaliaz/luxefurnish/storefront/internal/checkout"
	"github.com/azaliaz/luxefurnish/storefront/internal/logger"
	"github.com/azaliaz/luxefurnish/storefront/internal/session"
)

const (
	RouteHome = "/"
	brand     = "luxefurnish"
)

var errQuit = errors.New("quit")

type Deps struct {
	Catalog *catalog.Catalog
	Cart    *cart.Store
	Session *session.Store
	Auth    *auth.Service
}

type Shell struct {
	out      io.Writer
	lines    <-chan string
	done     chan struct{}
	stopOnce sync.Once

	catalog *catalog.Catalog
	cart    *cart.Store
	session *session.Store
	auth    *auth.Service
	gate    *checkout.Gate
	flow    *checkout.Flow

	ctx      context.Context
	route    string
	category string
	query    string
}

func New(in io.Reader, out io.Writer, deps Deps) *Shell {
	done := make(chan struct{})
	s := &Shell{
		out:      out,
		lines:    scan(in, done),
		done:     done,
		catalog:  deps.Catalog,
		cart:     deps.Cart,
		session:  deps.Session,
		auth:     deps.Auth,
		ctx:      context.Background(),
		route:    RouteHome,
		category: catalog.CategoryAll,
	}
	s.gate = checkout.NewGate(s.cart, s.session, s, s)
	s.flow = checkout.NewFlow(s.cart, s.session)
	return s
}

// scan feeds input lines until in ends or done is closed.
func scan(in io.Reader, done <-chan struct{}) <-chan string {
	lines := make(chan string, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case <-done:
				return
			default:
			}
			select {
			case lines <- sc.Text():
			case <-done:
				return
			}
		}
	}()
	return lines
}

// Run reads commands until the input ends, the shopper quits or ctx is
// cancelled.
func (s *Shell) Run(ctx context.Context) error {
	s.ctx = ctx
	defer s.stopOnce.Do(func() { close(s.done) })
	s.printf("Welcome to LuxeFurnish. Type \"help\" for commands.\n")
	if user, ok := s.session.User(); ok {
		s.printf("Welcome back, %s!\n", user.Username)
	}

	for {
		s.printf("%s", s.prompt())
		line, ok := s.readLine()
		if !ok {
			return ctx.Err()
		}
		if err := s.exec(line); err != nil {
			if errors.Is(err, errQuit) {
				s.printf("Goodbye!\n")
				return nil
			}
			return err
		}
	}
}

// Route is the page the shell currently shows.
func (s *Shell) Route() string {
	return s.route
}

func (s *Shell) prompt() string {
	var b strings.Builder
	b.WriteString(brand)
	if n := s.cart.State().Count(); n > 0 {
		fmt.Fprintf(&b, " [%d]", n)
	}
	if user, ok := s.session.User(); ok {
		b.WriteString(" " + user.Username)
	}
	b.WriteString("> ")
	return b.String()
}

func (s *Shell) readLine() (string, bool) {
	select {
	case <-s.ctx.Done():
		return "", false
	case line, ok := <-s.lines:
		return strings.TrimSpace(line), ok
	}
}

// ask prints label and returns the next line of input.
func (s *Shell) ask(label string) (string, bool) {
	s.printf("%s: ", label)
	return s.readLine()
}

func (s *Shell) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(s.out, format, args...); err != nil {
		log := logger.Get()
		log.Debug().Err(err).Msg("write to shell output failed")
	}
}

func (s *Shell) exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	log := logger.Get()
	log.Debug().Str("cmd", cmd).Strs("args", args).Msg("shell command")

	switch cmd {
	case "help", "?":
		s.help()
	case "categories":
		s.categories()
	case "products", "ls":
		s.products()
	case "filter":
		s.filter(args)
	case "search":
		s.search(args)
	case "add":
		s.add(args)
	case "cart":
		s.showCart()
	case "inc":
		s.step(args, 1)
	case "dec":
		s.step(args, -1)
	case "qty":
		s.setQuantity(args)
	case "remove", "rm":
		s.remove(args)
	case "signin", "login":
		s.signIn()
	case "signup", "register":
		s.signUp()
	case "signout", "logout":
		s.signOut()
	case "whoami":
		s.whoami()
	case "checkout":
		s.gate.RequestCheckout()
	case "quit", "exit":
		return errQuit
	default:
		s.printf("Unknown command %q. Type \"help\" for commands.\n", cmd)
	}
	return nil
}

func (s *Shell) help() {
	s.printf(`Commands:
  categories            list categories
  products              list products in the current category
  filter <category>     switch category ("all" for everything)
  search [text]         search names and descriptions; empty clears
  add <id>              add a product to the cart
  cart                  show the cart
  inc <id> / dec <id>   change a line quantity by one
  qty <id> <n>          set a line quantity (0 removes)
  remove <id>           remove a line
  signin / signup       sign in or create an account
  signout               sign out
  whoami                show the signed in user
  checkout              place an order
  quit                  leave the store
`)
}
