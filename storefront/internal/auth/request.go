package auth

import (
	"context"
	"sync"

	"github.com/azaliaz/luxefurnish/storefront/internal/domain/models"
)

type Status int

const (
	StatusPending Status = iota
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of a successful sign-in or sign-up. Redirect is
// set when the signed-in user should be sent to the admin console.
type Result struct {
	User     models.User
	Role     string
	Redirect string
}

// Request is an in-flight auth submission.
type Request struct {
	done chan struct{}
	once sync.Once

	mu     sync.RWMutex
	status Status
	result Result
	err    error
}

func newRequest() *Request {
	return &Request{done: make(chan struct{})}
}

func completed(res Result, err error) *Request {
	r := newRequest()
	r.finish(res, err)
	return r
}

// Done is closed once the request has succeeded or failed.
func (r *Request) Done() <-chan struct{} {
	return r.done
}

func (r *Request) Status() Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}

// Wait blocks until the request completes or ctx is done. Giving up on the
// wait does not cancel the request.
func (r *Request) Wait(ctx context.Context) (Result, error) {
	select {
	case <-r.done:
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.result, r.err
}

func (r *Request) finish(res Result, err error) {
	r.once.Do(func() {
		r.mu.Lock()
		if err != nil {
			r.status = StatusFailed
			r.err = err
		} else {
			r.status = StatusSucceeded
			r.result = res
		}
		r.mu.Unlock()
		close(r.done)
	})
}
