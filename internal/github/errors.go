package github

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"profile-summary/internal/pagination"

	"github.com/google/go-github/v81/github"
)

// NetworkError is a transport failure or an HTTP error that is not specific
// to one repository. It aborts the whole run.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// TimeoutError reports an exceeded per-request timeout or overall deadline.
type TimeoutError struct {
	Op  string
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: timed out: %v", e.Op, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// RepoFetchError wraps the first failed sub-fetch of a repository.
type RepoFetchError struct {
	Repo string
	Err  error
}

func (e *RepoFetchError) Error() string {
	return fmt.Sprintf("failed to collect stats for %s: %v", e.Repo, e.Err)
}

func (e *RepoFetchError) Unwrap() error { return e.Err }

// IsFatal reports whether err must abort the whole aggregation rather than
// only the repository it came from.
func IsFatal(err error) bool {
	var netErr *NetworkError
	var timeoutErr *TimeoutError
	return errors.As(err, &netErr) ||
		errors.As(err, &timeoutErr) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// classify sorts an API error into the taxonomy above. Responses that only
// concern a single repository (missing, empty, blocked) and malformed
// pagination stay plain wrapped errors.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Op: op, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TimeoutError{Op: op, Err: err}
	}

	var malformedErr *pagination.MalformedPaginationError
	if errors.As(err, &malformedErr) {
		return fmt.Errorf("%s: %w", op, err)
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		switch respErr.Response.StatusCode {
		case http.StatusNotFound, http.StatusConflict, http.StatusUnavailableForLegalReasons:
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return &NetworkError{Op: op, Err: err}
}
