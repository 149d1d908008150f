package github

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	gh "github.com/google/go-github/v66/github"
)

// ErrDuplicateHook is matched by errors returned when a webhook with the same
// URL is already registered.
var ErrDuplicateHook = errors.New("hook already exists")

// ErrEmptyProject is returned by Push when the project directory has nothing
// to commit.
var ErrEmptyProject = errors.New("project directory is empty")

// DuplicateHookError is returned by CreateHook when GitHub rejects a webhook
// because one with the same URL exists.
type DuplicateHookError struct {
	Repository string
	URL        string
	Err        error
}

func (e *DuplicateHookError) Error() string {
	return fmt.Sprintf("webhook %s already exists on %s", e.URL, e.Repository)
}

// Is reports whether target is ErrDuplicateHook.
func (e *DuplicateHookError) Is(target error) bool {
	return target == ErrDuplicateHook
}

func (e *DuplicateHookError) Unwrap() error {
	return e.Err
}

// IsDuplicateHook checks if an error indicates the webhook already exists.
func IsDuplicateHook(err error) bool {
	return errors.Is(err, ErrDuplicateHook)
}

// IsNotFound checks if an error is a GitHub 404 response.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized checks if an error is a GitHub 401 response.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

func hasStatus(err error, code int) bool {
	var errResp *gh.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		return errResp.Response.StatusCode == code
	}
	return false
}

// isHookExists checks for the 422 validation failure GitHub sends when a hook
// with the same configuration is already registered.
func isHookExists(err error) bool {
	var errResp *gh.ErrorResponse
	if !errors.As(err, &errResp) || errResp.Response == nil {
		return false
	}
	if errResp.Response.StatusCode != http.StatusUnprocessableEntity {
		return false
	}
	for _, e := range errResp.Errors {
		if strings.Contains(strings.ToLower(e.Message), "hook already exists") {
			return true
		}
	}
	return strings.Contains(strings.ToLower(errResp.Message), "hook already exists")
}
