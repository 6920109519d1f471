package service

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/folio/internal/content"
	"github.com/mesh-intelligence/folio/pkg/types"
)

// Result is the outcome of a write. Error is safe to show to the editor;
// the underlying cause is kept for status mapping via Err.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	ID      string `json:"id,omitempty"`

	err error
}

// Err returns the cause of a failed Result, or nil.
func (r Result) Err() error {
	return r.err
}

// MsgUnauthorized is the error text for writes refused by the Authorizer.
const MsgUnauthorized = "Unauthorized"

func ok(id string) Result {
	return Result{Success: true, ID: id}
}

func unauthorized() Result {
	return Result{Error: MsgUnauthorized, err: types.ErrUnauthorized}
}

// fail converts err into a Result. action reads like "update skills".
// Store failures are logged and reported generically.
func (s *Service) fail(action string, err error) Result {
	var ve *content.ValidationError
	switch {
	case errors.Is(err, types.ErrUnauthorized):
		return unauthorized()
	case errors.As(err, &ve):
		return Result{Error: ve.Error(), err: err}
	case errors.Is(err, types.ErrNotFound):
		return Result{Error: notFoundMessage(action), err: err}
	}
	s.logger.Error("write failed", zap.String("action", action), zap.Error(err))
	return Result{Error: "Failed to " + action, err: err}
}

// notFoundMessage turns "update project order" into "Project not found".
func notFoundMessage(action string) string {
	words := strings.Fields(action)
	if len(words) < 2 {
		return "Not found"
	}
	noun := words[1]
	return strings.ToUpper(noun[:1]) + noun[1:] + " not found"
}
