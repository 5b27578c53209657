package leadsdk

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/leadcapture/pkg/slogx"
)

// Messages shown when an operation fails below the API level.
const (
	MsgLoginFailed       = "An error occurred while logging in"
	MsgLogoutFailed      = "An error occurred while logging out"
	MsgCreateLeadFailed  = "An error occurred while creating the lead"
	MsgListLeadsFailed   = "An error occurred while fetching leads"
	MsgDeleteLeadsFailed = "An error occurred while deleting leads"
	MsgNotAuthenticated  = "You are not logged in"
)

// ErrNotAuthenticated is returned internally when a bearer operation finds no token.
var ErrNotAuthenticated = errors.New("leadsdk: not authenticated")

// APIError is an envelope with status false.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (http %d): %s", e.StatusCode, e.Message)
}

func succeed[T any](message string, data T) Result[T] {
	return Result[T]{Success: true, Message: message, Data: data, Outcome: OutcomeOK}
}

// fail turns err into a Result. Transport errors are logged and replaced by
// the generic message; API messages are passed through untouched.
func fail[T any](ctx context.Context, op, generic string, err error) Result[T] {
	log := slogx.FromContext(ctx)

	var apiErr *APIError
	switch {
	case errors.Is(err, ErrNotAuthenticated):
		return Result[T]{Message: MsgNotAuthenticated, Outcome: OutcomeNotAuthenticated}
	case errors.As(err, &apiErr):
		msg := apiErr.Message
		if msg == "" {
			msg = generic
		}
		log.Debug("lead api rejected request", "op", op, "http_status", apiErr.StatusCode, "message", apiErr.Message)
		return Result[T]{Message: msg, Outcome: OutcomeRejected}
	default:
		log.Error("lead api request failed", "op", op, "error", err)
		return Result[T]{Message: generic, Outcome: OutcomeTransport}
	}
}
