// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides the error boundary: the single interception point that
// wraps downstream handler execution and converts any failure surfacing from
// it into the uniform {"code","message"} JSON envelope. Handlers never write
// error bodies themselves; they surface failures (via panic or c.Error) and
// the boundary classifies, formats, logs, and responds exactly once.
//
// Design notes:
//   - Install the boundary after RequestID() and Logger() so the error log
//     record carries the request-scoped fields.
//   - http.ErrAbortHandler is deliberately re-panicked: net/http treats it
//     as "abort the connection, send nothing", and converting it into a JSON
//     body would defeat that contract. Go runtime fatals (stack exhaustion,
//     out of memory) never reach recover at all.
//   - If the downstream handler already wrote response bytes, no second
//     body is emitted; the failure is still logged and counted.
package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/Harshit978/ErrorHandler/internal/classify"
	"github.com/Harshit978/ErrorHandler/internal/respond"
	"github.com/Harshit978/ErrorHandler/internal/status"
)

// jsonContentType is the media type of every normalized error body.
const jsonContentType = "application/json; charset=utf-8"

// Boundary bundles the shared classification state consulted on the error
// path. Construct it once at setup time and install Handler() on the engine;
// registrations on the classifier and resolver remain legal while serving.
type Boundary struct {
	Classifier *classify.Classifier
	Status     *status.Resolver
}

// Handler returns the boundary middleware.
//
// On the success path it performs zero writes and touches none of the
// classification state. On the error path (a panic recovered from
// downstream, or an error collected via c.Error()) it drives
// classify → build → resolve and writes status, Content-Type, and the
// envelope body in one shot, emitting exactly one error log record.
func (b Boundary) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec) // fatal host condition, not ours to absorb
			}
			b.convert(c, recoveredError(rec), debug.Stack())
		}()

		c.Next()

		// Error-return path: handlers surface failures with c.Error(err).
		// The first collected error is the failure that aborted the request.
		if len(c.Errors) > 0 {
			b.convert(c, c.Errors[0].Err, nil)
		}
	}
}

// convert runs the full normalization pipeline for one failure.
func (b Boundary) convert(c *gin.Context, err error, stack []byte) {
	desc := b.Classifier.Classify(err)
	payload := respond.Build(desc, err)
	st := b.Status.Resolve(desc.Code)

	ev := LoggerFrom(c).Error().
		Str("code", desc.Code).
		Int("status", st).
		Str("detail", err.Error())
	if stack != nil {
		ev = ev.Bytes("stack", stack)
	}
	ev.Msg("request failed")

	observeErrorResponse(desc.Code)

	if c.Writer.Written() {
		// Bytes already reached the client; a second body would corrupt the
		// response. Abort so no later handler runs.
		c.Abort()
		return
	}

	body, merr := respond.Marshal(payload)
	if merr != nil {
		// Unreachable for a two-string struct, but never send nothing.
		body = []byte(`{"code":"ERR-000","message":"An unknown error occurred."}`)
		st = status.DefaultStatus
	}
	c.Data(st, jsonContentType, body)
	c.Abort()
}

// recoveredError normalizes a recovered panic value into an error. Non-error
// panic values (strings, ints) become their fmt representation, which then
// feeds the descriptor template as the detail string.
func recoveredError(rec any) error {
	if err, ok := rec.(error); ok {
		return err
	}
	return fmt.Errorf("%v", rec)
}
