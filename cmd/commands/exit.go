package commands

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ncobase/taskmate/ecode"
	"github.com/ncobase/taskmate/net/client"
	"github.com/ncobase/taskmate/screen"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitValidation  = 2
	ExitAuth        = 3
	ExitRejected    = 4
	ExitUnreachable = 5
	ExitMalformed   = 6
)

// usageError marks bad flags or arguments.
type usageError struct{ error }

func (e usageError) Unwrap() error { return e.error }

// cliError carries the user-facing message of a failed operation.
type cliError struct {
	msg string
	err error
}

func (e *cliError) Error() string { return e.msg }
func (e *cliError) Unwrap() error { return e.err }

// ExitCode maps err to the process exit code.
func ExitCode(err error) int {
	var usage usageError
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &usage), errors.Is(err, screen.ErrInvalidForm):
		return ExitValidation
	case errors.Is(err, screen.ErrNoSession), client.IsAuthFailure(err):
		return ExitAuth
	}
	switch client.Kind(err) {
	case client.KindServerRejected:
		return ExitRejected
	case client.KindUnreachable:
		return ExitUnreachable
	case client.KindMalformedResponse:
		return ExitMalformed
	}
	return ExitFailure
}

type noticer interface {
	Notice() *screen.Notice
}

// failed turns a controller error into a cliError carrying the field errors
// or the error notice the controller left.
func failed(n noticer, fields screen.FieldErrors, err error) error {
	if errors.Is(err, screen.ErrInvalidForm) && len(fields) > 0 {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var b strings.Builder
		b.WriteString("invalid input")
		for _, k := range keys {
			fmt.Fprintf(&b, "\n  %s: %s", k, fields[k])
		}
		return &cliError{msg: b.String(), err: err}
	}
	if note := n.Notice(); note != nil && note.Kind == screen.NoticeError {
		return &cliError{msg: note.Message, err: err}
	}
	return err
}

// apiFailed describes a raw API error.
func apiFailed(err error) error {
	msg := client.RejectionMessage(err)
	if msg == "" {
		msg = ecode.Text(client.Kind(err).Code())
	}
	return &cliError{msg: msg, err: err}
}
