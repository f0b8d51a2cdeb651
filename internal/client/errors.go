package client

import (
	"errors"
	"fmt"

	"github.com/nibzard/todoboard/internal/todo"
)

// TransportError reports a request that did not produce a usable answer:
// the network failed, the body could not be read or decoded, or the server
// replied with a non-success status and no message.
type TransportError struct {
	Op         string // e.g. "list todos"
	StatusCode int    // 0 when no response was received
	Body       string // trimmed response body, if any
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Body != "":
		return fmt.Sprintf("%s: HTTP %d: %s", e.Op, e.StatusCode, e.Body)
	default:
		return fmt.Sprintf("%s: HTTP %d", e.Op, e.StatusCode)
	}
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// ValidationError carries a message explaining why a record was rejected,
// either by the server (StatusCode set) or locally before any request.
type ValidationError struct {
	StatusCode int // 0 for local rejections
	Message    string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Local reports whether the rejection happened before any request was made.
func (e *ValidationError) Local() bool {
	return e.StatusCode == 0
}

// NotFoundError reports a fetch by id for a record the store does not have.
type NotFoundError struct {
	ID      todo.ID
	Message string // server text, if any
}

func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("todo %s not found", e.ID)
}

// Message returns the text to show a user for err, preferring the
// server-provided message where one exists.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf.Error()
	}
	var te *TransportError
	if errors.As(err, &te) {
		switch {
		case te.Err != nil:
			return te.Err.Error()
		case te.Body != "":
			return te.Body
		default:
			return fmt.Sprintf("HTTP error: %d", te.StatusCode)
		}
	}
	return err.Error()
}
