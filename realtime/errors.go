package realtime

import (
	"errors"
	"fmt"
)

var (
	ErrMissingCredential  = errors.New("missing API key")
	ErrCredentialRejected = errors.New("API key rejected")
)

// ConnectionError reports a transport level failure: the connection could not
// be established, was rejected, stopped answering keep-alives or was closed.
// It is fatal to the session.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("upstream %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// ProtocolError reports an upstream frame that could not be decoded.
type ProtocolError struct {
	// Type is the frame type, if it could be read.
	Type   string
	Reason string
	Err    error
}

func (e *ProtocolError) Error() string {
	msg := "malformed upstream frame"
	if e.Type != "" {
		msg += " " + e.Type
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// ServiceError is an error event sent by the upstream service itself. It
// does not end the session.
type ServiceError struct {
	Type    string
	Code    string
	Message string
}

func (e *ServiceError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Code)
	}
	return e.Message
}
