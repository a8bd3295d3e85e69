// Package fault defines the user-facing error taxonomy for opavm.
//
// Every failure surfaces as an *Error carrying a short message and an
// optional remediation hint. Components return these errors unchanged to
// the CLI, which renders them; nothing in internal/ prints or retries.
package fault

import "errors"

// Kind classifies an error for callers that need to branch on cause.
type Kind int

const (
	KindGeneric Kind = iota
	KindUnsupportedPlatform
	KindUnknownTool
	KindNotConfigured
	KindNotInstalled
	KindDownload
	KindChecksum
	KindSignature
	KindVerification
	KindCorruptState
	KindLookup
	KindInvalidRepo
	KindUsage
)

// Error is a user-facing failure with remediation text.
type Error struct {
	Kind    Kind
	Message string
	Hint    string
	cause   error
}

// New creates an Error without an underlying cause.
func New(kind Kind, message, hint string) *Error {
	return &Error{Kind: kind, Message: message, Hint: hint}
}

// Wrap creates an Error that preserves the underlying cause for errors.Is/As.
func Wrap(kind Kind, message, hint string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Hint: hint, cause: cause}
}

func (e *Error) Error() string {
	if e.Hint != "" {
		return e.Message + " " + e.Hint
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind == kind
	}
	return false
}
