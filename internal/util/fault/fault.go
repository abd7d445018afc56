package fault

import (
	"errors"
	"fmt"
)

// Kind identifies the category of a failure.
type Kind int

const (
	// KindUnknown is returned by KindOf for errors that were never classified.
	KindUnknown Kind = iota
	// KindConfiguration covers bad or contradictory inputs.
	KindConfiguration
	// KindKeyParse covers private keys that cannot be parsed.
	KindKeyParse
	// KindIO covers filesystem create, write and read failures.
	KindIO
	// KindToolProvision covers SDK install and version resolution failures.
	KindToolProvision
	// KindCommandExecution covers processes that failed to spawn or exited non-zero.
	KindCommandExecution
	// KindCleanup covers best-effort cleanup failures.
	KindCleanup
)

var kindNames = map[Kind]string{
	KindUnknown:          "unknown",
	KindConfiguration:    "configuration",
	KindKeyParse:         "key parse",
	KindIO:               "io",
	KindToolProvision:    "tool provision",
	KindCommandExecution: "command execution",
	KindCleanup:          "cleanup",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error attaches a Kind to an underlying error.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New wraps err with the given kind. A nil err yields nil.
func New(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}

// Newf formats a message and wraps it with the given kind.
func Newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// Configuration marks err as a configuration error.
func Configuration(err error) error { return New(KindConfiguration, err) }

// KeyParse marks err as a key parse error.
func KeyParse(err error) error { return New(KindKeyParse, err) }

// IO marks err as a filesystem error.
func IO(err error) error { return New(KindIO, err) }

// ToolProvision marks err as an SDK provisioning error.
func ToolProvision(err error) error { return New(KindToolProvision, err) }

// CommandExecution marks err as a command execution error.
func CommandExecution(err error) error { return New(KindCommandExecution, err) }

// Cleanup marks err as a cleanup error.
func Cleanup(err error) error { return New(KindCleanup, err) }

// KindOf returns the kind of the outermost classified error in err's chain.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
