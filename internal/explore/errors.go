package explore

import "fmt"

// Kind is the category of a session error.
type Kind string

const (
	// KindInvalidMember: the requested name is not in the current catalog.
	KindInvalidMember Kind = "InvalidMember"
	// KindAttributeError: member retrieval failed at a position.
	KindAttributeError Kind = "AttributeError"
	// KindExplorationComplete: a position has no further members.
	KindExplorationComplete Kind = "ExplorationComplete"
	// KindImportError: the root could not be resolved.
	KindImportError Kind = "ImportError"
)

// Error is the user-facing error of the engine.
type Error struct {
	Kind    Kind   `json:"kind" yaml:"kind"`
	Message string `json:"message" yaml:"message"`
	cause   error
}

// Sentinels for errors.Is; they match any *Error of the same Kind.
var (
	ErrInvalidMember       = &Error{Kind: KindInvalidMember}
	ErrAttributeError      = &Error{Kind: KindAttributeError}
	ErrExplorationComplete = &Error{Kind: KindExplorationComplete}
	ErrImportError         = &Error{Kind: KindImportError}
)

func newError(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error of the same kind, so the Err* values work with
// errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Title is the short headline shown with a notification.
func (e *Error) Title() string {
	switch e.Kind {
	case KindExplorationComplete:
		return "Exploration Complete."
	case KindAttributeError:
		return "Exploration Error."
	case KindImportError:
		return "Import Error."
	default:
		return "Invalid Member."
	}
}

// Retreated reports whether the error was produced by automatic retreat,
// i.e. the session is still usable.
func (e *Error) Retreated() bool {
	return e.Kind == KindAttributeError || e.Kind == KindExplorationComplete
}
