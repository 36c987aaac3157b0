// Package provider defines the reflection capability the exploration engine
// navigates through. Implementations resolve names to opaque handles and
// describe what those handles point at.
package provider

import (
	"errors"

	"github.com/seitarof/go-explorer/internal/catalog"
)

// SelfMarker is the parameter name given to method receivers in raw
// signatures, e.g. "(self *List, v any) *Element".
const SelfMarker = "self"

var (
	// ErrNotFound is returned when a name does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrNotClass is returned by Bases for handles that are not types.
	ErrNotClass = errors.New("not a class")
	// ErrUnavailable is returned when reflection data cannot be produced.
	ErrUnavailable = errors.New("reflection data unavailable")
)

// Handle is an opaque reference to a live object. ID must be stable for the
// lifetime of the provider that produced it.
type Handle interface {
	ID() string
}

// Provider resolves and describes handles.
type Provider interface {
	ResolveRoot(name string) (Handle, error)
	ResolveChild(h Handle, name string) (Handle, error)
	ListMembers(h Handle) ([]string, error)
	ClassifyMember(h Handle, name string) (catalog.Category, error)

	// Doc, Signature and TypeName report ok=false when the handle has no
	// such information. That is not an error.
	Doc(h Handle) (string, bool, error)
	Signature(h Handle) (string, bool, error)
	TypeName(h Handle) (string, bool, error)

	// Bases returns the direct bases of a class handle. An empty result
	// means the class derives only from the universal root type.
	Bases(h Handle) ([]Handle, error)

	DisplayName(h Handle) string
	ModuleName(h Handle) string
}
