package explore

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/seitarof/go-explorer/internal/provider"
)

// ErrEmptyStatus is returned when a status has no history to restore from.
var ErrEmptyStatus = errors.New("status has empty history")

// Status is the handle-free snapshot of a session.
type Status struct {
	History []string `json:"history" yaml:"history"`
	Trace   string   `json:"trace" yaml:"trace"`
}

// Root returns the root name recorded in the status.
func (st Status) Root() string {
	if len(st.History) == 0 {
		return ""
	}
	return st.History[0]
}

// ToStatus snapshots s.
func ToStatus(s *Session) Status {
	return Status{History: s.Path(), Trace: s.Trace()}
}

// Status snapshots the session.
func (s *Session) Status() Status {
	return ToStatus(s)
}

// FromStatus rebuilds a session from st against an already resolved root.
// Segments are resolved in order; resolution stops at the first segment that
// no longer exists and the usual retreat rule applies from there.
func FromStatus(p provider.Provider, root provider.Handle, st Status, opts ...Option) (*Session, error) {
	if len(st.History) == 0 {
		return nil, ErrEmptyStatus
	}

	s := newSession(p, opts)
	s.handles = []provider.Handle{root}
	s.path = []string{p.DisplayName(root)}

	var broken *Error
	for _, seg := range st.History[1:] {
		child, err := p.ResolveChild(s.current(), seg)
		if err != nil {
			broken = newError(KindAttributeError, err, "Member retrieval failed for '%s.%s'", s.Trace(), seg)
			s.logger.Warn("explore: status segment no longer resolves",
				zap.String("trace", s.Trace()),
				zap.String("member", seg),
				zap.Error(err))
			break
		}
		s.handles = append(s.handles, child)
		s.path = append(s.path, seg)
	}

	s.lastErr = s.refresh()
	if broken != nil {
		s.lastErr = broken
	}
	s.applyFilter()
	return s, nil
}

// Restore resolves the root named by st and rebuilds the session.
func Restore(p provider.Provider, st Status, opts ...Option) (*Session, error) {
	if len(st.History) == 0 {
		return nil, ErrEmptyStatus
	}
	root, err := p.ResolveRoot(st.History[0])
	if err != nil {
		return nil, newError(KindImportError, err, "could not import '%s'", st.History[0])
	}
	return FromStatus(p, root, st, opts...)
}

// Valid reports whether the trace agrees with the history.
func (st Status) Valid() bool {
	return len(st.History) > 0 && st.Trace == strings.Join(st.History, ".")
}
