// Package explore implements the navigation state machine over a reflection
// provider: stepping into members, stepping back out, and automatic retreat
// from positions that have nothing left to explore.
package explore

import (
	"strings"

	"go.uber.org/zap"

	"github.com/seitarof/go-explorer/internal/catalog"
	"github.com/seitarof/go-explorer/internal/heritage"
	"github.com/seitarof/go-explorer/internal/provider"
)

// Session is positioned at one object of the member graph. It is not safe
// for concurrent use.
type Session struct {
	provider provider.Provider
	builder  heritage.Builder
	logger   *zap.Logger

	handles []provider.Handle
	path    []string

	members catalog.Catalog
	flat    catalog.FlatList

	query        catalog.Query
	filtered     catalog.Catalog
	filteredFlat catalog.FlatList

	lastErr *Error
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithQuery sets the initial filter.
func WithQuery(q catalog.Query) Option {
	return func(s *Session) {
		s.query = q
	}
}

// WithHeritageBuilder replaces the default heritage builder.
func WithHeritageBuilder(b heritage.Builder) Option {
	return func(s *Session) {
		if b != nil {
			s.builder = b
		}
	}
}

func newSession(p provider.Provider, opts []Option) *Session {
	s := &Session{
		provider: p,
		logger:   zap.NewNop(),
		query:    catalog.Query{Mode: catalog.ModeContains},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.builder == nil {
		s.builder = heritage.New(p, heritage.WithLogger(s.logger))
	}
	return s
}

// Open starts a session at root.
func Open(p provider.Provider, root provider.Handle, opts ...Option) *Session {
	s := newSession(p, opts)
	s.handles = []provider.Handle{root}
	s.path = []string{p.DisplayName(root)}
	s.lastErr = s.refresh()
	s.applyFilter()
	return s
}

// OpenModule resolves name as the root and starts a session there.
func OpenModule(p provider.Provider, name string, opts ...Option) (*Session, error) {
	root, err := p.ResolveRoot(name)
	if err != nil {
		return nil, newError(KindImportError, err, "could not import '%s'", name)
	}
	return Open(p, root, opts...), nil
}

// StepIn makes member the current position. It fails with an InvalidMember
// error, leaving the session untouched, when member is not listed at the
// current position. Retreat notices are reported through LastError.
func (s *Session) StepIn(member string) error {
	s.lastErr = nil
	if _, ok := s.flat.Find(member); !ok {
		return s.fail(newError(KindInvalidMember, nil, "'%s' is not a member of '%s'", member, s.Trace()))
	}

	child, err := s.provider.ResolveChild(s.current(), member)
	if err != nil {
		s.lastErr = newError(KindAttributeError, err, "Member retrieval failed for '%s.%s'", s.Trace(), member)
		s.logger.Warn("explore: member could not be resolved",
			zap.String("trace", s.Trace()),
			zap.String("member", member),
			zap.Error(err))
		return nil
	}

	s.handles = append(s.handles, child)
	s.path = append(s.path, member)
	s.lastErr = s.refresh()
	s.resetTerm()
	return nil
}

// StepOut moves levels positions towards the root. The root itself is never
// removed; levels <= 0 is a no-op.
func (s *Session) StepOut(levels int) error {
	s.lastErr = nil
	if levels <= 0 {
		return nil
	}
	s.truncate(levels)
	s.lastErr = s.refresh()
	s.resetTerm()
	return nil
}

// StepOutTo moves back to the path element at index.
func (s *Session) StepOutTo(index int) error {
	if index < 0 || index >= len(s.path) {
		s.lastErr = nil
		return s.fail(newError(KindInvalidMember, nil, "trace index %d is out of range for '%s'", index, s.Trace()))
	}
	return s.StepOut(len(s.path) - index - 1)
}

// SetFilter replaces the active filter.
func (s *Session) SetFilter(q catalog.Query) {
	if q.Mode == "" {
		q.Mode = catalog.ModeContains
	}
	s.query = q
	s.applyFilter()
}

// MemberAt returns the i-th member of the filtered flat list.
func (s *Session) MemberAt(i int) (catalog.Member, error) {
	if i < 0 || i >= len(s.filteredFlat) {
		return catalog.Member{}, s.fail(newError(KindInvalidMember, nil, "no member at index %d of '%s'", i, s.Trace()))
	}
	return s.filteredFlat[i], nil
}

// Doc returns the documentation of member, or of the current position when
// member is empty. present is false when there is none.
func (s *Session) Doc(member string) (text string, present bool, err error) {
	return s.describe(member, s.provider.Doc)
}

// Signature returns the call signature of member, or of the current
// position, with any self receiver marker removed.
func (s *Session) Signature(member string) (text string, present bool, err error) {
	text, present, err = s.describe(member, s.provider.Signature)
	if err != nil || !present {
		return "", present, err
	}
	return FormatSignature(text), true, nil
}

// TypeOf returns the type label of member, or of the current position.
func (s *Session) TypeOf(member string) (text string, present bool, err error) {
	return s.describe(member, s.provider.TypeName)
}

func (s *Session) describe(
	member string,
	query func(provider.Handle) (string, bool, error),
) (string, bool, error) {
	h, err := s.target(member)
	if err != nil {
		return "", false, err
	}
	text, ok, qerr := query(h)
	if qerr != nil {
		return "", false, s.fail(newError(KindAttributeError, qerr, "Member retrieval failed for '%s'", s.qualified(member)))
	}
	return text, ok, nil
}

func (s *Session) target(member string) (provider.Handle, error) {
	if member == "" {
		return s.current(), nil
	}
	if _, ok := s.flat.Find(member); !ok {
		return nil, s.fail(newError(KindInvalidMember, nil, "'%s' is not a member of '%s'", member, s.Trace()))
	}
	h, err := s.provider.ResolveChild(s.current(), member)
	if err != nil {
		return nil, s.fail(newError(KindAttributeError, err, "Member retrieval failed for '%s'", s.qualified(member)))
	}
	return h, nil
}

// Heritage builds the inheritance graph of the named classes, or of every
// class at the current position when none are given.
func (s *Session) Heritage(classes ...string) (heritage.Graph, error) {
	names := classes
	if len(names) == 0 {
		names = s.members[catalog.CategoryClasses]
	}
	for _, name := range names {
		if !s.members.Has(catalog.CategoryClasses, name) {
			return heritage.Graph{}, s.fail(newError(KindInvalidMember, nil, "'%s' is not a class member of '%s'", name, s.Trace()))
		}
	}

	handles := make([]provider.Handle, 0, len(names))
	for _, name := range names {
		h, err := s.provider.ResolveChild(s.current(), name)
		if err != nil {
			s.logger.Warn("explore: class could not be resolved, skipped",
				zap.String("trace", s.Trace()),
				zap.String("class", name),
				zap.Error(err))
			continue
		}
		handles = append(handles, h)
	}
	return s.builder.Build(handles), nil
}

// Path returns a copy of the access path.
func (s *Session) Path() []string {
	out := make([]string, len(s.path))
	copy(out, s.path)
	return out
}

// Trace is the access path joined with dots.
func (s *Session) Trace() string {
	return strings.Join(s.path, ".")
}

// Depth is the number of path elements, root included.
func (s *Session) Depth() int {
	return len(s.path)
}

// Current returns the handle of the current position.
func (s *Session) Current() provider.Handle {
	return s.current()
}

// Catalog returns a copy of the unfiltered catalog of the current position.
func (s *Session) Catalog() catalog.Catalog {
	return s.members.Clone()
}

// Flat returns a copy of the unfiltered flat member list.
func (s *Session) Flat() catalog.FlatList {
	return s.flat.Clone()
}

// Counts returns bucket sizes of the unfiltered catalog.
func (s *Session) Counts() catalog.Counts {
	return catalog.CountsOf(s.members)
}

// Filtered returns a copy of the catalog after the active filter.
func (s *Session) Filtered() catalog.Catalog {
	return s.filtered.Clone()
}

// FilteredFlat returns a copy of the flat list after the active filter.
// Selection by index refers to this list.
func (s *Session) FilteredFlat() catalog.FlatList {
	return s.filteredFlat.Clone()
}

// Query returns the active filter.
func (s *Session) Query() catalog.Query {
	return s.query
}

// LastError returns the error or notice produced by the last operation.
func (s *Session) LastError() *Error {
	return s.lastErr
}

func (s *Session) current() provider.Handle {
	return s.handles[len(s.handles)-1]
}

func (s *Session) qualified(member string) string {
	if member == "" {
		return s.Trace()
	}
	return s.Trace() + "." + member
}

func (s *Session) fail(e *Error) *Error {
	s.lastErr = e
	return e
}

// truncate drops up to levels trailing path elements, never the root.
func (s *Session) truncate(levels int) {
	if limit := len(s.path) - 1; levels > limit {
		levels = limit
	}
	if levels <= 0 {
		return
	}
	s.handles = s.handles[:len(s.handles)-levels]
	s.path = s.path[:len(s.path)-levels]
}

// refresh recomputes the catalog at the current position. Positions that
// are empty or unreadable are abandoned one level at a time until a usable
// position or the root is reached. The first problem is returned.
func (s *Session) refresh() *Error {
	var first *Error
	for attempts := len(s.path); attempts > 0; attempts-- {
		members, err := s.compute(s.current())

		var notice *Error
		switch {
		case err != nil:
			notice = newError(KindAttributeError, err, "Member retrieval failed for '%s'", s.Trace())
		case members.Len() == 0:
			notice = newError(KindExplorationComplete, nil, "No further members to explore in %s", s.Trace())
		default:
			s.setMembers(members)
			return first
		}

		if first == nil {
			first = notice
		}
		s.logger.Warn("explore: position unusable, stepping out",
			zap.String("trace", s.Trace()),
			zap.String("kind", string(notice.Kind)),
			zap.Error(err))

		if len(s.path) == 1 {
			s.setMembers(catalog.New())
			return first
		}
		s.truncate(1)
	}
	return first
}

func (s *Session) compute(h provider.Handle) (catalog.Catalog, error) {
	names, err := s.provider.ListMembers(h)
	if err != nil {
		return nil, err
	}
	return catalog.Categorize(names, func(name string) (catalog.Category, error) {
		return s.provider.ClassifyMember(h, name)
	})
}

func (s *Session) setMembers(c catalog.Catalog) {
	s.members = c
	s.flat = catalog.Flatten(c)
}

func (s *Session) resetTerm() {
	s.query.Term = ""
	s.applyFilter()
}

func (s *Session) applyFilter() {
	s.filteredFlat, s.filtered = catalog.Filter(s.flat, s.query)
}
