package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/seitarof/go-explorer/internal/catalog"
	"github.com/seitarof/go-explorer/internal/explore"
	"github.com/seitarof/go-explorer/internal/heritage"
	"github.com/seitarof/go-explorer/internal/provider"
	"github.com/seitarof/go-explorer/internal/store"
)

// InfoKind selects which member information a Runner reports.
type InfoKind string

const (
	InfoDoc       InfoKind = "doc"
	InfoSignature InfoKind = "signature"
	InfoType      InfoKind = "type"
)

// Notice is a notification attached to a view.
type Notice struct {
	Kind    explore.Kind `json:"kind" yaml:"kind"`
	Title   string       `json:"title" yaml:"title"`
	Message string       `json:"message" yaml:"message"`
}

// View is what every navigation command prints.
type View struct {
	Status  explore.Status   `json:"status" yaml:"status"`
	Counts  catalog.Counts   `json:"counts" yaml:"counts"`
	Query   catalog.Query    `json:"query" yaml:"query"`
	Members catalog.Catalog  `json:"members" yaml:"members"`
	Index   catalog.FlatList `json:"index" yaml:"index"`
	Notice  *Notice          `json:"notice,omitempty" yaml:"notice,omitempty"`
}

// Info is the answer of a doc, signature or type request.
type Info struct {
	Trace   string   `json:"trace" yaml:"trace"`
	Member  string   `json:"member,omitempty" yaml:"member,omitempty"`
	Kind    InfoKind `json:"kind" yaml:"kind"`
	Text    string   `json:"text" yaml:"text"`
	Present bool     `json:"present" yaml:"present"`
}

// Runner executes one command against the saved session.
type Runner interface {
	Open(pkgPath string) (View, error)
	In(target string) (View, error)
	Out(levels int) (View, error)
	OutTo(index int) (View, error)
	Members(q catalog.Query) (View, error)
	Info(kind InfoKind, member string) (Info, error)
	Heritage(classes []string) (heritage.Graph, error)
	Show() (View, error)
}

type runnerImpl struct {
	provider provider.Provider
	store    store.Store
	query    catalog.Query
	logger   *zap.Logger
}

// NewRunner creates a runner. defaults is the filter used by new sessions.
func NewRunner(p provider.Provider, st store.Store, defaults catalog.Query, logger *zap.Logger) Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaults.Mode == "" {
		defaults.Mode = catalog.ModeContains
	}
	return &runnerImpl{provider: p, store: st, query: defaults, logger: logger}
}

func (r *runnerImpl) Open(pkgPath string) (View, error) {
	s, err := explore.OpenModule(r.provider, pkgPath, r.sessionOptions(r.query)...)
	if err != nil {
		return View{}, err
	}
	return r.commit(s)
}

// In steps into target, a member name or "#i" for the i-th entry of the
// filtered index.
func (r *runnerImpl) In(target string) (View, error) {
	s, err := r.restore()
	if err != nil {
		return View{}, err
	}

	member := target
	if idx, ok, err := parseIndex(target); err != nil {
		return View{}, err
	} else if ok {
		m, err := s.MemberAt(idx)
		if err != nil {
			return View{}, err
		}
		member = m.Name
	}

	if err := s.StepIn(member); err != nil {
		return View{}, err
	}
	return r.commit(s)
}

func (r *runnerImpl) Out(levels int) (View, error) {
	s, err := r.restore()
	if err != nil {
		return View{}, err
	}
	if err := s.StepOut(levels); err != nil {
		return View{}, err
	}
	return r.commit(s)
}

func (r *runnerImpl) OutTo(index int) (View, error) {
	s, err := r.restore()
	if err != nil {
		return View{}, err
	}
	if err := s.StepOutTo(index); err != nil {
		return View{}, err
	}
	return r.commit(s)
}

func (r *runnerImpl) Members(q catalog.Query) (View, error) {
	s, err := r.restore()
	if err != nil {
		return View{}, err
	}
	s.SetFilter(q)
	return r.commit(s)
}

func (r *runnerImpl) Info(kind InfoKind, member string) (Info, error) {
	s, err := r.restore()
	if err != nil {
		return Info{}, err
	}

	var query func(string) (string, bool, error)
	switch kind {
	case InfoDoc:
		query = s.Doc
	case InfoSignature:
		query = s.Signature
	case InfoType:
		query = s.TypeOf
	default:
		return Info{}, fmt.Errorf("unknown info kind %q", kind)
	}

	text, present, err := query(member)
	if err != nil {
		return Info{}, err
	}
	return Info{Trace: s.Trace(), Member: member, Kind: kind, Text: text, Present: present}, nil
}

func (r *runnerImpl) Heritage(classes []string) (heritage.Graph, error) {
	s, err := r.restore()
	if err != nil {
		return heritage.Graph{}, err
	}
	return s.Heritage(classes...)
}

func (r *runnerImpl) Show() (View, error) {
	s, err := r.restore()
	if err != nil {
		return View{}, err
	}
	return viewOf(s), nil
}

func (r *runnerImpl) restore() (*explore.Session, error) {
	snap, err := r.store.Load()
	if err != nil {
		if errors.Is(err, store.ErrNoSnapshot) {
			return nil, fmt.Errorf("no session at %s, run open first: %w", r.store.Path(), err)
		}
		return nil, err
	}
	q := snap.Query
	if q.Mode == "" {
		q.Mode = r.query.Mode
	}
	return explore.Restore(r.provider, snap.Status, r.sessionOptions(q)...)
}

func (r *runnerImpl) commit(s *explore.Session) (View, error) {
	snap := store.Snapshot{Status: s.Status(), Query: s.Query()}
	if err := r.store.Save(snap); err != nil {
		return View{}, err
	}
	r.logger.Debug("cli: session saved",
		zap.String("trace", s.Trace()),
		zap.String("path", r.store.Path()))
	return viewOf(s), nil
}

func (r *runnerImpl) sessionOptions(q catalog.Query) []explore.Option {
	return []explore.Option{explore.WithLogger(r.logger), explore.WithQuery(q)}
}

func viewOf(s *explore.Session) View {
	v := View{
		Status:  s.Status(),
		Counts:  s.Counts(),
		Query:   s.Query(),
		Members: s.Filtered(),
		Index:   s.FilteredFlat(),
	}
	if e := s.LastError(); e != nil {
		v.Notice = &Notice{Kind: e.Kind, Title: e.Title(), Message: e.Message}
	}
	return v
}

// parseIndex recognizes "#i" targets.
func parseIndex(target string) (int, bool, error) {
	if !strings.HasPrefix(target, "#") {
		return 0, false, nil
	}
	idx, err := strconv.Atoi(strings.TrimPrefix(target, "#"))
	if err != nil {
		return 0, false, fmt.Errorf("invalid member index %q: %w", target, err)
	}
	return idx, true, nil
}
