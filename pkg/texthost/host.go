// Package texthost is a Host that keeps every committed tree as markup. It
// stands in for a real display in tests, demos and benchmarks.
package texthost

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/delaneyj/hookparty/hooks"
)

var (
	ErrNotFound  = errors.New("texthost: node not found")
	ErrNoHandler = errors.New("texthost: no handler")
)

// Surface is one committed tree. Markup and Digest are snapshots taken at
// commit time; Nodes are the live host nodes, which later commits update in
// place.
type Surface struct {
	host *Host

	Version   int
	Markup    string
	Digest    uint64
	Nodes     []*hooks.HostNode
	Presented bool
}

func (s *Surface) Present() error {
	h := s.host
	s.Presented = true
	h.presented = s
	h.presents++
	if h.onPresent != nil {
		h.onPresent(s)
	}
	return nil
}

type Option func(*Host)

// WithPresentHook calls fn every time a surface is presented.
func WithPresentHook(fn func(s *Surface)) Option {
	return func(h *Host) {
		h.onPresent = fn
	}
}

// WithHistory keeps at most n committed surfaces. Zero keeps all of them.
func WithHistory(n int) Option {
	return func(h *Host) {
		h.keep = n
	}
}

type Host struct {
	commits   []*Surface
	version   int
	keep      int
	presented *Surface
	presents  int
	failNext  error
	onPresent func(s *Surface)
}

func New(opts ...Option) *Host {
	h := &Host{}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Host) Commit(nodes []*hooks.HostNode) (hooks.Surface, error) {
	if err := h.failNext; err != nil {
		h.failNext = nil
		return nil, err
	}
	h.version++
	markup := Markup(nodes)
	s := &Surface{
		host:    h,
		Version: h.version,
		Markup:  markup,
		Digest:  xxhash.Sum64String(markup),
		Nodes:   nodes,
	}
	h.commits = append(h.commits, s)
	if h.keep > 0 && len(h.commits) > h.keep {
		h.commits = h.commits[len(h.commits)-h.keep:]
	}
	return s, nil
}

// FailNextCommit makes the next Commit return err.
func (h *Host) FailNextCommit(err error) {
	h.failNext = err
}

// Commits returns the committed surfaces, oldest first.
func (h *Host) Commits() []*Surface {
	return h.commits
}

// CommitCount is the number of commits so far, including those dropped from
// the history.
func (h *Host) CommitCount() int {
	return h.version
}

// Presents is the number of Present calls so far.
func (h *Host) Presents() int {
	return h.presents
}

// Presented returns the surface on display, nil before the first present.
func (h *Host) Presented() *Surface {
	return h.presented
}

// Markup returns the markup on display.
func (h *Host) Markup() string {
	if h.presented == nil {
		return ""
	}
	return h.presented.Markup
}

// Find returns the presented node whose "id" attribute is id.
func (h *Host) Find(id string) *hooks.HostNode {
	if h.presented == nil {
		return nil
	}
	return Find(h.presented.Nodes, id)
}

// TextOf returns the text content of the presented node id.
func (h *Host) TextOf(id string) string {
	n := h.Find(id)
	if n == nil {
		return ""
	}
	return TextContent(n)
}

// Click calls the onClick handler of the presented node id.
func (h *Host) Click(id string) error {
	n := h.Find(id)
	if n == nil {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	fn, ok := Handler[func()](n, "onClick")
	if !ok {
		return fmt.Errorf("%w: onClick on %q", ErrNoHandler, id)
	}
	fn()
	return nil
}

// Input calls the onInput handler of the presented node id with value.
func (h *Host) Input(id, value string) error {
	n := h.Find(id)
	if n == nil {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	fn, ok := Handler[func(string)](n, "onInput")
	if !ok {
		return fmt.Errorf("%w: onInput on %q", ErrNoHandler, id)
	}
	fn(value)
	return nil
}

// Find walks nodes depth first for the node whose "id" attribute is id.
func Find(nodes []*hooks.HostNode, id string) *hooks.HostNode {
	for _, n := range nodes {
		if v, ok := n.Attrs["id"].(string); ok && v == id {
			return n
		}
		if found := Find(n.Children, id); found != nil {
			return found
		}
	}
	return nil
}

// Handler returns the attribute name of n as an F.
func Handler[F any](n *hooks.HostNode, name string) (F, bool) {
	fn, ok := n.Attrs[name].(F)
	return fn, ok
}

// TextContent concatenates the text nodes below n.
func TextContent(n *hooks.HostNode) string {
	if n.Tag == "" {
		return n.Text
	}
	var sb strings.Builder
	for _, c := range n.Children {
		sb.WriteString(TextContent(c))
	}
	return sb.String()
}
