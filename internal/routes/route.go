package routes

import (
	"errors"
	"strings"

	"github.com/debemdeboas/brandi/internal/view"
)

var (
	ErrNotFound       = errors.New("no route matches path")
	ErrInvalidPath    = errors.New("invalid path")
	ErrRedirectLoop   = errors.New("too many redirects")
	ErrDuplicateRoute = errors.New("duplicate route")
	ErrDuplicateName  = errors.New("duplicate route name")
	ErrInvalidRoute   = errors.New("invalid route")
)

// MaxRedirects bounds how many redirect hops Resolve follows.
const MaxRedirects = 8

// Route is a declaration in the route table. Child paths are relative to the
// parent's path unless they start with "/". An empty child path declares the
// parent's index route.
type Route struct {
	Path     string
	Name     string
	View     view.ID
	Redirect string
	Children []Route
}

// Record is a compiled Route. Records are immutable once the table is built.
type Record struct {
	pattern  string
	name     string
	view     view.ID
	redirect string
	index    bool
	depth    int

	parent   *Record
	children []*Record
}

// Pattern returns the absolute path the record matches. Index records end in "/".
func (r *Record) Pattern() string { return r.pattern }

func (r *Record) Name() string { return r.name }

func (r *Record) View() view.ID { return r.view }

func (r *Record) Redirect() string { return r.redirect }

func (r *Record) IsIndex() bool { return r.index }

func (r *Record) Depth() int { return r.depth }

func (r *Record) Parent() *Record { return r.parent }

// Children returns a copy of the record's child records in declaration order.
func (r *Record) Children() []*Record {
	out := make([]*Record, len(r.children))
	copy(out, r.children)
	return out
}

// chain returns the records from the root ancestor down to r.
func (r *Record) chain() []*Record {
	var out []*Record
	for cur := r; cur != nil; cur = cur.parent {
		out = append(out, cur)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Match is the result of matching a single path without following redirects.
type Match struct {
	Path    string
	Records []*Record
}

// Leaf returns the most specific matched record.
func (m Match) Leaf() *Record {
	if len(m.Records) == 0 {
		return nil
	}
	return m.Records[len(m.Records)-1]
}

// Redirect returns the absolute redirect target of the leaf record, if any.
func (m Match) Redirect() string {
	if leaf := m.Leaf(); leaf != nil {
		return leaf.redirect
	}
	return ""
}

// Resolution is the outcome of resolving a path, redirects included.
type Resolution struct {
	// Requested is the canonical form of the path that was asked for.
	Requested string
	// Path is the canonical path that finally matched.
	Path string
	// Records holds the matched records from the outermost shell to the leaf.
	Records []*Record
	// Redirects lists every redirect target followed, in order.
	Redirects []string
	// Hops pairs each redirect with the declared pattern that issued it.
	Hops []Hop
}

// Hop is one followed redirect. From is the pattern as declared in the
// table, so it does not vary with the casing of the request.
type Hop struct {
	From string
	To   string
}

func (r Resolution) Redirected() bool {
	return len(r.Redirects) > 0
}

// Name returns the name of the leaf record.
func (r Resolution) Name() string {
	if len(r.Records) == 0 {
		return ""
	}
	return r.Records[len(r.Records)-1].name
}

// Views returns the ordered list of components to mount, outermost first.
func (r Resolution) Views() []view.ID {
	out := make([]view.ID, 0, len(r.Records))
	for _, rec := range r.Records {
		if rec.view != "" {
			out = append(out, rec.view)
		}
	}
	return out
}

// Entry is a flattened, printable view of a record.
type Entry struct {
	Pattern  string    `json:"pattern"`
	Name     string    `json:"name,omitempty"`
	Views    []view.ID `json:"views,omitempty"`
	Redirect string    `json:"redirect,omitempty"`
	Depth    int       `json:"depth"`
}

func joinPattern(parent, child string) string {
	if strings.HasPrefix(child, "/") {
		return child
	}
	if child == "" {
		return strings.TrimSuffix(parent, "/") + "/"
	}
	return strings.TrimSuffix(parent, "/") + "/" + child
}
