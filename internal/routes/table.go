// Package routes holds the application route table and resolves requested
// paths to the chain of view components that should be mounted for them.
package routes

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

var routesLogger = zerolog.Nop()

func SetLogger(l zerolog.Logger) {
	routesLogger = l
}

// node is a segment in the match tree. A node may terminate a route of its
// own and, separately, the index route declared by one of its children.
type node struct {
	segment  string
	children []*node
	own      *Record
	index    *Record
}

// find compares segments case-insensitively.
func (n *node) find(segment string) *node {
	for _, child := range n.children {
		if strings.EqualFold(child.segment, segment) {
			return child
		}
	}
	return nil
}

func (n *node) insert(segments []string) *node {
	current := n
	for _, seg := range segments {
		next := current.find(seg)
		if next == nil {
			next = &node{segment: seg}
			current.children = append(current.children, next)
		}
		current = next
	}
	return current
}

// Table is an immutable, compiled route table. It is safe for concurrent use.
type Table struct {
	root    *node
	records []*Record
	names   map[string]*Record
}

// New compiles the declarations into a Table. Every redirect must lead to a
// route that renders a view.
func New(routes ...Route) (*Table, error) {
	t := &Table{
		root:  &node{},
		names: make(map[string]*Record),
	}

	for _, rt := range routes {
		if err := t.add(rt, nil); err != nil {
			return nil, err
		}
	}

	for _, rec := range t.records {
		if rec.redirect == "" {
			continue
		}
		if _, err := t.Resolve(rec.redirect); err != nil {
			return nil, fmt.Errorf("%w: redirect of %q: %w", ErrInvalidRoute, rec.pattern, err)
		}
	}

	routesLogger.Debug().Int("records", len(t.records)).Msg("Route table compiled")
	return t, nil
}

// MustNew is like New but panics on an invalid table.
func MustNew(routes ...Route) *Table {
	t, err := New(routes...)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) add(rt Route, parent *Record) error {
	if parent == nil && !strings.HasPrefix(rt.Path, "/") {
		return fmt.Errorf("%w: top-level path %q must be absolute", ErrInvalidRoute, rt.Path)
	}
	if rt.View == "" && rt.Redirect == "" {
		return fmt.Errorf("%w: %q declares neither a view nor a redirect", ErrInvalidRoute, rt.Path)
	}

	rec := &Record{
		pattern: rt.Path,
		name:    rt.Name,
		view:    rt.View,
		parent:  parent,
	}
	base := "/"
	if parent != nil {
		rec.pattern = joinPattern(parent.pattern, rt.Path)
		rec.index = rt.Path == ""
		rec.depth = parent.depth + 1
		base = parent.pattern
	}

	if rt.Redirect != "" {
		target, err := Canonicalize(joinPattern(base, rt.Redirect))
		if err != nil {
			return fmt.Errorf("%w: redirect of %q: %w", ErrInvalidRoute, rec.pattern, err)
		}
		rec.redirect = target
	}

	segs, err := decodeSegments(rec.pattern)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidRoute, rec.pattern, err)
	}
	n := t.root.insert(segs)
	if rec.index {
		if n.index != nil {
			return fmt.Errorf("%w: index of %q", ErrDuplicateRoute, parent.pattern)
		}
		n.index = rec
	} else {
		if n.own != nil {
			return fmt.Errorf("%w: %q", ErrDuplicateRoute, rec.pattern)
		}
		n.own = rec
	}

	if rec.name != "" {
		if prev, ok := t.names[rec.name]; ok {
			return fmt.Errorf("%w: %q used by %q and %q", ErrDuplicateName, rec.name, prev.pattern, rec.pattern)
		}
		t.names[rec.name] = rec
	}

	t.records = append(t.records, rec)
	if parent != nil {
		parent.children = append(parent.children, rec)
	}

	for _, child := range rt.Children {
		if err := t.add(child, rec); err != nil {
			return err
		}
	}
	return nil
}

// Match finds the record for path without following redirects. An index
// route takes precedence over its parent when both match.
func (t *Table) Match(path string) (Match, error) {
	canon, err := Canonicalize(path)
	if err != nil {
		return Match{}, err
	}

	n := t.root
	for _, seg := range splitCanonical(canon) {
		if n = n.find(seg); n == nil {
			return Match{}, fmt.Errorf("%w: %s", ErrNotFound, canon)
		}
	}

	rec := n.index
	if rec == nil {
		rec = n.own
	}
	if rec == nil {
		return Match{}, fmt.Errorf("%w: %s", ErrNotFound, canon)
	}
	return Match{Path: canon, Records: rec.chain()}, nil
}

// Resolve matches path and follows redirects until a record that renders a
// view is reached.
func (t *Table) Resolve(path string) (Resolution, error) {
	m, err := t.Match(path)
	if err != nil {
		return Resolution{}, err
	}

	res := Resolution{Requested: m.Path}
	for m.Redirect() != "" {
		if len(res.Redirects) >= MaxRedirects {
			return Resolution{}, fmt.Errorf("%w: %s", ErrRedirectLoop, res.Requested)
		}
		target := m.Redirect()
		res.Redirects = append(res.Redirects, target)
		res.Hops = append(res.Hops, Hop{From: m.Leaf().pattern, To: target})
		if m, err = t.Match(target); err != nil {
			return Resolution{}, fmt.Errorf("redirect to %q: %w", target, err)
		}
	}

	res.Path = m.Path
	res.Records = m.Records
	return res, nil
}

// Lookup returns the record declared with name.
func (t *Table) Lookup(name string) (*Record, bool) {
	rec, ok := t.names[name]
	return rec, ok
}

// URL returns the canonical path of the route declared with name.
func (t *Table) URL(name string) (string, bool) {
	rec, ok := t.Lookup(name)
	if !ok {
		return "", false
	}
	if rec.pattern == "/" {
		return "/", true
	}
	return strings.TrimSuffix(rec.pattern, "/"), true
}

// Roots returns the top-level records in declaration order.
func (t *Table) Roots() []*Record {
	var out []*Record
	for _, rec := range t.records {
		if rec.parent == nil {
			out = append(out, rec)
		}
	}
	return out
}

// Routes flattens the table in declaration order, parents before children.
func (t *Table) Routes() []Entry {
	out := make([]Entry, 0, len(t.records))
	for _, rec := range t.records {
		e := Entry{
			Pattern:  rec.pattern,
			Name:     rec.name,
			Redirect: rec.redirect,
			Depth:    rec.depth,
		}
		for _, r := range rec.chain() {
			if r.view != "" {
				e.Views = append(e.Views, r.view)
			}
		}
		out = append(out, e)
	}
	return out
}
