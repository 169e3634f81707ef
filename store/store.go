// Package store holds the loaded triple graph and exposes pattern-matched
// lookup to the analyzer and renderer. The store is populated once by the
// loader and never mutated afterwards.
package store

import (
	"sort"

	"github.com/c360studio/specdoc/rdf"
)

// Store is an in-memory triple graph with prefix bindings discovered during
// loading.
type Store struct {
	triples  []rdf.Triple
	bySubj   map[string][]int
	byPred   map[string][]int
	prefixes map[string]string
}

// New returns an empty store.
func New() *Store {
	return &Store{
		bySubj:   make(map[string][]int),
		byPred:   make(map[string][]int),
		prefixes: make(map[string]string),
	}
}

// Add appends a triple to the store. Only the loader calls this; the
// analyzer and renderer treat the store as read-only.
func (s *Store) Add(t rdf.Triple) {
	i := len(s.triples)
	s.triples = append(s.triples, t)
	s.bySubj[t.Subject.String()] = append(s.bySubj[t.Subject.String()], i)
	s.byPred[t.Predicate.Value()] = append(s.byPred[t.Predicate.Value()], i)
}

// AddPrefix records a namespace prefix binding discovered during parsing.
// The first binding for a prefix wins.
func (s *Store) AddPrefix(prefix, uri string) {
	if _, ok := s.prefixes[prefix]; !ok {
		s.prefixes[prefix] = uri
	}
}

// Prefixes returns the discovered prefix bindings, prefix to namespace URI.
// The returned map is shared; callers must not modify it.
func (s *Store) Prefixes() map[string]string {
	return s.prefixes
}

// Len returns the number of loaded triples.
func (s *Store) Len() int { return len(s.triples) }

// Match returns every triple matching the given pattern. A nil component is
// a wildcard. Results are in canonical sorted order so that iteration is
// deterministic across runs.
func (s *Store) Match(subject, predicate, object *rdf.Node) []rdf.Triple {
	var candidates []int
	switch {
	case subject != nil:
		candidates = s.bySubj[subject.String()]
	case predicate != nil:
		candidates = s.byPred[predicate.Value()]
	default:
		candidates = make([]int, len(s.triples))
		for i := range s.triples {
			candidates[i] = i
		}
	}

	var out []rdf.Triple
	for _, i := range candidates {
		t := s.triples[i]
		if subject != nil && t.Subject != *subject {
			continue
		}
		if predicate != nil && t.Predicate != *predicate {
			continue
		}
		if object != nil && t.Object != *object {
			continue
		}
		out = append(out, t)
	}
	rdf.SortTriples(out)
	return out
}

// One returns the first triple in canonical order matching the pattern.
func (s *Store) One(subject, predicate, object *rdf.Node) (rdf.Triple, bool) {
	ts := s.Match(subject, predicate, object)
	if len(ts) == 0 {
		return rdf.Triple{}, false
	}
	return ts[0], true
}

// Objects returns the sorted object nodes of all triples with the given
// subject and predicate IRIs.
func (s *Store) Objects(subject rdf.Node, predicate string) []rdf.Node {
	p := rdf.IRI(predicate)
	var out []rdf.Node
	for _, t := range s.Match(&subject, &p, nil) {
		out = append(out, t.Object)
	}
	rdf.SortNodes(out)
	return out
}

// Subjects returns the sorted subject nodes of all triples with the given
// predicate IRI and object.
func (s *Store) Subjects(predicate string, object rdf.Node) []rdf.Node {
	p := rdf.IRI(predicate)
	var out []rdf.Node
	for _, t := range s.Match(nil, &p, &object) {
		out = append(out, t.Subject)
	}
	rdf.SortNodes(out)
	return out
}

// Literal returns the first literal object for the subject and predicate,
// or "" when absent.
func (s *Store) Literal(subject rdf.Node, predicate string) string {
	for _, o := range s.Objects(subject, predicate) {
		if o.IsLiteral() {
			return o.Value()
		}
	}
	return ""
}

// SortedPrefixes returns the prefix names in lexicographic order.
func (s *Store) SortedPrefixes() []string {
	keys := make([]string, 0, len(s.prefixes))
	for k := range s.prefixes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
