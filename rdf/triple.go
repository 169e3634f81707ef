package rdf

import "sort"

// Triple is a single subject-predicate-object statement. Triples are
// immutable facts: the store is queried, never mutated, after loading.
type Triple struct {
	Subject   Node
	Predicate Node
	Object    Node
}

// Less orders triples lexicographically by subject, predicate, object.
// Sorted iteration is what makes re-rendering an unchanged ontology
// byte-identical.
func (t Triple) Less(o Triple) bool {
	if t.Subject != o.Subject {
		return t.Subject.Less(o.Subject)
	}
	if t.Predicate != o.Predicate {
		return t.Predicate.Less(o.Predicate)
	}
	return t.Object.Less(o.Object)
}

// SortTriples sorts a slice of triples in place into canonical order.
func SortTriples(ts []Triple) {
	sort.Slice(ts, func(i, j int) bool { return ts[i].Less(ts[j]) })
}

// SortNodes sorts a slice of nodes in place into canonical order.
func SortNodes(ns []Node) {
	sort.Slice(ns, func(i, j int) bool { return ns[i].Less(ns[j]) })
}
