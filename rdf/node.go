// Package rdf provides the triple data model shared by the loader, the
// ontology analyzer, and the renderer.
package rdf

import "strings"

// Kind discriminates the three node variants that may appear in the object
// position of a triple. Subjects are IRIs or blank nodes; predicates are
// always IRIs.
type Kind int

const (
	// KindIRI is a named resource.
	KindIRI Kind = iota
	// KindBlank is an anonymous node, scoped to a single document.
	KindBlank
	// KindLiteral is a string value with optional datatype and language.
	KindLiteral
)

// Node is a tagged value in an RDF graph. The zero Node is an IRI with an
// empty value, which no well-formed graph produces.
type Node struct {
	kind     Kind
	value    string
	datatype string
	lang     string
}

// IRI returns a named resource node.
func IRI(uri string) Node {
	return Node{kind: KindIRI, value: uri}
}

// Blank returns a blank node with the given document-scoped identifier.
func Blank(id string) Node {
	return Node{kind: KindBlank, value: id}
}

// Literal returns a plain literal node.
func Literal(value string) Node {
	return Node{kind: KindLiteral, value: value}
}

// TypedLiteral returns a literal node with a datatype IRI.
func TypedLiteral(value, datatype string) Node {
	return Node{kind: KindLiteral, value: value, datatype: datatype}
}

// LangLiteral returns a literal node with a language tag.
func LangLiteral(value, lang string) Node {
	return Node{kind: KindLiteral, value: value, lang: lang}
}

// Kind reports the node variant.
func (n Node) Kind() Kind { return n.kind }

// IsIRI reports whether the node is a named resource.
func (n Node) IsIRI() bool { return n.kind == KindIRI }

// IsBlank reports whether the node is anonymous.
func (n Node) IsBlank() bool { return n.kind == KindBlank }

// IsLiteral reports whether the node is a literal value.
func (n Node) IsLiteral() bool { return n.kind == KindLiteral }

// Value returns the IRI string, blank node identifier, or literal text,
// depending on the node kind.
func (n Node) Value() string { return n.value }

// Datatype returns the literal's datatype IRI, or "" for plain literals and
// non-literal nodes.
func (n Node) Datatype() string { return n.datatype }

// Lang returns the literal's language tag, or "".
func (n Node) Lang() string { return n.lang }

// String renders the node for diagnostics. Literals are returned verbatim,
// blank nodes with a "_:" prefix.
func (n Node) String() string {
	if n.kind == KindBlank {
		return "_:" + n.value
	}
	return n.value
}

// Less orders nodes for deterministic iteration: by kind first, then by
// value, then by datatype and language.
func (n Node) Less(o Node) bool {
	if n.kind != o.kind {
		return n.kind < o.kind
	}
	if n.value != o.value {
		return n.value < o.value
	}
	if n.datatype != o.datatype {
		return n.datatype < o.datatype
	}
	return n.lang < o.lang
}

// LocalName strips a namespace prefix from an IRI value. Returns the full
// value unchanged when the node is not inside the namespace.
func (n Node) LocalName(ns string) string {
	if n.kind == KindIRI && strings.HasPrefix(n.value, ns) {
		return n.value[len(ns):]
	}
	return n.value
}
