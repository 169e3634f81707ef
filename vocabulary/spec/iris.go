// Package spec defines the specification-bundle vocabulary: the terms an
// ontology bundle uses to describe itself (its type, extended documentation,
// version counters, and owning project).
package spec

const (
	Namespace = "http://lv2plug.in/ns/lv2core#"

	// Specification types a subject as a documented specification. An
	// owl:Ontology subject is accepted as a fallback.
	Specification = Namespace + "Specification"

	// Documentation carries extended prose beyond the rdfs:comment summary.
	Documentation = Namespace + "documentation"

	// Markdown is the literal datatype marking documentation written in
	// Markdown rather than raw HTML.
	Markdown = Namespace + "Markdown"

	// MinorVersion and MicroVersion carry the two release counters. A spec
	// with minor version 0 or an odd micro version is experimental.
	MinorVersion = Namespace + "minorVersion"
	MicroVersion = Namespace + "microVersion"

	// Project links a specification to the project whose developers and
	// maintainers are credited in the page header.
	Project = Namespace + "project"
)
