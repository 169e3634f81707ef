// Package core defines the RDF, RDFS, and XSD IRIs used across the
// analyzer and renderer.
package core

// RDF syntax namespace.
const (
	RDFNamespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

	// Type is the rdf:type predicate.
	Type = RDFNamespace + "type"

	// Property is the rdf:Property class.
	Property = RDFNamespace + "Property"

	// First and Rest link the cells of an RDF collection; Nil terminates it.
	First = RDFNamespace + "first"
	Rest  = RDFNamespace + "rest"
	Nil   = RDFNamespace + "nil"
)

// RDF schema namespace.
const (
	RDFSNamespace = "http://www.w3.org/2000/01/rdf-schema#"

	Class         = RDFSNamespace + "Class"
	Datatype      = RDFSNamespace + "Datatype"
	Label         = RDFSNamespace + "label"
	Comment       = RDFSNamespace + "comment"
	Domain        = RDFSNamespace + "domain"
	Range         = RDFSNamespace + "range"
	SubClassOf    = RDFSNamespace + "subClassOf"
	SubPropertyOf = RDFSNamespace + "subPropertyOf"
	SeeAlso       = RDFSNamespace + "seeAlso"
)

// XSD namespace, referenced by typed literals.
const (
	XSDNamespace = "http://www.w3.org/2001/XMLSchema#"
)
