// Package owl defines the OWL IRIs the analyzer understands: class and
// property kinds, restrictions, unions, and deprecation.
package owl

const (
	Namespace = "http://www.w3.org/2002/07/owl#"

	// Ontology types a subject as the ontology being documented.
	Ontology = Namespace + "Ontology"

	Class = Namespace + "Class"

	// Property kinds. A property may carry several of these types at once.
	ObjectProperty            = Namespace + "ObjectProperty"
	DatatypeProperty          = Namespace + "DatatypeProperty"
	AnnotationProperty        = Namespace + "AnnotationProperty"
	InverseFunctionalProperty = Namespace + "InverseFunctionalProperty"
	SymmetricProperty         = Namespace + "SymmetricProperty"

	// Restriction is the class axiom attached via rdfs:subClassOf.
	Restriction      = Namespace + "Restriction"
	OnProperty       = Namespace + "onProperty"
	WithRestrictions = Namespace + "withRestrictions"

	// UnionOf heads an RDF collection expressing "one of these classes".
	UnionOf = Namespace + "unionOf"

	InverseOf = Namespace + "inverseOf"

	// Deprecated marks a term as deprecated when its literal value is "true".
	Deprecated = Namespace + "deprecated"
)
