package ontology

import (
	"sort"
	"strings"

	"github.com/c360studio/specdoc/rdf"
	"github.com/c360studio/specdoc/store"
	"github.com/c360studio/specdoc/vocabulary/core"
	"github.com/c360studio/specdoc/vocabulary/owl"
)

// classTypes are the rdf:type objects that make a namespace-local subject a
// class.
var classTypes = []string{core.Class, owl.Class, core.Datatype}

// propertyTypes are the rdf:type objects that make a namespace-local subject
// a property.
var propertyTypes = []string{core.Property, owl.ObjectProperty, owl.DatatypeProperty, owl.AnnotationProperty}

// Terms is the classification of every documented term. Each term appears
// in exactly one of the three lists. Classes and properties are sorted by
// URI; instances by lowercase short name, matching the index layout.
type Terms struct {
	Classes    []rdf.Node
	Properties []rdf.Node
	Instances  []rdf.Node

	members map[string]bool
}

// Has reports whether the URI is a classified class, property, or instance.
func (t *Terms) Has(uri string) bool {
	return t.members[uri]
}

// Classify partitions subject URIs into classes, properties, and instances.
// Instances are subjects typed with a classified class, plus any remaining
// namespace-local typed subject; the ontology's own URI is excluded.
func Classify(st *store.Store, ont *Ontology) *Terms {
	terms := &Terms{members: make(map[string]bool)}
	typePred := rdf.IRI(core.Type)

	seen := make(map[string]bool)
	for _, typeIRI := range classTypes {
		obj := rdf.IRI(typeIRI)
		for _, t := range st.Match(nil, &typePred, &obj) {
			s := t.Subject
			if !s.IsIRI() || seen[s.Value()] || !ont.Local(s) {
				continue
			}
			seen[s.Value()] = true
			terms.Classes = append(terms.Classes, s)
		}
	}

	for _, typeIRI := range propertyTypes {
		obj := rdf.IRI(typeIRI)
		for _, t := range st.Match(nil, &typePred, &obj) {
			s := t.Subject
			if !s.IsIRI() || seen[s.Value()] || !ont.Local(s) {
				continue
			}
			seen[s.Value()] = true
			terms.Properties = append(terms.Properties, s)
		}
	}

	// Instances of classes defined here. External instance subjects are
	// kept: the renderer warns about and skips them, rather than silently
	// losing them at classification time.
	for _, class := range terms.Classes {
		for _, t := range st.Match(nil, &typePred, &class) {
			s := t.Subject
			if !s.IsIRI() || seen[s.Value()] || s.Value() == ont.URI {
				continue
			}
			seen[s.Value()] = true
			terms.Instances = append(terms.Instances, s)
		}
	}

	// Any remaining namespace-local typed subject is an instance too.
	for _, t := range st.Match(nil, &typePred, nil) {
		s := t.Subject
		if !s.IsIRI() || seen[s.Value()] || !ont.Local(s) || s.Value() == ont.URI {
			continue
		}
		seen[s.Value()] = true
		terms.Instances = append(terms.Instances, s)
	}

	sort.Slice(terms.Classes, func(i, j int) bool {
		return terms.Classes[i].Value() < terms.Classes[j].Value()
	})
	sort.Slice(terms.Properties, func(i, j int) bool {
		return terms.Properties[i].Value() < terms.Properties[j].Value()
	})
	sort.Slice(terms.Instances, func(i, j int) bool {
		a := strings.ToLower(shortName(terms.Instances[i].Value()))
		b := strings.ToLower(shortName(terms.Instances[j].Value()))
		if a != b {
			return a < b
		}
		return terms.Instances[i].Value() < terms.Instances[j].Value()
	})

	for _, list := range [][]rdf.Node{terms.Classes, terms.Properties, terms.Instances} {
		for _, n := range list {
			terms.members[n.Value()] = true
		}
	}
	return terms
}

// shortName returns the fragment or last path segment of a URI.
func shortName(uri string) string {
	if i := strings.LastIndex(uri, "#"); i >= 0 {
		return uri[i+1:]
	}
	if i := strings.LastIndex(uri, "/"); i >= 0 {
		return uri[i+1:]
	}
	return uri
}

// ShortName returns the fragment or last path segment of a URI. Exported
// for the index and page builders.
func ShortName(uri string) string { return shortName(uri) }
