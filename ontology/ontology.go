// Package ontology analyzes a loaded triple graph: it discovers the
// ontology being documented, partitions its terms into classes, properties,
// and instances, and builds the reverse domain/range indices the renderer
// consumes.
package ontology

import (
	"errors"
	"strings"

	"github.com/c360studio/specdoc/rdf"
	"github.com/c360studio/specdoc/store"
	"github.com/c360studio/specdoc/vocabulary/core"
	"github.com/c360studio/specdoc/vocabulary/owl"
	"github.com/c360studio/specdoc/vocabulary/spec"
)

// Fatal conditions. Either aborts the whole run with no output written.
var (
	// ErrNoOntology means no subject in the graph is typed as a
	// specification or ontology.
	ErrNoOntology = errors.New("no ontology-defining subject found in graph")

	// ErrNoPrefix means no parsed prefix binding resolves to the ontology's
	// own namespace, so cross-linking cannot function.
	ErrNoPrefix = errors.New("no namespace prefix bound to the ontology namespace")
)

// Ontology identifies the vocabulary being documented.
type Ontology struct {
	// URI is the ontology's own URI, the subject of its type triple.
	URI string

	// Namespace is the term namespace: the URI with a trailing "#" appended
	// unless it already ends in "#" or "/".
	Namespace string

	// Prefix is the Turtle prefix bound to the namespace.
	Prefix string
}

// Discover locates the ontology subject and resolves its namespace prefix.
// Returns ErrNoOntology or ErrNoPrefix when the graph cannot be documented.
func Discover(st *store.Store) (*Ontology, error) {
	subject, ok := ontologySubject(st)
	if !ok {
		return nil, ErrNoOntology
	}

	uri := subject.Value()
	ns := uri
	if !strings.HasSuffix(ns, "#") && !strings.HasSuffix(ns, "/") {
		ns += "#"
	}

	prefix := ""
	for _, p := range st.SortedPrefixes() {
		bound := st.Prefixes()[p]
		if bound == ns || bound == uri || bound == uri+"#" || bound == uri+"/" {
			prefix = p
			break
		}
	}
	if prefix == "" {
		return nil, ErrNoPrefix
	}

	return &Ontology{URI: uri, Namespace: ns, Prefix: prefix}, nil
}

func ontologySubject(st *store.Store) (rdf.Node, bool) {
	typePred := rdf.IRI(core.Type)
	for _, typeIRI := range []string{spec.Specification, owl.Ontology} {
		obj := rdf.IRI(typeIRI)
		if t, ok := st.One(nil, &typePred, &obj); ok && t.Subject.IsIRI() {
			return t.Subject, true
		}
	}
	return rdf.Node{}, false
}

// Local reports whether the node is an IRI inside the ontology namespace.
func (o *Ontology) Local(n rdf.Node) bool {
	return n.IsIRI() && strings.HasPrefix(n.Value(), o.Namespace)
}

// LocalName strips the ontology namespace from an IRI value.
func (o *Ontology) LocalName(n rdf.Node) string {
	return strings.TrimPrefix(n.Value(), o.Namespace)
}
