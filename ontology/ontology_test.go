package ontology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/specdoc/rdf"
	"github.com/c360studio/specdoc/store"
	"github.com/c360studio/specdoc/vocabulary/core"
	"github.com/c360studio/specdoc/vocabulary/owl"
)

const ns = "http://example.org/shapes#"

func add(st *store.Store, s, p string, o rdf.Node) {
	st.Add(rdf.Triple{Subject: rdf.IRI(s), Predicate: rdf.IRI(p), Object: o})
}

func shapeStore() *store.Store {
	st := store.New()
	st.AddPrefix("shapes", ns)
	add(st, "http://example.org/shapes", core.Type, rdf.IRI(owl.Ontology))
	return st
}

func TestDiscover(t *testing.T) {
	st := shapeStore()
	ont, err := Discover(st)
	require.NoError(t, err)
	assert.Equal(t, "http://example.org/shapes", ont.URI)
	assert.Equal(t, ns, ont.Namespace)
	assert.Equal(t, "shapes", ont.Prefix)
}

func TestDiscover_NoOntology(t *testing.T) {
	st := store.New()
	add(st, ns+"Shape", core.Type, rdf.IRI(core.Class))
	_, err := Discover(st)
	assert.ErrorIs(t, err, ErrNoOntology)
}

func TestDiscover_NoPrefix(t *testing.T) {
	st := store.New()
	add(st, "http://example.org/shapes", core.Type, rdf.IRI(owl.Ontology))
	st.AddPrefix("other", "http://unrelated.org/ns#")
	_, err := Discover(st)
	assert.ErrorIs(t, err, ErrNoPrefix)
}

func TestDiscover_SlashNamespaceKeptVerbatim(t *testing.T) {
	st := store.New()
	st.AddPrefix("eg", "http://example.org/v/")
	add(st, "http://example.org/v/", core.Type, rdf.IRI(owl.Ontology))
	ont, err := Discover(st)
	require.NoError(t, err)
	assert.Equal(t, "http://example.org/v/", ont.Namespace)
}

func TestOntology_Local(t *testing.T) {
	ont := &Ontology{URI: "http://example.org/shapes", Namespace: ns, Prefix: "shapes"}
	assert.True(t, ont.Local(rdf.IRI(ns+"Shape")))
	assert.False(t, ont.Local(rdf.IRI("http://other.org/Shape")))
	assert.False(t, ont.Local(rdf.Blank("b0")))
	assert.Equal(t, "Shape", ont.LocalName(rdf.IRI(ns+"Shape")))
}

func TestClassify_Partition(t *testing.T) {
	st := shapeStore()
	add(st, ns+"Shape", core.Type, rdf.IRI(core.Class))
	add(st, ns+"Polygon", core.Type, rdf.IRI(owl.Class))
	add(st, ns+"area", core.Type, rdf.IRI(core.Property))
	add(st, ns+"sides", core.Type, rdf.IRI(owl.DatatypeProperty))
	add(st, ns+"unitSquare", core.Type, rdf.IRI(ns+"Shape"))
	// External class definitions never classify.
	add(st, "http://other.org/Alien", core.Type, rdf.IRI(core.Class))

	ont, err := Discover(st)
	require.NoError(t, err)
	terms := Classify(st, ont)

	assert.Equal(t, []string{ns + "Polygon", ns + "Shape"}, uris(terms.Classes))
	assert.Equal(t, []string{ns + "area", ns + "sides"}, uris(terms.Properties))
	assert.Equal(t, []string{ns + "unitSquare"}, uris(terms.Instances))

	assert.True(t, terms.Has(ns+"Shape"))
	assert.True(t, terms.Has(ns+"unitSquare"))
	assert.False(t, terms.Has("http://other.org/Alien"))
}

func TestClassify_ClassWinsOverProperty(t *testing.T) {
	// A subject typed as both class and property lands in exactly one list.
	st := shapeStore()
	add(st, ns+"odd", core.Type, rdf.IRI(core.Class))
	add(st, ns+"odd", core.Type, rdf.IRI(core.Property))

	ont, err := Discover(st)
	require.NoError(t, err)
	terms := Classify(st, ont)

	assert.Equal(t, []string{ns + "odd"}, uris(terms.Classes))
	assert.Empty(t, terms.Properties)
}

func TestClassify_ExternalInstanceOfLocalClassKept(t *testing.T) {
	st := shapeStore()
	add(st, ns+"Shape", core.Type, rdf.IRI(core.Class))
	add(st, "http://other.org/blob", core.Type, rdf.IRI(ns+"Shape"))

	ont, err := Discover(st)
	require.NoError(t, err)
	terms := Classify(st, ont)

	assert.Equal(t, []string{"http://other.org/blob"}, uris(terms.Instances))
}

func TestClassify_InstancesSortedByShortName(t *testing.T) {
	st := shapeStore()
	add(st, ns+"Shape", core.Type, rdf.IRI(core.Class))
	add(st, ns+"zebra", core.Type, rdf.IRI(ns+"Shape"))
	add(st, ns+"Apple", core.Type, rdf.IRI(ns+"Shape"))
	add(st, ns+"mango", core.Type, rdf.IRI(ns+"Shape"))

	ont, err := Discover(st)
	require.NoError(t, err)
	terms := Classify(st, ont)

	assert.Equal(t, []string{ns + "Apple", ns + "mango", ns + "zebra"}, uris(terms.Instances))
}

func TestShortName(t *testing.T) {
	assert.Equal(t, "Shape", ShortName("http://example.org/ns#Shape"))
	assert.Equal(t, "thing", ShortName("http://example.org/ns/thing"))
	assert.Equal(t, "bare", ShortName("bare"))
}

func uris(nodes []rdf.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Value())
	}
	return out
}
