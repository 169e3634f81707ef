package ontology

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/specdoc/rdf"
	"github.com/c360studio/specdoc/store"
	"github.com/c360studio/specdoc/vocabulary/core"
	"github.com/c360studio/specdoc/vocabulary/owl"
)

func quietWarnings() *Warnings {
	return NewWarnings(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func addBlank(st *store.Store, s rdf.Node, p string, o rdf.Node) {
	st.Add(rdf.Triple{Subject: s, Predicate: rdf.IRI(p), Object: o})
}

func TestBuildRelations_Direct(t *testing.T) {
	st := store.New()
	add(st, ns+"area", core.Domain, rdf.IRI(ns+"Shape"))
	add(st, ns+"area", core.Range, rdf.IRI(core.XSDNamespace+"decimal"))
	add(st, ns+"sides", core.Domain, rdf.IRI(ns+"Shape"))

	warns := quietWarnings()
	rels := BuildRelations(st, warns)

	assert.Equal(t, []string{ns + "area", ns + "sides"}, rels.DomainOf(ns+"Shape"))
	assert.Equal(t, []string{ns + "area"}, rels.RangeOf(core.XSDNamespace+"decimal"))
	assert.Empty(t, rels.DomainOf(ns+"Unknown"))
	assert.Zero(t, warns.Len())
}

func TestBuildRelations_UnionRegistersEveryMember(t *testing.T) {
	st := store.New()
	// area rdfs:domain [ owl:unionOf (Circle Square) ]
	union := rdf.Blank("u")
	l1 := rdf.Blank("l1")
	l2 := rdf.Blank("l2")
	addBlank(st, rdf.IRI(ns+"area"), core.Domain, union)
	addBlank(st, union, owl.UnionOf, l1)
	addBlank(st, l1, core.First, rdf.IRI(ns+"Circle"))
	addBlank(st, l1, core.Rest, l2)
	addBlank(st, l2, core.First, rdf.IRI(ns+"Square"))
	addBlank(st, l2, core.Rest, rdf.IRI(core.Nil))

	warns := quietWarnings()
	rels := BuildRelations(st, warns)

	assert.Equal(t, []string{ns + "area"}, rels.DomainOf(ns+"Circle"))
	assert.Equal(t, []string{ns + "area"}, rels.DomainOf(ns+"Square"))
	assert.Zero(t, warns.Len())
}

func TestBuildRelations_MalformedUnionWarnsAndKeepsPartial(t *testing.T) {
	st := store.New()
	// The second link is missing rdf:rest.
	union := rdf.Blank("u")
	l1 := rdf.Blank("l1")
	l2 := rdf.Blank("l2")
	addBlank(st, rdf.IRI(ns+"area"), core.Domain, union)
	addBlank(st, union, owl.UnionOf, l1)
	addBlank(st, l1, core.First, rdf.IRI(ns+"Circle"))
	addBlank(st, l1, core.Rest, l2)
	addBlank(st, l2, core.First, rdf.IRI(ns+"Square"))

	warns := quietWarnings()
	rels := BuildRelations(st, warns)

	assert.Equal(t, 1, warns.Len())
	assert.Equal(t, []string{ns + "area"}, rels.DomainOf(ns+"Circle"))
}

func TestBuildRelations_NonUnionBlankIgnored(t *testing.T) {
	st := store.New()
	restriction := rdf.Blank("r")
	addBlank(st, rdf.IRI(ns+"area"), core.Domain, restriction)
	addBlank(st, restriction, owl.OnProperty, rdf.IRI(ns+"sides"))

	warns := quietWarnings()
	rels := BuildRelations(st, warns)

	assert.Empty(t, rels.DomainOf(ns+"Shape"))
	assert.Zero(t, warns.Len())
}

func TestBuildRelations_Idempotent(t *testing.T) {
	st := store.New()
	add(st, ns+"area", core.Domain, rdf.IRI(ns+"Shape"))
	add(st, ns+"area", core.Domain, rdf.IRI(ns+"Shape"))

	rels := BuildRelations(st, quietWarnings())
	assert.Equal(t, []string{ns + "area"}, rels.DomainOf(ns+"Shape"))
}

func TestCollection_WellFormed(t *testing.T) {
	st := store.New()
	l1 := rdf.Blank("l1")
	l2 := rdf.Blank("l2")
	addBlank(st, l1, core.First, rdf.IRI(ns+"a"))
	addBlank(st, l1, core.Rest, l2)
	addBlank(st, l2, core.First, rdf.IRI(ns+"b"))
	addBlank(st, l2, core.Rest, rdf.IRI(core.Nil))

	got, ok := Collection(st, l1)
	require.True(t, ok)
	assert.Equal(t, []string{ns + "a", ns + "b"}, uris(got))
}

func TestCollection_EmptyList(t *testing.T) {
	st := store.New()
	got, ok := Collection(st, rdf.IRI(core.Nil))
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestCollection_MissingLink(t *testing.T) {
	st := store.New()
	l1 := rdf.Blank("l1")
	addBlank(st, l1, core.First, rdf.IRI(ns+"a"))

	got, ok := Collection(st, l1)
	assert.False(t, ok)
	assert.Empty(t, got)
}

func TestCollection_CycleTerminates(t *testing.T) {
	st := store.New()
	l1 := rdf.Blank("l1")
	l2 := rdf.Blank("l2")
	addBlank(st, l1, core.First, rdf.IRI(ns+"a"))
	addBlank(st, l1, core.Rest, l2)
	addBlank(st, l2, core.First, rdf.IRI(ns+"b"))
	addBlank(st, l2, core.Rest, l1)

	got, ok := Collection(st, l1)
	assert.False(t, ok)
	assert.Equal(t, []string{ns + "a", ns + "b"}, uris(got))
}

func TestWarnings_Collects(t *testing.T) {
	w := quietWarnings()
	w.Warnf("first %d", 1)
	w.Warnf("second")
	assert.Equal(t, []string{"first 1", "second"}, w.All())
	assert.Equal(t, 2, w.Len())
}

func TestWarnings_WarnOncefDeduplicatesByKey(t *testing.T) {
	w := quietWarnings()
	w.WarnOncef("k1", "first")
	w.WarnOncef("k1", "repeat")
	w.WarnOncef("k2", "second")
	assert.Equal(t, []string{"first", "second"}, w.All())
}
