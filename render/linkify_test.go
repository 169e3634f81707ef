package render

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/c360studio/specdoc/linkmap"
	"github.com/c360studio/specdoc/ontology"
	"github.com/c360studio/specdoc/rdf"
	"github.com/c360studio/specdoc/store"
	"github.com/c360studio/specdoc/vocabulary/core"
	"github.com/c360studio/specdoc/vocabulary/owl"
)

const ns = "http://example.org/shapes#"

func quietWarnings() *ontology.Warnings {
	return ontology.NewWarnings(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func add(st *store.Store, s, p string, o rdf.Node) {
	st.Add(rdf.Triple{Subject: rdf.IRI(s), Predicate: rdf.IRI(p), Object: o})
}

// shapesGraph builds a small ontology with one class, one property, and one
// instance, enough to exercise classification-backed linking.
func shapesGraph() (*store.Store, *ontology.Ontology, *ontology.Terms) {
	st := store.New()
	st.AddPrefix("shapes", ns)
	st.AddPrefix("rdfs", "http://www.w3.org/2000/01/rdf-schema#")
	add(st, "http://example.org/shapes", core.Type, rdf.IRI(owl.Ontology))
	add(st, ns+"Shape", core.Type, rdf.IRI(core.Class))
	add(st, ns+"area", core.Type, rdf.IRI(core.Property))
	add(st, ns+"unitSquare", core.Type, rdf.IRI(ns+"Shape"))

	ont, err := ontology.Discover(st)
	if err != nil {
		panic(err)
	}
	return st, ont, ontology.Classify(st, ont)
}

func newTestLinker(codeMap linkmap.Map, warns *ontology.Warnings) *Linker {
	st, ont, terms := shapesGraph()
	return NewLinker(ont, terms, st.Prefixes(), codeMap, warns)
}

func TestLinker_LinkCode_ExactTokensOnly(t *testing.T) {
	cm := linkmap.Map{"LV2_Descriptor": `<span><a href="d.html">LV2_Descriptor</a></span>`}
	l := newTestLinker(cm, quietWarnings())

	out := l.LinkCode("Use LV2_Descriptor here.")
	assert.Equal(t, `Use <span><a href="d.html">LV2_Descriptor</a></span> here.`, out)

	// No match inside a longer identifier.
	out = l.LinkCode("Use LV2_Descriptor_Extra here.")
	assert.Equal(t, "Use LV2_Descriptor_Extra here.", out)
}

func TestLinker_LinkCode_EmptyMapIsIdentity(t *testing.T) {
	l := newTestLinker(linkmap.Map{}, quietWarnings())
	assert.Equal(t, "anything at all", l.LinkCode("anything at all"))
}

func TestLinker_LinkVocab_OwnPrefix(t *testing.T) {
	l := newTestLinker(nil, quietWarnings())
	out := l.LinkVocab("See shapes:Shape for details.")
	assert.Equal(t, `See <a href="#Shape">Shape</a> for details.`, out)
}

func TestLinker_LinkVocab_OwnPrefixUndefinedWarns(t *testing.T) {
	warns := quietWarnings()
	l := newTestLinker(nil, warns)
	out := l.LinkVocab("See shapes:Missing for details.")
	// Still linked, but recorded.
	assert.Contains(t, out, `<a href="#Missing">Missing</a>`)
	assert.Equal(t, 1, warns.Len())
}

func TestLinker_LinkVocab_KnownExternalPrefix(t *testing.T) {
	l := newTestLinker(nil, quietWarnings())
	out := l.LinkVocab("Declared with rdfs:domain here.")
	assert.Equal(t,
		`Declared with <a href="http://www.w3.org/2000/01/rdf-schema#domain">rdfs:domain</a> here.`,
		out)
}

func TestLinker_LinkVocab_UnknownPrefixUntouched(t *testing.T) {
	warns := quietWarnings()
	l := newTestLinker(nil, warns)
	out := l.LinkVocab("A nobody:token stays put.")
	assert.Equal(t, "A nobody:token stays put.", out)
	assert.Zero(t, warns.Len())
}

func TestLinker_LinkLocal(t *testing.T) {
	l := newTestLinker(nil, quietWarnings())
	out := l.LinkLocal("See #Shape and #area.")
	assert.Equal(t, `See <a href="#Shape">Shape</a> and <a href="#area">area</a>.`, out)
}

func TestLinker_LinkLocal_MidWordHashUntouched(t *testing.T) {
	l := newTestLinker(nil, quietWarnings())
	out := l.LinkLocal("The fragment ns#Shape is not a reference.")
	assert.Equal(t, "The fragment ns#Shape is not a reference.", out)
}

func TestLinker_LinkLocal_UnresolvedWarnsOnceAndStays(t *testing.T) {
	warns := quietWarnings()
	l := newTestLinker(nil, warns)
	out := l.LinkLocal("See #Bar for details.")
	assert.Equal(t, "See #Bar for details.", out)
	assert.Equal(t, 1, warns.Len())
}

func TestLinker_Apply_Idempotent(t *testing.T) {
	cm := linkmap.Map{"area_fn": `<span><a href="a.html">area_fn</a></span>`}
	l := newTestLinker(cm, quietWarnings())

	in := "Call area_fn on a shapes:Shape, see #unitSquare."
	once := l.Apply(in)
	twice := l.Apply(once)
	assert.Equal(t, once, twice)
}

func TestLinker_Apply_SkipsExistingAnchors(t *testing.T) {
	l := newTestLinker(nil, quietWarnings())
	in := `Already linked: <a href="#Shape">shapes:Shape</a> stays.`
	assert.Equal(t, in, l.Apply(in))
}

func TestLinker_Apply_CopiesMarkupVerbatim(t *testing.T) {
	warns := quietWarnings()
	l := newTestLinker(nil, warns)
	in := `<code class="shapes:Shape">shapes:Shape</code>`
	out := l.Apply(in)
	// The attribute value is untouched; the element text is linked.
	assert.Contains(t, out, `<code class="shapes:Shape">`)
	assert.Contains(t, out, `<a href="#Shape">Shape</a>`)
}
