package render

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/c360studio/specdoc/markup"
	"github.com/c360studio/specdoc/ontology"
	"github.com/c360studio/specdoc/rdf"
	"github.com/c360studio/specdoc/store"
	"github.com/c360studio/specdoc/vocabulary/core"
	"github.com/c360studio/specdoc/vocabulary/owl"
	"github.com/c360studio/specdoc/vocabulary/spec"
)

// Category is the classification bucket a term renders under.
type Category string

const (
	CategoryClass    Category = "Class"
	CategoryProperty Category = "Property"
	CategoryInstance Category = "Instance"
)

// TermRenderer produces the per-term documentation block for every
// classified term. It reads the store and the relation indices built by the
// analyzer; it never mutates either.
type TermRenderer struct {
	st      *store.Store
	ont     *ontology.Ontology
	terms   *ontology.Terms
	rels    *ontology.Relations
	linker  *Linker
	mk      *markup.Renderer
	warns   *ontology.Warnings
	nsNames map[string]string
	logger  *slog.Logger
}

// NewTermRenderer wires a renderer over the analysis results. The namespace
// table combines well-known prefixes with the bindings discovered in the
// source document; discovered bindings win.
func NewTermRenderer(st *store.Store, ont *ontology.Ontology, terms *ontology.Terms, rels *ontology.Relations, linker *Linker, mk *markup.Renderer, warns *ontology.Warnings, logger *slog.Logger) *TermRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	nsNames := make(map[string]string, len(wellKnownNamespaces))
	for ns, prefix := range wellKnownNamespaces {
		nsNames[ns] = prefix
	}
	for prefix, ns := range st.Prefixes() {
		if !strings.HasPrefix(ns, "file:") {
			nsNames[ns] = prefix
		}
	}
	nsNames[ont.Namespace] = ont.Prefix

	return &TermRenderer{
		st:      st,
		ont:     ont,
		terms:   terms,
		rels:    rels,
		linker:  linker,
		mk:      mk,
		warns:   warns,
		nsNames: nsNames,
		logger:  logger,
	}
}

// Render produces the concatenated documentation blocks for a term list.
// Terms outside the ontology namespace are skipped with a warning.
func (r *TermRenderer) Render(category Category, list []rdf.Node) string {
	var b strings.Builder
	for _, term := range list {
		if !r.ont.Local(term) {
			r.warns.Warnf("skipping external term <%s>", term.Value())
			continue
		}
		b.WriteString(r.RenderTerm(category, term))
	}
	return b.String()
}

// RenderTerm produces one term's documentation block: anchor heading, info
// table, deprecation marker, documentation, and any restriction blocks.
func (r *TermRenderer) RenderTerm(category Category, term rdf.Node) string {
	name := r.ont.LocalName(term)
	anchor := strings.ReplaceAll(name, "/", "_")

	var b strings.Builder
	fmt.Fprintf(&b, `<div class="specterm" id="%s" about="%s">`, name, term.Value())
	fmt.Fprintf(&b, `<h4><a href="#%s">%s</a></h4>`, anchor, name)
	b.WriteString(`<div class="spectermbody">`)

	var info, extra string
	switch category {
	case CategoryProperty:
		info = r.propertyInfo(term)
	case CategoryClass:
		info = r.classInfo(term)
		extra = r.restrictionBlocks(term)
	case CategoryInstance:
		info = r.instanceInfo(term)
	}
	info += r.extraInfo(term)

	if info != "" {
		fmt.Fprintf(&b, "\n<table class=\"terminfo\">%s</table>\n", info)
	}

	b.WriteString(`<div class="description">`)
	if r.isDeprecated(term) {
		b.WriteString(`<div class="warning">Deprecated</div>`)
	}
	if doc := r.fullDocumentation(term); doc != "" {
		fmt.Fprintf(&b, `<div class="comment" property="rdfs:comment">%s</div>`, doc)
	}
	b.WriteString(extra)
	b.WriteString("</div>")

	b.WriteString("</div>")
	b.WriteString("\n</div>\n\n")
	return b.String()
}

func (r *TermRenderer) labelRow(term rdf.Node) string {
	label := r.st.Literal(term, core.Label)
	if label == "" {
		return ""
	}
	return fmt.Sprintf("<tr><th>Label</th><td>%s</td></tr>", markup.Escape(label))
}

// propertyInfo renders the relation rows for a property: sub-property-of,
// domain, range, and the OWL characteristics.
func (r *TermRenderer) propertyInfo(term rdf.Node) string {
	doc := r.labelRow(term)

	subProps := ""
	first := true
	for _, o := range r.st.Objects(term, core.SubPropertyOf) {
		if !o.IsIRI() {
			continue
		}
		subProps += headedRow(r.termLinkRel(o.Value(), term, rdf.IRI(core.SubPropertyOf)), first)
		first = false
	}
	if subProps != "" {
		doc += "<tr><th>Sub-property of</th>" + subProps
	}

	if rows := r.relationRows(term, core.Domain); rows != "" {
		doc += "<tr><th>Domain</th>" + rows
	}
	if rows := r.relationRows(term, core.Range); rows != "" {
		doc += "<tr><th>Range</th>" + rows
	}

	doc += r.owlInfo(term)
	return doc
}

// relationRows renders one domain or range list, unwinding owl:unionOf
// collections into one row per member class.
func (r *TermRenderer) relationRows(term rdf.Node, predicate string) string {
	unionPred := rdf.IRI(owl.UnionOf)
	rows := ""
	first := true
	for _, obj := range r.st.Objects(term, predicate) {
		o := obj
		if union, ok := r.st.One(&o, &unionPred, nil); ok {
			members, complete := ontology.Collection(r.st, union.Object)
			if !complete {
				r.warns.WarnOncef(union.Object.String(), "malformed union collection on <%s>", term.Value())
			}
			for _, m := range members {
				if !m.IsIRI() {
					continue
				}
				rows += headedRow(r.termLinkRel(m.Value(), term, rdf.IRI(predicate)), first)
				first = false
			}
			continue
		}
		if o.IsBlank() {
			continue
		}
		rows += headedRow(r.termLinkRel(o.Value(), term, rdf.IRI(predicate)), first)
		first = false
	}
	return rows
}

// owlInfo renders inverse-of rows and the OWL property characteristic
// flags. Each flag is emitted only when the matching rdf:type triple is
// present.
func (r *TermRenderer) owlInfo(term rdf.Node) string {
	doc := ""
	inverses := ""
	first := true
	for _, o := range r.st.Objects(term, owl.InverseOf) {
		if !o.IsIRI() {
			continue
		}
		inverses += headedRow(r.termLink(o.Value()), first)
		first = false
	}
	if inverses != "" {
		doc += "<tr><th>Inverse:</th>\n" + inverses
	}

	typePred := rdf.IRI(core.Type)
	flags := []struct {
		typeIRI string
		name    string
	}{
		{owl.DatatypeProperty, "Datatype Property"},
		{owl.ObjectProperty, "Object Property"},
		{owl.AnnotationProperty, "Annotation Property"},
		{owl.InverseFunctionalProperty, "Inverse Functional Property"},
		{owl.SymmetricProperty, "Symmetric Property"},
	}
	for _, f := range flags {
		obj := rdf.IRI(f.typeIRI)
		if _, ok := r.st.One(&term, &typePred, &obj); ok {
			doc += fmt.Sprintf("<tr><th>Type</th><td>%s</td></tr>\n", f.name)
		}
	}
	return doc
}

// classInfo renders the relation rows for a class: superclasses,
// subclasses, and the reverse domain/range lists from the relation index.
func (r *TermRenderer) classInfo(term rdf.Node) string {
	doc := r.labelRow(term)

	supers := ""
	first := true
	for _, o := range r.st.Objects(term, core.SubClassOf) {
		if !o.IsIRI() {
			continue
		}
		supers += headedRow(r.termLinkRel(o.Value(), term, rdf.IRI(core.SubClassOf)), first)
		first = false
	}
	if supers != "" {
		doc += "\n<tr><th>Subclass of</th>" + supers
	}

	subs := ""
	first = true
	for _, s := range r.st.Subjects(core.SubClassOf, term) {
		if !s.IsIRI() {
			continue
		}
		subs += headedRow(r.termLink(s.Value()), first)
		first = false
	}
	if subs != "" {
		doc += "\n<tr><th>Superclass of</th>" + subs
	}

	doc += r.reverseRelationRows("In domain of", r.rels.DomainOf(term.Value()))
	doc += r.reverseRelationRows("In range of", r.rels.RangeOf(term.Value()))
	return doc
}

func (r *TermRenderer) reverseRelationRows(header string, properties []string) string {
	if len(properties) == 0 {
		return ""
	}
	rows := ""
	first := true
	for _, p := range properties {
		rows += headedRow(r.termLink(p), first)
		first = false
	}
	return fmt.Sprintf("<tr><th>%s</th>%s", header, rows)
}

// instanceInfo renders the type list for an instance.
func (r *TermRenderer) instanceInfo(term rdf.Node) string {
	doc := r.labelRow(term)

	types := ""
	first := true
	for _, o := range r.st.Objects(term, core.Type) {
		if !o.IsIRI() {
			continue
		}
		types += headedRow(r.termLinkRel(o.Value(), term, rdf.IRI(core.Type)), first)
		first = false
	}
	if types != "" {
		doc += "<tr><th>Type</th>" + types
	}
	return doc
}

// isDeprecated reports an owl:deprecated triple with a "true" literal.
func (r *TermRenderer) isDeprecated(term rdf.Node) bool {
	return strings.Contains(r.st.Literal(term, owl.Deprecated), "true")
}

// fullDocumentation renders the rdfs:comment summary followed by the
// extended documentation, both cross-linked.
func (r *TermRenderer) fullDocumentation(term rdf.Node) string {
	return r.comment(term) + r.DetailedDocumentation(term)
}

func (r *TermRenderer) comment(term rdf.Node) string {
	pred := rdf.IRI(core.Comment)
	t, ok := r.st.One(&term, &pred, nil)
	if !ok || !t.Object.IsLiteral() {
		return ""
	}
	return r.formatDoc(term, t.Object)
}

// DetailedDocumentation renders the extended documentation attached to a
// subject, if any. Markdown-typed literals go through the Markdown path;
// anything else is treated as raw HTML and checked for well-formedness.
func (r *TermRenderer) DetailedDocumentation(subject rdf.Node) string {
	pred := rdf.IRI(spec.Documentation)
	t, ok := r.st.One(&subject, &pred, nil)
	if !ok || !t.Object.IsLiteral() {
		return ""
	}
	if t.Object.Datatype() == spec.Markdown {
		return r.formatDoc(subject, t.Object)
	}
	html, err := r.mk.RawHTML(t.Object.Value())
	if err != nil {
		r.warns.Warnf("invalid documentation for <%s>: %v", subject.Value(), err)
	}
	return r.linker.Prettify(subject.Value(), html, r.mk)
}

// formatDoc renders one documentation literal. Markdown-typed literals are
// converted and prettified; plain literals are escaped, cross-linked, and
// wrapped in a paragraph.
func (r *TermRenderer) formatDoc(subject rdf.Node, literal rdf.Node) string {
	if literal.Datatype() == spec.Markdown {
		html, err := r.mk.Markdown(literal.Value())
		if err != nil {
			r.warns.Warnf("markdown rendering failed for <%s>: %v", subject.Value(), err)
			html = "<p>" + markup.Escape(literal.Value()) + "</p>"
		}
		return r.linker.Prettify(subject.Value(), html, r.mk)
	}
	text := markup.Escape(literal.Value())
	text = r.linker.LinkCode(text)
	text = r.linker.LinkVocab(text)
	return "<p>" + text + "</p>"
}
