package render

import (
	"fmt"

	"github.com/c360studio/specdoc/markup"
	"github.com/c360studio/specdoc/rdf"
	"github.com/c360studio/specdoc/vocabulary/core"
	"github.com/c360studio/specdoc/vocabulary/owl"
	"github.com/c360studio/specdoc/vocabulary/spec"
)

// specialPredicates are reserved for structural use and excluded from
// blank-node tables, restriction bodies, and the extra-properties table.
var specialPredicates = map[string]bool{
	core.Type:            true,
	core.Range:           true,
	core.Domain:          true,
	core.Label:           true,
	core.Comment:         true,
	core.SubClassOf:      true,
	core.SubPropertyOf:   true,
	spec.Documentation:   true,
	owl.WithRestrictions: true,
}

// wellKnownNamespaces maps namespace URIs to conventional prefixes, used to
// abbreviate external references even when the source document declares no
// binding for them.
var wellKnownNamespaces = map[string]string{
	core.RDFNamespace:                            "rdf",
	core.RDFSNamespace:                           "rdfs",
	owl.Namespace:                                "owl",
	core.XSDNamespace:                            "xsd",
	"http://rdfs.org/sioc/ns#":                   "sioc",
	"http://xmlns.com/foaf/0.1/":                 "foaf",
	"http://purl.org/dc/elements/1.1/":           "dc",
	"http://purl.org/dc/terms/":                  "dct",
	"http://purl.org/rss/1.0/modules/content/":   "content",
	"http://www.w3.org/2003/01/geo/wgs84_pos#":   "geo",
	"http://www.w3.org/2004/02/skos/core#":       "skos",
	"http://usefulinc.com/ns/doap#":              "doap",
	"http://ontologi.es/doap-changeset#":         "dcs",
	spec.Namespace:                               "lv2",
}

// niceName abbreviates a URI: namespace-local names lose the namespace,
// known external namespaces collapse to prefix:name, and anything else
// comes back whole with a warning.
func (r *TermRenderer) niceName(uri string) string {
	if name := r.localName(uri); name != "" {
		return name
	}
	if uri == core.SeeAlso {
		return "See also"
	}
	for i := len(uri) - 1; i >= 0; i-- {
		if uri[i] == '#' || uri[i] == '/' {
			ns, local := uri[:i+1], uri[i+1:]
			if prefix, ok := r.nsNames[ns]; ok {
				return prefix + ":" + local
			}
			r.warns.Warnf("prefix for <%s> not in namespace table", ns)
			return uri
		}
	}
	return uri
}

func (r *TermRenderer) localName(uri string) string {
	if len(uri) > len(r.ont.Namespace) && uri[:len(r.ont.Namespace)] == r.ont.Namespace {
		return uri[len(r.ont.Namespace):]
	}
	return ""
}

// termLink renders a URI as a hyperlink: in-page anchor for local terms,
// absolute link otherwise.
func (r *TermRenderer) termLink(uri string) string {
	if name := r.localName(uri); name != "" {
		return fmt.Sprintf(`<a href="#%s">%s</a>`, name, r.niceName(uri))
	}
	return fmt.Sprintf(`<a href="%s">%s</a>`, uri, r.niceName(uri))
}

// termLinkRel is termLink with RDFa about/rel/resource attributes tying the
// link to the statement it renders.
func (r *TermRenderer) termLinkRel(uri string, subject rdf.Node, predicate rdf.Node) string {
	extra := fmt.Sprintf(`about="%s" rel="%s" resource="%s"`,
		subject.Value(), r.niceName(predicate.Value()), uri)
	if name := r.localName(uri); name != "" {
		return fmt.Sprintf(`<a href="#%s" %s>%s</a>`, name, extra, r.niceName(uri))
	}
	return fmt.Sprintf(`<a href="%s" %s>%s</a>`, uri, extra, r.niceName(uri))
}

// objectHTML renders a triple object for a table cell: resources as links,
// literals as escaped text, nested blank nodes as nested tables.
func (r *TermRenderer) objectHTML(obj rdf.Node, visited map[string]bool) string {
	switch obj.Kind() {
	case rdf.KindIRI:
		return r.termLink(obj.Value())
	case rdf.KindLiteral:
		return markup.Escape(obj.Value())
	case rdf.KindBlank:
		return r.blankNodeTable(obj, visited)
	}
	return "?"
}

// blankNodeTable renders a blank node as a nested table of its non-special
// properties. A blank node with no such properties renders nothing at all,
// never an empty table. visited guards against blank-node cycles: a node
// already on the path renders nothing.
func (r *TermRenderer) blankNodeTable(node rdf.Node, visited map[string]bool) string {
	if visited[node.String()] {
		return ""
	}
	visited[node.String()] = true
	defer delete(visited, node.String())

	rows := ""
	for _, t := range r.st.Match(&node, nil, nil) {
		if specialPredicates[t.Predicate.Value()] {
			continue
		}
		rows += "<tr>"
		rows += fmt.Sprintf(`<td class="blankterm">%s</td>`+"\n", r.termLink(t.Predicate.Value()))
		rows += fmt.Sprintf(`<td class="blankdef">%s</td>`+"\n", r.objectHTML(t.Object, visited))
		rows += "</tr>"
	}
	if rows == "" {
		return ""
	}
	return fmt.Sprintf("<table class=\"blankdesc\">\n%s\n</table>\n", rows)
}

// restrictionBlocks renders the OWL restrictions attached to a class via
// rdfs:subClassOf as a definition list. A restriction without owl:onProperty
// is skipped.
func (r *TermRenderer) restrictionBlocks(term rdf.Node) string {
	subClassPred := rdf.IRI(core.SubClassOf)
	typePred := rdf.IRI(core.Type)
	restrictionType := rdf.IRI(owl.Restriction)

	var restrictions []rdf.Node
	for _, t := range r.st.Match(&term, &subClassPred, nil) {
		obj := t.Object
		if _, ok := r.st.One(&obj, &typePred, &restrictionType); ok {
			restrictions = append(restrictions, obj)
		}
	}
	if len(restrictions) == 0 {
		return ""
	}
	rdf.SortNodes(restrictions)

	doc := "<dl>"
	for _, restriction := range restrictions {
		doc += r.restrictionBlock(restriction)
	}
	doc += "</dl>"
	return doc
}

func (r *TermRenderer) restrictionBlock(restriction rdf.Node) string {
	var onProperty rdf.Node
	var comment string
	hasOnProperty := false
	for _, t := range r.st.Match(&restriction, nil, nil) {
		switch t.Predicate.Value() {
		case owl.OnProperty:
			onProperty = t.Object
			hasOnProperty = true
		case core.Comment:
			comment = t.Object.Value()
		}
	}
	if !hasOnProperty {
		return ""
	}

	doc := fmt.Sprintf("<dt>Restriction on %s</dt>\n", r.termLink(onProperty.Value()))

	body := ""
	for _, t := range r.st.Match(&restriction, nil, nil) {
		pred := t.Predicate.Value()
		if pred == owl.OnProperty || pred == core.Comment || pred == spec.Documentation {
			continue
		}
		if pred == core.Type && t.Object.IsIRI() && t.Object.Value() == owl.Restriction {
			continue
		}
		body += r.termLink(pred)
		switch t.Object.Kind() {
		case rdf.KindIRI:
			body += " " + r.termLink(t.Object.Value())
		case rdf.KindLiteral:
			body += " " + markup.Escape(t.Object.Value())
		}
	}
	if comment != "" {
		body += fmt.Sprintf("\n<div>%s</div>\n", markup.Escape(comment))
	}
	if body != "" {
		doc += fmt.Sprintf("<dd>%s</dd>", body)
	}
	return doc
}

// extraInfo renders the catch-all table rows for every non-special property
// of a term.
func (r *TermRenderer) extraInfo(term rdf.Node) string {
	doc := ""
	for _, t := range r.st.Match(&term, nil, nil) {
		if specialPredicates[t.Predicate.Value()] {
			continue
		}
		doc += fmt.Sprintf("<tr><th>%s</th>\n", r.termLinkRel(t.Predicate.Value(), term, t.Predicate))
		switch t.Object.Kind() {
		case rdf.KindIRI:
			doc += tableCell(r.termLinkRel(t.Object.Value(), term, t.Predicate))
		case rdf.KindLiteral:
			doc += tableCell(r.linker.LinkCode(markup.Escape(t.Object.Value())))
		case rdf.KindBlank:
			doc += tableCell(r.blankNodeTable(t.Object, map[string]bool{}))
		default:
			doc += tableCell("?")
		}
	}
	return doc
}

// tableCell closes a value row in a term info table.
func tableCell(val string) string {
	return fmt.Sprintf("<td>%s</td></tr>\n", val)
}

// headedRow opens a labelled row: the header cell appears on the first row
// of a list only, continuation rows get an empty header cell.
func headedRow(val string, first bool) string {
	if first {
		return tableCell(val)
	}
	return "<tr><th></th>" + tableCell(val)
}
