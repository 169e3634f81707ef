package render

import (
	"fmt"
	"strings"

	"github.com/c360studio/specdoc/ontology"
	"github.com/c360studio/specdoc/rdf"
	"github.com/c360studio/specdoc/vocabulary/core"
)

// BuildIndex produces the alphabetical index table of classes, properties,
// and instances. When instance documentation is disabled the Instances
// column is omitted, since the page carries no instance anchors to link to.
// Classes that are direct subclasses of another class in the same ontology
// are suppressed at the top level and shown nested instead; the nesting
// guards against subclass cycles, so a class already shown is never
// repeated.
func (r *TermRenderer) BuildIndex(instances bool) string {
	terms := r.terms
	n := len(terms.Classes) + len(terms.Properties)
	if instances {
		n += len(terms.Instances)
	}
	if n == 0 {
		return ""
	}

	head := ""
	body := ""

	if len(terms.Classes) > 0 {
		head += `<th><a href="#ref-classes" />Classes</th>`
		body += "<td><ul>"
		shown := make(map[string]bool)
		for _, c := range terms.Classes {
			if shown[c.Value()] || r.hasLocalSuperclass(c) {
				continue
			}
			shown[c.Value()] = true
			body += "<li>" + r.indexLink(c)
			body += r.classTree(c, shown)
			body += "</li>"
		}
		body += "</ul></td>\n"
	}

	if len(terms.Properties) > 0 {
		head += `<th><a href="#ref-properties" />Properties</th>`
		body += "<td><ul>"
		for _, p := range terms.Properties {
			body += fmt.Sprintf("<li>%s</li>", r.indexLink(p))
		}
		body += "</ul></td>\n"
	}

	if instances && len(terms.Instances) > 0 {
		head += `<th><a href="#ref-instances" />Instances</th>`
		body += "<td><ul>"
		for _, i := range terms.Instances {
			short := ontology.ShortName(i.Value())
			anchor := r.anchorFor(i)
			body += fmt.Sprintf(`<li><a href="#%s">%s</a></li>`, anchor, short)
		}
		body += "</ul></td>\n"
	}

	if head == "" || body == "" {
		return ""
	}
	return fmt.Sprintf("<table class=\"index\">\n<thead><tr>%s</tr></thead>\n<tbody><tr>%s</tr></tbody></table>\n", head, body)
}

// hasLocalSuperclass reports whether the class is a direct subclass of a
// class defined in this ontology.
func (r *TermRenderer) hasLocalSuperclass(class rdf.Node) bool {
	for _, o := range r.st.Objects(class, core.SubClassOf) {
		if r.ont.Local(o) {
			return true
		}
	}
	return false
}

// classTree renders the nested subclass listing under a class. shown spans
// the whole index, so a cycle terminates the recursion instead of looping.
func (r *TermRenderer) classTree(class rdf.Node, shown map[string]bool) string {
	tree := ""
	for _, sub := range r.st.Subjects(core.SubClassOf, class) {
		if !sub.IsIRI() || shown[sub.Value()] {
			continue
		}
		shown[sub.Value()] = true
		tree += "<li>" + r.indexLink(sub)
		tree += r.classTree(sub, shown)
		tree += "</li>"
	}
	if tree == "" {
		return ""
	}
	return "<ul>" + tree + "</ul>"
}

func (r *TermRenderer) indexLink(term rdf.Node) string {
	if r.ont.Local(term) {
		name := r.ont.LocalName(term)
		return fmt.Sprintf(`<a href="#%s">%s</a>`, name, name)
	}
	return fmt.Sprintf(`<a href="%s">%s</a>`, term.Value(), term.Value())
}

func (r *TermRenderer) anchorFor(term rdf.Node) string {
	if r.ont.Local(term) {
		return strings.ReplaceAll(r.ont.LocalName(term), "/", "_")
	}
	return ontology.ShortName(term.Value())
}
