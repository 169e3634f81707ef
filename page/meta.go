// Package page assembles the final HTML document: specification metadata
// rows, the @KEY@ template substitution, and the overall page layout around
// the fragments produced by the render package.
package page

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/c360studio/specdoc/markup"
	"github.com/c360studio/specdoc/ontology"
	"github.com/c360studio/specdoc/rdf"
	"github.com/c360studio/specdoc/store"
	"github.com/c360studio/specdoc/vocabulary/core"
	"github.com/c360studio/specdoc/vocabulary/dcs"
	"github.com/c360studio/specdoc/vocabulary/doap"
	"github.com/c360studio/specdoc/vocabulary/foaf"
	"github.com/c360studio/specdoc/vocabulary/spec"
)

// Authors renders the developer and maintainer table rows for the spec,
// collecting names from the spec subject and its project.
func Authors(st *store.Store, ont *ontology.Ontology) string {
	subject := rdf.IRI(ont.URI)
	subjects := []rdf.Node{subject}
	projectPred := rdf.IRI(spec.Project)
	if t, ok := st.One(&subject, &projectPred, nil); ok {
		subjects = append(subjects, t.Object)
	}

	developers := peopleNames(st, subjects, doap.Developer)
	maintainers := peopleNames(st, subjects, doap.Maintainer)

	doc := ""
	doc += authorRow("Developer", "doap:developer", developers)
	doc += authorRow("Maintainer", "doap:maintainer", maintainers)
	return doc
}

func peopleNames(st *store.Store, subjects []rdf.Node, predicate string) []string {
	set := make(map[string]bool)
	for _, s := range subjects {
		for _, person := range st.Objects(s, predicate) {
			if name := st.Literal(person, foaf.Name); name != "" {
				set[name] = true
			}
		}
	}
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func authorRow(role, property string, names []string) string {
	if len(names) == 0 {
		return ""
	}
	spans := make([]string, len(names))
	for i, n := range names {
		spans[i] = fmt.Sprintf(`<span class="author" property="%s">%s</span>`, property, markup.Escape(n))
	}
	header := role
	if len(names) > 1 {
		header += "s"
	}
	return fmt.Sprintf(`<tr><th class="metahead">%s</th><td>%s</td></tr>`, header, strings.Join(spans, ", "))
}

// Version is the spec release version: the two counters plus the date of
// the release carrying them.
type Version struct {
	Minor int
	Micro int
	Date  string
}

// Experimental reports a pre-stable version: minor 0 or an odd micro.
func (v Version) Experimental() bool {
	return v.Minor == 0 || v.Micro%2 == 1
}

// String returns "minor.micro".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Minor, v.Micro)
}

// SpecVersion extracts the version counters and the date of the latest
// release.
func SpecVersion(st *store.Store, ont *ontology.Ontology) Version {
	subject := rdf.IRI(ont.URI)

	v := Version{}
	minorPred := rdf.IRI(spec.MinorVersion)
	microPred := rdf.IRI(spec.MicroVersion)
	for _, t := range st.Match(nil, &minorPred, nil) {
		if n, err := strconv.Atoi(t.Object.Value()); err == nil {
			v.Minor = n
		}
	}
	for _, t := range st.Match(nil, &microPred, nil) {
		if n, err := strconv.Atoi(t.Object.Value()); err == nil {
			v.Micro = n
		}
	}

	// Date comes from the release with the highest doap:revision.
	latestRevision := ""
	var latestRelease rdf.Node
	haveRelease := false
	for _, release := range st.Objects(subject, doap.Release) {
		rev := st.Literal(release, doap.Revision)
		if rev == "" {
			continue
		}
		if latestRevision == "" || rev > latestRevision {
			latestRevision = rev
			latestRelease = release
			haveRelease = true
		}
	}
	if haveRelease {
		v.Date = st.Literal(latestRelease, doap.Created)
	}
	return v
}

// History renders the release history definition list, newest first. A
// release without a revision, or a changeset item without a label, is
// skipped with a warning. Only releases with a file-release link appear.
func History(st *store.Store, ont *ontology.Ontology, warns *ontology.Warnings) string {
	subject := rdf.IRI(ont.URI)

	type entry struct {
		created string
		dist    string
		html    string
	}
	var entries []entry

	for _, release := range st.Objects(subject, doap.Release) {
		revision := st.Literal(release, doap.Revision)
		if revision == "" {
			warns.Warnf("release of <%s> has no doap:revision", ont.URI)
			continue
		}

		created := st.Literal(release, doap.Created)

		var dist string
		for _, d := range st.Objects(release, doap.FileRelease) {
			if d.IsIRI() {
				dist = d.Value()
				break
			}
		}
		if dist == "" {
			continue
		}

		html := fmt.Sprintf(`<dt><a href="%s">Version %s</a>`, dist, markup.Escape(revision))
		if created != "" {
			html += fmt.Sprintf(" (%s)</dt>\n", markup.Escape(created))
		} else {
			html += ` (<span class="warning">EXPERIMENTAL</span>)</dt>`
		}
		html += fmt.Sprintf("<dd><ul>\n%s</ul></dd>", changesetItems(st, release, warns))

		entries = append(entries, entry{created: created, dist: dist, html: html})
	}

	if len(entries) == 0 {
		return ""
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].created != entries[j].created {
			return entries[i].created > entries[j].created
		}
		return entries[i].dist > entries[j].dist
	})

	doc := "<dl>\n"
	for _, e := range entries {
		doc += e.html
	}
	doc += "</dl>\n"
	return doc
}

func changesetItems(st *store.Store, release rdf.Node, warns *ontology.Warnings) string {
	changesetPred := rdf.IRI(dcs.Changeset)
	t, ok := st.One(&release, &changesetPred, nil)
	if !ok {
		return ""
	}

	items := ""
	for _, item := range st.Objects(t.Object, dcs.Item) {
		label := st.Literal(item, core.Label)
		if label == "" {
			warns.Warnf("changeset item has no rdfs:label")
			continue
		}
		items += fmt.Sprintf("<li>%s</li>\n", markup.Escape(label))
	}
	return items
}
