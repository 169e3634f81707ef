// Package specindex builds the collection-wide index page: one summary row
// per specification bundle, substituted into an index template.
package specindex

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/c360studio/specdoc/markup"
	"github.com/c360studio/specdoc/ontology"
	"github.com/c360studio/specdoc/page"
	"github.com/c360studio/specdoc/rdf"
	"github.com/c360studio/specdoc/store"
	"github.com/c360studio/specdoc/vocabulary/core"
	"github.com/c360studio/specdoc/vocabulary/doap"
	"github.com/c360studio/specdoc/vocabulary/owl"
	"github.com/c360studio/specdoc/vocabulary/spec"
)

// Discover returns the Turtle documents matching the glob patterns,
// deduplicated and sorted. Patterns use doublestar syntax, so a whole
// bundle tree can be pulled in with one "ns/**/*.ttl" pattern.
func Discover(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// Builder accumulates one row per specification and assembles the index
// page.
type Builder struct {
	logger *slog.Logger
	warns  *ontology.Warnings
	rows   []string
}

// NewBuilder creates an index builder. A nil logger falls back to
// slog.Default.
func NewBuilder(logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{logger: logger, warns: ontology.NewWarnings(logger)}
}

// Warnings returns the warnings collected while adding specs.
func (b *Builder) Warnings() []string { return b.warns.All() }

// AddSpec loads one bundle and appends its index row. A spec without a
// version or release date is skipped with a warning. Link targets are
// root-relative under rootURI when the ontology URI falls under it, and
// fall back to the bundle's path relative to rootPath otherwise.
func (b *Builder) AddSpec(specPath, rootURI, rootPath string) error {
	st, err := store.NewLoader(b.logger).LoadBundle(specPath)
	if err != nil {
		return err
	}
	ont, err := ontology.Discover(st)
	if err != nil {
		return err
	}
	row := b.row(st, ont, specPath, rootURI, rootPath)
	if row != "" {
		b.rows = append(b.rows, row)
	}
	return nil
}

// row renders one spec's table row: links, description, version, and
// stability status.
func (b *Builder) row(st *store.Store, ont *ontology.Ontology, specPath, rootURI, rootPath string) string {
	subject := rdf.IRI(ont.URI)

	version := page.SpecVersion(st, ont)
	if version.Date == "" {
		b.warns.Warnf("<%s> has no doap:created date", ont.URI)
		return ""
	}
	b.checkLatestRelease(st, subject, version)

	name := st.Literal(subject, doap.Name)
	name = strings.TrimPrefix(name, "LV2 ")

	target := linkTarget(ont.URI, specPath, rootURI, rootPath)
	stem := ontology.ShortName(strings.TrimSuffix(target, ".html"))

	// Leading comment acts as the sort key for the row.
	row := fmt.Sprintf("<tr><!-- %s -->", stem)
	row += fmt.Sprintf(`<td><a rel="rdfs:seeAlso" href="%s">%s</a></td>`, target, markup.Escape(name))
	row += fmt.Sprintf(`<td><a rel="rdfs:seeAlso" href="../html/group__%s.html">%s</a></td>`, stem, markup.Escape(name))

	if desc := st.Literal(subject, doap.ShortDesc); desc != "" {
		row += "<td>" + markup.Escape(desc) + "</td>"
	} else {
		row += "<td></td>"
	}

	row += fmt.Sprintf("<td>%s</td>", version.String())

	deprecatedVal := st.Literal(subject, owl.Deprecated)
	isDeprecated := deprecatedVal != "" && deprecatedVal != "0" && deprecatedVal != "false"
	switch {
	case version.Minor == 0:
		row += `<td><span class="error">Experimental</span></td>`
	case isDeprecated:
		row += `<td><span class="warning">Deprecated</span></td>`
	case version.Micro%2 == 0:
		row += `<td><span class="success">Stable</span></td>`
	default:
		row += `<td><span class="warning">Development</span></td>`
	}

	row += "</tr>"
	return row
}

// linkTarget resolves the href for a spec's row. A URI under rootURI
// becomes a root-relative page path; otherwise the target is the bundle's
// Turtle path relative to rootPath with an .html extension. With neither
// root configured the full URI is used.
func linkTarget(uri, specPath, rootURI, rootPath string) string {
	if rootURI != "" && strings.HasPrefix(uri, rootURI) {
		return uri[len(rootURI):] + ".html"
	}
	if rootPath != "" {
		if rel, err := filepath.Rel(rootPath, specPath); err == nil {
			return strings.TrimSuffix(rel, filepath.Ext(rel)) + ".html"
		}
	}
	return uri + ".html"
}

// checkLatestRelease warns when some release is newer than the one the
// version counters point at.
func (b *Builder) checkLatestRelease(st *store.Store, subject rdf.Node, version page.Version) {
	for _, release := range st.Objects(subject, doap.Release) {
		if created := st.Literal(release, doap.Created); created > version.Date {
			b.warns.Warnf("<%s> %s (%s) is not the latest release", subject.Value(), version.String(), version.Date)
			return
		}
	}
}

// Build substitutes the accumulated rows into the index template and
// returns the page. Rows are sorted by their leading comment key.
func (b *Builder) Build(templatePath, collectionVersion string) (string, error) {
	template, err := os.ReadFile(templatePath)
	if err != nil {
		return "", fmt.Errorf("read index template: %w", err)
	}

	rows := make([]string, len(b.rows))
	copy(rows, b.rows)
	sort.Strings(rows)

	date, _ := page.BuildStamp()
	out := page.Substitute(string(template), map[string]string{
		"ROWS":    strings.Join(rows, "\n"),
		"VERSION": collectionVersion,
		"DATE":    date,
	})
	return out, nil
}

// SpecSubjects returns every subject typed as a specification in the
// store. Used when several specs share one loaded graph.
func SpecSubjects(st *store.Store) []rdf.Node {
	typePred := rdf.IRI(core.Type)
	specType := rdf.IRI(spec.Specification)
	var out []rdf.Node
	for _, t := range st.Match(nil, &typePred, &specType) {
		if t.Subject.IsIRI() {
			out = append(out, t.Subject)
		}
	}
	rdf.SortNodes(out)
	return out
}
