// Package news writes a NEWS file from a project's release history. The
// output is Debian changelog format, parseable by dpkg-parsechangelog.
package news

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/c360studio/specdoc/ontology"
	"github.com/c360studio/specdoc/rdf"
	"github.com/c360studio/specdoc/store"
	"github.com/c360studio/specdoc/vocabulary/core"
	"github.com/c360studio/specdoc/vocabulary/dcs"
	"github.com/c360studio/specdoc/vocabulary/doap"
	"github.com/c360studio/specdoc/vocabulary/foaf"
)

const itemWrapWidth = 74

// Entry is one release in the changelog.
type Entry struct {
	Name       string
	Revision   string
	Version    []int
	Date       time.Time
	Stable     bool
	Items      []string
	BlameeName string
	BlameeMbox string
}

// Writer collects release entries from a loaded graph and renders them.
type Writer struct {
	logger *slog.Logger
	warns  *ontology.Warnings
}

// NewWriter creates a writer. A nil logger falls back to slog.Default.
func NewWriter(logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{logger: logger, warns: ontology.NewWarnings(logger)}
}

// Warnings returns the warnings collected while reading entries.
func (w *Writer) Warnings() []string { return w.warns.All() }

// ProjectEntries reads the release entries for every doap:Project subject
// in the store. A release missing its revision, date, blamee, or changeset
// is ignored with a warning.
func (w *Writer) ProjectEntries(st *store.Store) []Entry {
	typePred := rdf.IRI(core.Type)
	projectType := rdf.IRI(doap.Namespace + "Project")

	var entries []Entry
	for _, t := range st.Match(nil, &typePred, &projectType) {
		project := t.Subject
		name := ontology.ShortName(project.Value())
		if name == "" {
			name = st.Literal(project, doap.Name)
		}
		for _, release := range st.Objects(project, doap.Release) {
			entry, ok := w.releaseEntry(st, release)
			if !ok {
				w.warns.Warnf("ignored partial release of <%s>", project.Value())
				continue
			}
			entry.Name = name
			entries = append(entries, entry)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return versionLess(entries[j].Version, entries[i].Version)
	})
	return entries
}

func (w *Writer) releaseEntry(st *store.Store, release rdf.Node) (Entry, bool) {
	revision := st.Literal(release, doap.Revision)
	created := st.Literal(release, doap.Created)

	blamePred := rdf.IRI(dcs.Blame)
	blame, haveBlame := st.One(&release, &blamePred, nil)

	changesetPred := rdf.IRI(dcs.Changeset)
	changeset, haveChangeset := st.One(&release, &changesetPred, nil)

	if revision == "" || created == "" || !haveBlame || !haveChangeset {
		return Entry{}, false
	}

	date, err := parseReleaseDate(created)
	if err != nil {
		return Entry{}, false
	}

	version := parseVersion(revision)

	var items []string
	for _, item := range st.Objects(changeset.Object, dcs.Item) {
		if label := st.Literal(item, core.Label); label != "" {
			items = append(items, label)
		}
	}
	sort.Strings(items)

	return Entry{
		Revision:   revision,
		Version:    version,
		Date:       date,
		Stable:     isStableVersion(version),
		Items:      items,
		BlameeName: st.Literal(blame.Object, foaf.Name),
		BlameeMbox: strings.TrimPrefix(st.Literal(blame.Object, foaf.Mbox), "mailto:"),
	}, true
}

func parseReleaseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02T15:04:05-07:00", s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func parseVersion(revision string) []int {
	parts := strings.Split(revision, ".")
	version := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil
		}
		version = append(version, n)
	}
	return version
}

// isStableVersion reports a stable release: two or three components, a
// non-zero leading component, an even micro, and an even minor for
// three-component versions.
func isStableVersion(v []int) bool {
	if (len(v) != 2 && len(v) != 3) || v[0] == 0 {
		return false
	}
	minor := v[len(v)-2]
	micro := v[len(v)-1]
	return micro%2 == 0 && (len(v) == 2 || minor%2 == 0)
}

func versionLess(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// Render writes the entries, newest first, in changelog format.
func (w *Writer) Render(entries []Entry) string {
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		w.renderEntry(&b, e)
	}
	return b.String()
}

func (w *Writer) renderEntry(b *strings.Builder, e Entry) {
	status := "unstable"
	if e.Stable {
		status = "stable"
	}
	fmt.Fprintf(b, "%s (%s) %s; urgency=medium\n", e.Name, e.Revision, status)

	for _, item := range e.Items {
		b.WriteString("\n  * ")
		b.WriteString(strings.Join(wrap(item, itemWrapWidth), "\n    "))
	}

	fmt.Fprintf(b, "\n\n -- %s <%s>  %s\n",
		e.BlameeName, e.BlameeMbox, e.Date.Format("Mon, 02 Jan 2006 15:04:05 -0700"))
}

// wrap breaks text into lines of at most width characters at word
// boundaries.
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}
	return append(lines, line)
}
