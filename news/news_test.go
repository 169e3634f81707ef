package news

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/specdoc/rdf"
	"github.com/c360studio/specdoc/store"
	"github.com/c360studio/specdoc/vocabulary/core"
	"github.com/c360studio/specdoc/vocabulary/dcs"
	"github.com/c360studio/specdoc/vocabulary/doap"
	"github.com/c360studio/specdoc/vocabulary/foaf"
)

const projectURI = "http://example.org/shapes"

func quietWriter() *Writer {
	return NewWriter(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func add(st *store.Store, s rdf.Node, p string, o rdf.Node) {
	st.Add(rdf.Triple{Subject: s, Predicate: rdf.IRI(p), Object: o})
}

func addRelease(st *store.Store, id, revision, created string, items ...string) {
	release := rdf.Blank(id)
	add(st, rdf.IRI(projectURI), doap.Release, release)
	if revision != "" {
		add(st, release, doap.Revision, rdf.Literal(revision))
	}
	if created != "" {
		add(st, release, doap.Created, rdf.Literal(created))
	}

	blamee := rdf.Blank(id + "-blamee")
	add(st, release, dcs.Blame, blamee)
	add(st, blamee, foaf.Name, rdf.Literal("Alice Example"))
	add(st, blamee, foaf.Mbox, rdf.IRI("mailto:alice@example.org"))

	cs := rdf.Blank(id + "-cs")
	add(st, release, dcs.Changeset, cs)
	for i, label := range items {
		item := rdf.Blank(id + "-item" + string(rune('a'+i)))
		add(st, cs, dcs.Item, item)
		add(st, item, core.Label, rdf.Literal(label))
	}
}

func projectStore() *store.Store {
	st := store.New()
	add(st, rdf.IRI(projectURI), core.Type, rdf.IRI(doap.Namespace+"Project"))
	return st
}

func TestWriter_ProjectEntries(t *testing.T) {
	st := projectStore()
	addRelease(st, "r1", "1.0", "2024-01-15", "Initial release.")
	addRelease(st, "r2", "1.2", "2024-06-01", "Fix area computation.", "Add unit square.")

	w := quietWriter()
	entries := w.ProjectEntries(st)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, "1.2", entries[0].Revision)
	assert.Equal(t, "1.0", entries[1].Revision)

	assert.Equal(t, "shapes", entries[0].Name)
	assert.Equal(t, []int{1, 2}, entries[0].Version)
	assert.True(t, entries[0].Stable)
	assert.Equal(t, "Alice Example", entries[0].BlameeName)
	assert.Equal(t, "alice@example.org", entries[0].BlameeMbox)
	assert.Len(t, entries[0].Items, 2)
	assert.Empty(t, w.Warnings())
}

func TestWriter_ProjectEntries_PartialReleaseIgnored(t *testing.T) {
	st := projectStore()
	addRelease(st, "r1", "", "2024-01-15", "No revision.")

	w := quietWriter()
	entries := w.ProjectEntries(st)
	assert.Empty(t, entries)
	require.Len(t, w.Warnings(), 1)
	assert.Contains(t, w.Warnings()[0], projectURI)
}

func TestWriter_ProjectEntries_TimestampedDate(t *testing.T) {
	st := projectStore()
	addRelease(st, "r1", "1.0", "2024-01-15T12:30:00+01:00", "Something.")

	entries := quietWriter().ProjectEntries(st)
	require.Len(t, entries, 1)
	assert.Equal(t, 2024, entries[0].Date.Year())
	assert.Equal(t, time.January, entries[0].Date.Month())
}

func TestIsStableVersion(t *testing.T) {
	tests := []struct {
		version []int
		stable  bool
	}{
		{[]int{1, 0}, true},
		{[]int{1, 2}, true},
		{[]int{1, 1}, false},
		{[]int{0, 2}, false},
		{[]int{1, 0, 2}, true},
		{[]int{1, 1, 2}, false},
		{[]int{1, 0, 1}, false},
		{[]int{1}, false},
		{nil, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.stable, isStableVersion(tt.version), "version %v", tt.version)
	}
}

func TestVersionLess(t *testing.T) {
	assert.True(t, versionLess([]int{1, 0}, []int{1, 2}))
	assert.True(t, versionLess([]int{1, 2}, []int{1, 2, 1}))
	assert.False(t, versionLess([]int{2, 0}, []int{1, 9}))
}

func TestWriter_Render(t *testing.T) {
	st := projectStore()
	addRelease(st, "r1", "1.0", "2024-01-15", "Initial release.")

	w := quietWriter()
	out := w.Render(w.ProjectEntries(st))

	assert.Contains(t, out, "shapes (1.0) stable; urgency=medium")
	assert.Contains(t, out, "\n  * Initial release.")
	assert.Contains(t, out, " -- Alice Example <alice@example.org>  Mon, 15 Jan 2024")
}

func TestWriter_Render_WrapsLongItems(t *testing.T) {
	st := projectStore()
	long := strings.Repeat("word ", 30)
	addRelease(st, "r1", "1.1", "2024-01-15", strings.TrimSpace(long))

	w := quietWriter()
	out := w.Render(w.ProjectEntries(st))

	assert.Contains(t, out, "unstable")
	assert.Contains(t, out, "\n    word")
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len(line), itemWrapWidth+6)
	}
}

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{""}, wrap("", 10))
	assert.Equal(t, []string{"one two"}, wrap("one two", 10))
	assert.Equal(t, []string{"one two", "three"}, wrap("one two three", 8))
}
