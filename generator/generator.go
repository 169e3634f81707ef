// Package generator runs the documentation pipeline for one specification
// bundle: load, classify, index, render, cross-link, assemble. The pipeline
// is a strict synchronous batch; every stage consumes the previous stage's
// completed output.
package generator

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/c360studio/specdoc/linkmap"
	"github.com/c360studio/specdoc/markup"
	"github.com/c360studio/specdoc/ontology"
	"github.com/c360studio/specdoc/page"
	"github.com/c360studio/specdoc/rdf"
	"github.com/c360studio/specdoc/render"
	"github.com/c360studio/specdoc/store"
	"github.com/c360studio/specdoc/vocabulary/doap"
	"github.com/c360studio/specdoc/vocabulary/owl"
)

// Options configure one generation run.
type Options struct {
	// SpecPath is the Turtle document of the specification bundle.
	SpecPath string

	// TemplatePath is the HTML skeleton with @KEY@ placeholders.
	TemplatePath string

	// StyleURI is substituted for @STYLE_URI@.
	StyleURI string

	// DocDir is the API documentation directory for code links; empty
	// disables code linking and the API content link.
	DocDir string

	// TagsPath is the Doxygen tag file the link map is built from.
	TagsPath string

	// ListEmail and ListPage fill the mailing-list row when set.
	ListEmail string
	ListPage  string

	// RootLink, when set, wraps the spec name in a link back to the
	// collection index.
	RootLink string

	// Instances controls whether instance terms are documented.
	Instances bool
}

// Result is a completed run: the assembled page plus the ordered warning
// log. Fatal conditions return an error instead, with no HTML produced.
type Result struct {
	HTML     string
	Name     string
	Warnings []string
}

// Generate runs the whole pipeline. The only fatal conditions are a
// missing ontology subject, a missing namespace prefix, and I/O or parse
// failures on the inputs; everything else degrades to warnings on the
// result.
func Generate(opts Options, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	template, err := os.ReadFile(opts.TemplatePath)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}

	codeMap, err := linkmap.Load(opts.TagsPath, opts.DocDir)
	if err != nil {
		return nil, fmt.Errorf("load link map: %w", err)
	}

	st, err := store.NewLoader(logger).LoadBundle(opts.SpecPath)
	if err != nil {
		return nil, fmt.Errorf("load bundle: %w", err)
	}

	ont, err := ontology.Discover(st)
	if err != nil {
		return nil, err
	}
	logger.Debug("ontology discovered",
		slog.String("uri", ont.URI), slog.String("prefix", ont.Prefix))

	warns := ontology.NewWarnings(logger)
	terms := ontology.Classify(st, ont)
	rels := ontology.BuildRelations(st, warns)

	mk := markup.NewRenderer(logger)
	linker := render.NewLinker(ont, terms, st.Prefixes(), codeMap, warns)
	tr := render.NewTermRenderer(st, ont, terms, rels, linker, mk, warns, logger)

	azlist := tr.BuildIndex(opts.Instances)

	// Section order on the page is classes, properties, instances. The
	// class blocks read the relation indices BuildRelations has already
	// completed, so render order carries no data dependency.
	classDocs := tr.Render(render.CategoryClass, terms.Classes)
	propDocs := tr.Render(render.CategoryProperty, terms.Properties)
	instDocs := ""
	if opts.Instances {
		instDocs = tr.Render(render.CategoryInstance, terms.Instances)
	}

	termList := ""
	if classDocs != "" {
		termList += `<h3><a id="ref-classes" />Classes</h3>` + classDocs
	}
	if propDocs != "" {
		termList += `<h3><a id="ref-properties" />Properties</h3>` + propDocs
	}
	if instDocs != "" {
		termList += `<h3><a id="ref-instances" />Instances</h3>` + instDocs
	}

	subject := rdf.IRI(ont.URI)
	name := st.Literal(subject, doap.Name)
	shortDesc := st.Literal(subject, doap.ShortDesc)

	nameHTML := markup.Escape(name)
	if opts.RootLink != "" {
		nameHTML = fmt.Sprintf(`<a href="%s">%s</a>`, opts.RootLink, nameHTML)
	}

	version := page.SpecVersion(st, ont)
	versionHTML := version.String()
	if version.Experimental() {
		versionHTML += ` <span class="warning">EXPERIMENTAL</span>`
	}
	if deprecated(st, ont) {
		versionHTML += ` <span class="warning">DEPRECATED</span>`
	}

	xmlns := ""
	if ont.Prefix != "lv2" {
		xmlns = fmt.Sprintf(`      xmlns:%s="%s"`, ont.Prefix, ont.Namespace)
	}

	contentLinks := ""
	if opts.DocDir != "" {
		contentLinks = fmt.Sprintf(`<li><a href="%s/group__%s.html">API</a></li>`, opts.DocDir, baseName(opts.SpecPath))
	}

	date, datetime := page.BuildStamp()

	html := page.Substitute(string(template), map[string]string{
		"TITLE":         markup.Escape(name),
		"NAME":          nameHTML,
		"SHORT_DESC":    markup.Escape(shortDesc),
		"URI":           ont.URI,
		"PREFIX":        ont.Prefix,
		"XMLNS":         xmlns,
		"STYLE_URI":     opts.StyleURI,
		"PREFIXES":      page.PrefixesHTML(st),
		"BASE":          ont.Namespace,
		"AUTHORS":       page.Authors(st, ont),
		"INDEX":         azlist,
		"REFERENCE":     termList,
		"FILENAME":      fileName(opts.SpecPath),
		"HEADER":        baseName(opts.SpecPath) + ".h",
		"HISTORY":       page.History(st, ont, warns),
		"MAIL":          page.MailRow(opts.ListEmail, opts.ListPage),
		"VERSION":       versionHTML,
		"CONTENT_LINKS": contentLinks,
		"DESCRIPTION":   tr.DetailedDocumentation(subject),
		"DATE":          date,
		"TIME":          datetime,
	})

	if err := markup.CheckFragment(html); err != nil {
		warns.Warnf("assembled page for <%s> is not well-formed: %v", ont.URI, err)
	}

	return &Result{HTML: html, Name: name, Warnings: warns.All()}, nil
}

func deprecated(st *store.Store, ont *ontology.Ontology) bool {
	subject := rdf.IRI(ont.URI)
	v := st.Literal(subject, owl.Deprecated)
	return v != "" && v != "false"
}

func fileName(path string) string {
	return filepath.Base(path)
}

func baseName(path string) string {
	name := fileName(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
