// Package markup is the structured-text renderer: Markdown conversion,
// code-block syntax highlighting, and HTML fragment checking. The ontology
// analyzer consumes it through a narrow surface and never depends on how
// the fragments are produced.
package markup

import (
	"bytes"
	"fmt"
	stdhtml "html"
	"log/slog"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	xhtml "golang.org/x/net/html"
)

// Renderer converts Markdown and highlights embedded code blocks.
type Renderer struct {
	md     goldmark.Markdown
	style  *chroma.Style
	logger *slog.Logger
}

// NewRenderer creates a renderer. A nil logger falls back to slog.Default.
func NewRenderer(logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Table, extension.DefinitionList),
			goldmark.WithRendererOptions(goldmarkhtml.WithUnsafe()),
		),
		style:  styles.Get("xcode"),
		logger: logger,
	}
}

// Markdown converts Markdown text to an HTML fragment. Table section tags
// are stripped to keep tables flat for the XHTML-Basic template.
func (r *Renderer) Markdown(text string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	out := buf.String()
	for _, tag := range []string{"thead", "tbody"} {
		out = strings.ReplaceAll(out, "<"+tag+">\n", "")
		out = strings.ReplaceAll(out, "</"+tag+">\n", "")
		out = strings.ReplaceAll(out, "<"+tag+">", "")
		out = strings.ReplaceAll(out, "</"+tag+">", "")
	}
	return out, nil
}

// Highlight renders source code as highlighted HTML. An unknown language is
// non-fatal: the code comes back escaped inside a plain pre block.
func (r *Renderer) Highlight(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		r.logger.Warn("no lexer for language, using escaped text", slog.String("language", language))
		return "<pre>" + Escape(code) + "</pre>"
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		r.logger.Warn("tokenize failed, using escaped text", slog.String("error", err.Error()))
		return "<pre>" + Escape(code) + "</pre>"
	}

	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.Format(&buf, r.style, it); err != nil {
		r.logger.Warn("highlight failed, using escaped text", slog.String("error", err.Error()))
		return "<pre>" + Escape(code) + "</pre>"
	}
	return buf.String()
}

// HighlightBlocks rewrites every <pre class="c-code"> and
// <pre class="turtle-code"> block in the fragment into highlighted markup.
// The block contents are entity-unescaped before highlighting.
func (r *Renderer) HighlightBlocks(fragment string) string {
	fragment = r.replaceBlocks(fragment, `<pre class="c-code">`, "c")
	fragment = r.replaceBlocks(fragment, `<pre class="turtle-code">`, "turtle")
	return fragment
}

func (r *Renderer) replaceBlocks(doc, open, language string) string {
	var b strings.Builder
	for {
		i := strings.Index(doc, open)
		if i < 0 {
			break
		}
		end := strings.Index(doc[i:], "</pre>")
		if end < 0 {
			break
		}
		code := stdhtml.UnescapeString(doc[i+len(open) : i+end])
		b.WriteString(doc[:i])
		b.WriteString(r.Highlight(code, language))
		doc = doc[i+end+len("</pre>"):]
	}
	b.WriteString(doc)
	return b.String()
}

// RawHTML passes an author-written HTML fragment through after checking it
// for well-formedness. A malformed fragment is returned unchanged with the
// error; the caller decides whether to warn.
func (r *Renderer) RawHTML(fragment string) (string, error) {
	return fragment, CheckFragment(fragment)
}

// Escape escapes text for inclusion in HTML.
func Escape(s string) string {
	return stdhtml.EscapeString(s)
}

// voidElements never take a closing tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// CheckFragment tokenizes an HTML fragment and reports unbalanced tags.
// This is a structural sanity check, not DTD validation.
func CheckFragment(fragment string) error {
	tk := xhtml.NewTokenizer(strings.NewReader(fragment))
	var stack []string
	for {
		switch tk.Next() {
		case xhtml.ErrorToken:
			if len(stack) > 0 {
				return fmt.Errorf("unclosed element <%s>", stack[len(stack)-1])
			}
			return nil
		case xhtml.StartTagToken:
			name, _ := tk.TagName()
			if !voidElements[string(name)] {
				stack = append(stack, string(name))
			}
		case xhtml.EndTagToken:
			name, _ := tk.TagName()
			if len(stack) == 0 {
				return fmt.Errorf("unexpected closing tag </%s>", string(name))
			}
			top := stack[len(stack)-1]
			if top != string(name) {
				return fmt.Errorf("mismatched closing tag </%s>, open element is <%s>", string(name), top)
			}
			stack = stack[:len(stack)-1]
		}
	}
}
