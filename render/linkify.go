// Package render turns the analyzed ontology into HTML fragments: per-term
// documentation blocks, structured-value tables, cross-linked prose, and the
// alphabetical index.
package render

import (
	"fmt"
	"strings"

	"github.com/c360studio/specdoc/linkmap"
	"github.com/c360studio/specdoc/markup"
	"github.com/c360studio/specdoc/ontology"
)

// Linker rewrites rendered text fragments: code identifiers against the
// link map, prefixed names against the namespace table, and #name anchors
// against the classified term set. The three passes always run in that
// order, each over the previous pass's output. Every pass matches raw text
// only, never markup or the contents of an existing anchor, so running a
// pass twice cannot double-wrap a link.
type Linker struct {
	ont      *ontology.Ontology
	terms    *ontology.Terms
	prefixes map[string]string
	codeMap  linkmap.Map
	warns    *ontology.Warnings
}

// NewLinker creates a cross-linker over the classified term set. prefixes
// maps prefix names to namespace URIs, as discovered by the store.
func NewLinker(ont *ontology.Ontology, terms *ontology.Terms, prefixes map[string]string, codeMap linkmap.Map, warns *ontology.Warnings) *Linker {
	return &Linker{
		ont:      ont,
		terms:    terms,
		prefixes: prefixes,
		codeMap:  codeMap,
		warns:    warns,
	}
}

// Apply runs all three passes over a fragment in the fixed order:
// code-identifier, vocabulary-prefix, local-anchor.
func (l *Linker) Apply(text string) string {
	out := rewriteRawText(text, l.linkCodeSegment)
	out = rewriteRawText(out, l.linkVocabSegment)
	out = rewriteRawText(out, l.linkLocalSegment)
	return out
}

// LinkCode runs only the code-identifier pass.
func (l *Linker) LinkCode(text string) string {
	if len(l.codeMap) == 0 {
		return text
	}
	return rewriteRawText(text, l.linkCodeSegment)
}

// LinkVocab runs only the vocabulary-prefix pass.
func (l *Linker) LinkVocab(text string) string {
	return rewriteRawText(text, l.linkVocabSegment)
}

// LinkLocal runs only the local-anchor pass.
func (l *Linker) LinkLocal(text string) string {
	return rewriteRawText(text, l.linkLocalSegment)
}

// rewriteRawText applies fn to the raw-text stretches of an HTML fragment.
// Tag markup is copied through untouched, and text inside <a> elements is
// never handed to fn. This is the idempotency guarantee for all passes.
func rewriteRawText(text string, fn func(string) string) string {
	var out strings.Builder
	var seg strings.Builder
	flush := func() {
		if seg.Len() > 0 {
			out.WriteString(fn(seg.String()))
			seg.Reset()
		}
	}

	anchorDepth := 0
	i := 0
	for i < len(text) {
		if text[i] == '<' {
			end := strings.IndexByte(text[i:], '>')
			if end < 0 {
				seg.WriteString(text[i:])
				break
			}
			tag := text[i : i+end+1]
			flush()
			out.WriteString(tag)
			lower := strings.ToLower(tag)
			switch {
			case strings.HasPrefix(lower, "<a ") || lower == "<a>":
				anchorDepth++
			case strings.HasPrefix(lower, "</a"):
				if anchorDepth > 0 {
					anchorDepth--
				}
			}
			i += end + 1
			continue
		}
		if anchorDepth > 0 {
			out.WriteByte(text[i])
		} else {
			seg.WriteByte(text[i])
		}
		i++
	}
	flush()
	return out.String()
}

// identChar reports characters that may appear inside a code identifier.
// The colon is included so qualified names like Type::member stay whole.
func identChar(c byte) bool {
	return c == '_' || c == ':' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// linkCodeSegment replaces exact code-identifier tokens with links from the
// link map. A token is a maximal run of identifier characters, so a map
// entry never matches inside a longer identifier.
func (l *Linker) linkCodeSegment(text string) string {
	if len(l.codeMap) == 0 {
		return text
	}
	var b strings.Builder
	i := 0
	for i < len(text) {
		if !identChar(text[i]) {
			b.WriteByte(text[i])
			i++
			continue
		}
		j := i
		for j < len(text) && identChar(text[j]) {
			j++
		}
		token := text[i:j]
		if repl, ok := l.codeMap[token]; ok {
			b.WriteString(repl)
		} else {
			b.WriteString(token)
		}
		i = j
	}
	return b.String()
}

func nameChar(c byte) bool {
	return c == '_' || c == '-' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// linkVocabSegment resolves prefix:localname tokens. The ontology's own
// prefix links to an in-page anchor, with a warning when the target is not
// a classified term. A known external prefix reconstructs the full URI. An
// unknown prefix leaves the token untouched.
func (l *Linker) linkVocabSegment(text string) string {
	var b strings.Builder
	i := 0
	for i < len(text) {
		if !nameChar(text[i]) {
			b.WriteByte(text[i])
			i++
			continue
		}
		j := i
		for j < len(text) && nameChar(text[j]) {
			j++
		}
		if j >= len(text) || text[j] != ':' || j+1 >= len(text) || !nameChar(text[j+1]) {
			b.WriteString(text[i:j])
			i = j
			continue
		}
		k := j + 1
		for k < len(text) && nameChar(text[k]) {
			k++
		}
		b.WriteString(l.vocabLink(text[i:j], text[j+1:k]))
		i = k
	}
	return b.String()
}

func (l *Linker) vocabLink(prefix, name string) string {
	token := prefix + ":" + name
	if prefix == l.ont.Prefix {
		if !l.terms.Has(l.ont.Namespace + name) {
			l.warns.Warnf("link to undefined resource <%s>", token)
		}
		return fmt.Sprintf(`<a href="#%s">%s</a>`, name, name)
	}
	if ns, ok := l.prefixes[prefix]; ok {
		return fmt.Sprintf(`<a href="%s%s">%s</a>`, ns, name, token)
	}
	return token
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

// linkLocalSegment turns a whitespace-preceded #name reference into an
// in-page link when name is a classified term. An unresolved reference
// stays as text and records exactly one warning.
func (l *Linker) linkLocalSegment(text string) string {
	var b strings.Builder
	i := 0
	for i < len(text) {
		if text[i] != '#' || i == 0 || !isSpace(text[i-1]) {
			b.WriteByte(text[i])
			i++
			continue
		}
		j := i + 1
		for j < len(text) && nameChar(text[j]) {
			j++
		}
		name := text[i+1 : j]
		if name != "" && l.terms.Has(l.ont.Namespace+name) {
			b.WriteString(fmt.Sprintf(`<a href="#%s">%s</a>`, name, name))
		} else {
			if name != "" {
				l.warns.Warnf("link to undefined resource <%s>", name)
			}
			b.WriteString(text[i:j])
		}
		i = j
	}
	return b.String()
}

// Prettify prepares a rendered HTML fragment for the page: code blocks are
// highlighted, then the three link passes run, then the fragment is checked
// for well-formedness. A malformed fragment is kept, with a warning.
func (l *Linker) Prettify(subject string, fragment string, mk *markup.Renderer) string {
	out := mk.HighlightBlocks(fragment)
	out = l.Apply(out)
	if err := markup.CheckFragment(out); err != nil {
		l.warns.Warnf("invalid documentation for <%s>: %v", subject, err)
	}
	return out
}
