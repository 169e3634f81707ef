package markup

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietRenderer() *Renderer {
	return NewRenderer(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRenderer_Markdown(t *testing.T) {
	r := quietRenderer()
	out, err := r.Markdown("Some *emphasis* and a [link](http://example.org/).")
	require.NoError(t, err)
	assert.Contains(t, out, "<em>emphasis</em>")
	assert.Contains(t, out, `<a href="http://example.org/">link</a>`)
}

func TestRenderer_Markdown_TableSectionsStripped(t *testing.T) {
	r := quietRenderer()
	out, err := r.Markdown("| A | B |\n|---|---|\n| 1 | 2 |\n")
	require.NoError(t, err)
	assert.Contains(t, out, "<table>")
	assert.NotContains(t, out, "<thead>")
	assert.NotContains(t, out, "<tbody>")
}

func TestRenderer_Markdown_RawHTMLPassesThrough(t *testing.T) {
	r := quietRenderer()
	out, err := r.Markdown(`Text with <span class="x">markup</span> inline.`)
	require.NoError(t, err)
	assert.Contains(t, out, `<span class="x">markup</span>`)
}

func TestRenderer_Highlight(t *testing.T) {
	r := quietRenderer()
	out := r.Highlight("int main(void) { return 0; }", "c")
	assert.Contains(t, out, "<pre")
	assert.Contains(t, out, "main")
}

func TestRenderer_Highlight_UnknownLanguageFallsBack(t *testing.T) {
	r := quietRenderer()
	out := r.Highlight("a < b", "no-such-language")
	assert.Equal(t, "<pre>a &lt; b</pre>", out)
}

func TestRenderer_HighlightBlocks(t *testing.T) {
	r := quietRenderer()
	doc := `<p>before</p><pre class="c-code">int x = 1 &amp; 2;</pre><p>after</p>`
	out := r.HighlightBlocks(doc)
	assert.Contains(t, out, "<p>before</p>")
	assert.Contains(t, out, "<p>after</p>")
	assert.NotContains(t, out, `<pre class="c-code">`)
	// The entity was unescaped before highlighting.
	assert.NotContains(t, out, "&amp;amp;")
}

func TestRenderer_HighlightBlocks_NoBlocksUnchanged(t *testing.T) {
	r := quietRenderer()
	doc := "<p>plain</p>"
	assert.Equal(t, doc, r.HighlightBlocks(doc))
}

func TestRenderer_RawHTML(t *testing.T) {
	r := quietRenderer()
	out, err := r.RawHTML("<p>fine</p>")
	require.NoError(t, err)
	assert.Equal(t, "<p>fine</p>", out)

	out, err = r.RawHTML("<p><em>oops</p>")
	assert.Error(t, err)
	assert.Equal(t, "<p><em>oops</p>", out)
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "a &lt;b&gt; &amp; c", Escape("a <b> & c"))
}

func TestCheckFragment(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		wantErr  bool
	}{
		{"balanced", "<div><p>text</p></div>", false},
		{"void element", "<p>line<br/>break</p>", false},
		{"unclosed", "<div><p>text</div>", true},
		{"stray close", "</p>", true},
		{"empty", "", false},
		{"text only", "no markup at all", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckFragment(tt.fragment)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckFragment_DeepNesting(t *testing.T) {
	frag := strings.Repeat("<div>", 50) + "x" + strings.Repeat("</div>", 50)
	assert.NoError(t, CheckFragment(frag))
}
