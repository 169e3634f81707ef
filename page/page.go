package page

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/c360studio/specdoc/markup"
	"github.com/c360studio/specdoc/store"
)

// Substitute replaces every @KEY@ placeholder in the template with its
// value. Keys absent from the map stay in place, which the final
// well-formedness check then reports.
func Substitute(template string, subs map[string]string) string {
	pairs := make([]string, 0, len(subs)*2)
	for k, v := range subs {
		pairs = append(pairs, "@"+k+"@", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// PrefixesHTML renders the discovered namespace bindings as a row of links,
// skipping file-URI namespaces.
func PrefixesHTML(st *store.Store) string {
	var b strings.Builder
	b.WriteString("<span>")
	for _, prefix := range st.SortedPrefixes() {
		uri := st.Prefixes()[prefix]
		if strings.HasPrefix(uri, "file:") {
			continue
		}
		fmt.Fprintf(&b, `<a href="%s">%s</a> `, uri, markup.Escape(prefix))
	}
	b.WriteString("</span>")
	return b.String()
}

// BuildStamp returns the build date and time strings for the page footer.
// SOURCE_DATE_EPOCH overrides the clock so repeated builds of an unchanged
// ontology are byte-identical.
func BuildStamp() (date string, datetime string) {
	now := time.Now().UTC()
	if epoch := os.Getenv("SOURCE_DATE_EPOCH"); epoch != "" {
		if sec, err := strconv.ParseInt(epoch, 10, 64); err == nil {
			now = time.Unix(sec, 0).UTC()
		}
	}
	return now.Format("2006-01-02"), now.Format("2006-01-02 15:04 UTC")
}

// MailRow renders the mailing-list table row, or "" when no list address is
// configured.
func MailRow(listEmail, listPage string) string {
	if listEmail == "" {
		return ""
	}
	row := fmt.Sprintf(`<tr><th>Discuss</th><td><a href="mailto:%s">%s</a>`, listEmail, listEmail)
	if listPage != "" {
		row += fmt.Sprintf(` <a href="%s">(subscribe)</a>`, listPage)
	}
	row += "</td></tr>"
	return row
}
