// Package linkmap builds the code-symbol link map from a Doxygen tag file.
// The map is populated once at startup and read-only afterwards: it maps a
// bare identifier like LV2_Descriptor to a pre-rendered hyperlink fragment.
package linkmap

import (
	"encoding/xml"
	"fmt"
	"os"
	"path"
	"strings"
)

// Map is the symbol-to-hyperlink mapping consumed by the cross-linker.
type Map map[string]string

type tagFile struct {
	Compounds []compound `xml:"compound"`
}

type compound struct {
	Kind     string   `xml:"kind,attr"`
	Name     string   `xml:"name"`
	Filename string   `xml:"filename"`
	Anchor   string   `xml:"anchor"`
	Members  []member `xml:"member"`
}

type member struct {
	Name       string `xml:"name"`
	AnchorFile string `xml:"anchorfile"`
	Anchor     string `xml:"anchor"`
}

// Load parses a Doxygen tag file and returns the symbol map, with every
// link rooted at docdir. An empty path or docdir yields an empty map.
func Load(tagsPath, docdir string) (Map, error) {
	if tagsPath == "" || docdir == "" {
		return Map{}, nil
	}

	data, err := os.ReadFile(tagsPath)
	if err != nil {
		return nil, fmt.Errorf("read tags file: %w", err)
	}

	var tf tagFile
	if err := xml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parse tags file: %w", err)
	}

	m := make(Map)
	for _, c := range tf.Compounds {
		if c.Kind == "page" {
			continue
		}

		filename := c.Filename
		if !strings.HasSuffix(filename, ".html") {
			filename += ".html"
		}

		// Groups only contribute their members, not themselves.
		if c.Kind != "group" {
			m[c.Name] = link(docdir, filename, c.Anchor, c.Name)
		}

		prefix := ""
		if c.Kind == "struct" {
			prefix = c.Name + "::"
		}
		for _, mem := range c.Members {
			name := prefix + mem.Name
			m[name] = link(docdir, mem.AnchorFile, mem.Anchor, name)
		}
	}
	return m, nil
}

func link(docdir, filename, anchor, symbol string) string {
	href := path.Join(docdir, filename)
	if anchor != "" {
		href += "#" + anchor
	}
	return fmt.Sprintf(`<span><a href="%s">%s</a></span>`, href, symbol)
}
