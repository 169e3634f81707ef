package store

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	krdf "github.com/knakk/rdf"

	"github.com/c360studio/specdoc/rdf"
	"github.com/c360studio/specdoc/vocabulary/core"
)

// Loader reads Turtle documents into a Store.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a loader. A nil logger falls back to slog.Default.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// LoadBundle loads a specification bundle into a fresh store: the sibling
// manifest.ttl when present, the spec document itself, and then every
// file-URI Turtle document reachable through rdfs:seeAlso, recursively.
func (l *Loader) LoadBundle(specPath string) (*Store, error) {
	s := New()

	abs, err := filepath.Abs(specPath)
	if err != nil {
		return nil, fmt.Errorf("resolve spec path: %w", err)
	}

	manifest := filepath.Join(filepath.Dir(abs), "manifest.ttl")
	if _, err := os.Stat(manifest); err == nil {
		if err := l.LoadFile(s, manifest); err != nil {
			return nil, err
		}
	}

	if err := l.LoadFile(s, abs); err != nil {
		return nil, err
	}

	// Follow seeAlso links until no new local Turtle files appear.
	loaded := map[string]bool{abs: true, manifest: true}
	for {
		added := false
		seeAlso := rdf.IRI(core.SeeAlso)
		for _, t := range s.Match(nil, &seeAlso, nil) {
			if !t.Object.IsIRI() || !strings.HasPrefix(t.Object.Value(), "file://") {
				continue
			}
			path := strings.TrimPrefix(t.Object.Value(), "file://")
			if loaded[path] || !strings.HasSuffix(path, ".ttl") {
				continue
			}
			loaded[path] = true
			if err := l.LoadFile(s, path); err != nil {
				l.logger.Warn("failed to load seeAlso document",
					slog.String("path", path), slog.String("error", err.Error()))
				continue
			}
			added = true
		}
		if !added {
			break
		}
	}

	l.logger.Debug("bundle loaded",
		slog.String("spec", abs), slog.Int("triples", s.Len()))
	return s, nil
}

// LoadFile parses a single Turtle document into the store, recording any
// prefix bindings declared in it.
func (l *Loader) LoadFile(s *Store, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	scanPrefixes(s, string(data))

	dec := krdf.NewTripleDecoder(strings.NewReader(string(data)), krdf.Turtle)
	for {
		t, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		s.Add(convertTriple(t))
	}
	return nil
}

// convertTriple maps a decoded triple onto the internal tagged node model.
func convertTriple(t krdf.Triple) rdf.Triple {
	return rdf.Triple{
		Subject:   convertTerm(t.Subj),
		Predicate: convertTerm(t.Pred),
		Object:    convertTerm(t.Obj),
	}
}

func convertTerm(term krdf.Term) rdf.Node {
	switch v := term.(type) {
	case krdf.IRI:
		return rdf.IRI(v.String())
	case krdf.Blank:
		return rdf.Blank(strings.TrimPrefix(v.String(), "_:"))
	case krdf.Literal:
		if v.Lang() != "" {
			return rdf.LangLiteral(v.String(), v.Lang())
		}
		dt := v.DataType.String()
		if dt == "" || dt == core.XSDNamespace+"string" {
			return rdf.Literal(v.String())
		}
		return rdf.TypedLiteral(v.String(), dt)
	default:
		return rdf.Literal(term.String())
	}
}

// scanPrefixes records @prefix and SPARQL-style PREFIX declarations. The
// Turtle decoder resolves prefixed names itself but does not surface the
// bindings, which cross-linking needs.
func scanPrefixes(s *Store, doc string) {
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)
		lower := strings.ToLower(line)
		var rest string
		switch {
		case strings.HasPrefix(lower, "@prefix"):
			rest = strings.TrimSpace(line[len("@prefix"):])
		case strings.HasPrefix(lower, "prefix "):
			rest = strings.TrimSpace(line[len("prefix"):])
		default:
			continue
		}
		colon := strings.Index(rest, ":")
		if colon < 0 {
			continue
		}
		prefix := strings.TrimSpace(rest[:colon])
		open := strings.Index(rest, "<")
		end := strings.Index(rest, ">")
		if open < 0 || end < open {
			continue
		}
		uri := rest[open+1 : end]
		if uri == "" {
			continue
		}
		s.AddPrefix(prefix, uri)
	}
}
