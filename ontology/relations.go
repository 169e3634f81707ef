package ontology

import (
	"sort"

	"github.com/c360studio/specdoc/rdf"
	"github.com/c360studio/specdoc/store"
	"github.com/c360studio/specdoc/vocabulary/core"
	"github.com/c360studio/specdoc/vocabulary/owl"
)

// Relations are the reverse domain/range indices: for each class URI, the
// properties that declare it as domain or range. Built in a single pass
// before any rendering, so class rendering never observes a partial index.
// Absent keys mean "no relation".
type Relations struct {
	domainOf map[string]map[string]bool
	rangeOf  map[string]map[string]bool
}

// BuildRelations scans every rdfs:domain and rdfs:range triple in the graph
// and inverts it onto the referenced classes. A blank object heading an
// owl:unionOf collection is unwound element by element; any other blank
// object is ignored. Registration is idempotent. A malformed union
// collection registers the elements recovered before the break and records
// a warning.
func BuildRelations(st *store.Store, warns *Warnings) *Relations {
	r := &Relations{
		domainOf: make(map[string]map[string]bool),
		rangeOf:  make(map[string]map[string]bool),
	}
	r.scan(st, core.Domain, r.domainOf, warns)
	r.scan(st, core.Range, r.rangeOf, warns)
	return r
}

func (r *Relations) scan(st *store.Store, predicate string, index map[string]map[string]bool, warns *Warnings) {
	pred := rdf.IRI(predicate)
	unionPred := rdf.IRI(owl.UnionOf)
	for _, t := range st.Match(nil, &pred, nil) {
		property := t.Subject
		if !property.IsIRI() {
			continue
		}
		obj := t.Object
		if union, ok := st.One(&obj, &unionPred, nil); ok {
			members, complete := Collection(st, union.Object)
			if !complete {
				warns.WarnOncef(union.Object.String(), "malformed union collection on <%s>", property.Value())
			}
			for _, m := range members {
				if m.IsIRI() {
					register(index, m.Value(), property.Value())
				}
			}
			continue
		}
		if obj.IsBlank() {
			continue
		}
		register(index, obj.Value(), property.Value())
	}
}

func register(index map[string]map[string]bool, class, property string) {
	set, ok := index[class]
	if !ok {
		set = make(map[string]bool)
		index[class] = set
	}
	set[property] = true
}

// DomainOf returns the sorted properties declaring the class as domain.
func (r *Relations) DomainOf(classURI string) []string {
	return sortedKeys(r.domainOf[classURI])
}

// RangeOf returns the sorted properties declaring the class as range.
func (r *Relations) RangeOf(classURI string) []string {
	return sortedKeys(r.rangeOf[classURI])
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
