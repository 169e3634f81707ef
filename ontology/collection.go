package ontology

import (
	"github.com/c360studio/specdoc/rdf"
	"github.com/c360studio/specdoc/store"
	"github.com/c360studio/specdoc/vocabulary/core"
)

// Collection unwinds an RDF first/rest chain starting at head into an
// ordered sequence. The second result is false when the chain is malformed:
// a link missing rdf:first or rdf:rest, or a cycle. The elements collected
// up to that point are still returned.
func Collection(st *store.Store, head rdf.Node) ([]rdf.Node, bool) {
	firstPred := rdf.IRI(core.First)
	restPred := rdf.IRI(core.Rest)

	var out []rdf.Node
	visited := make(map[string]bool)
	node := head
	for {
		if node.IsIRI() && node.Value() == core.Nil {
			return out, true
		}
		if visited[node.String()] {
			return out, false
		}
		visited[node.String()] = true

		first, okFirst := st.One(&node, &firstPred, nil)
		rest, okRest := st.One(&node, &restPred, nil)
		if !okFirst || !okRest {
			return out, false
		}
		out = append(out, first.Object)
		node = rest.Object
	}
}
