package dag

// newGraph builds the adjacency structure for edges, dropping duplicates.
func newGraph[V any, ID comparable](edges []Edge[V], identify func(V) ID) *graph[ID] {
	g := &graph[ID]{
		successors: make(map[ID][]ID),
		incoming:   make(map[ID]int),
	}
	seen := make(map[[2]ID]struct{}, len(edges))
	for _, e := range edges {
		from, to := identify(e.From), identify(e.To)
		if _, dup := seen[[2]ID{from, to}]; dup {
			continue
		}
		seen[[2]ID{from, to}] = struct{}{}

		if _, ok := g.successors[from]; !ok {
			g.firstSeen = append(g.firstSeen, from)
		}
		g.successors[from] = append(g.successors[from], to)
		g.incoming[to]++
		g.live++
	}
	return g
}

// entries returns the vertices with outgoing edges and no incoming ones, in
// first-seen order.
func (g *graph[ID]) entries() []ID {
	var out []ID
	for _, id := range g.firstSeen {
		if g.incoming[id] == 0 {
			out = append(out, id)
		}
	}
	return out
}

// Sort returns a topological order of every vertex that appears in edges,
// using identify to project each endpoint onto its identity.
//
// It is Kahn's algorithm driven by a stack: when several vertices are ready at
// once, the most recently pushed one is emitted first. Only the relative order
// of dependent vertices is guaranteed. A NotADagError is returned when no entry
// vertex exists or when edges remain after the stack empties.
func Sort[V any, ID comparable](edges []Edge[V], identify func(V) ID) ([]ID, error) {
	g := newGraph(edges, identify)
	if g.live == 0 {
		return []ID{}, nil
	}

	stack := g.entries()
	if len(stack) == 0 {
		return nil, &NotADagError{Reason: "no entry vertices", Remaining: g.live}
	}

	result := make([]ID, 0, len(g.incoming)+len(stack))
	for len(stack) > 0 {
		vertex := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		result = append(result, vertex)

		tos := g.successors[vertex]
		delete(g.successors, vertex)
		for i := len(tos) - 1; i >= 0; i-- {
			to := tos[i]
			g.live--
			g.incoming[to]--
			if g.incoming[to] == 0 {
				stack = append(stack, to)
			}
		}
	}

	if g.live > 0 {
		return nil, &NotADagError{Reason: "edges remain after sorting", Remaining: g.live}
	}
	return result, nil
}
