package cooccur

import "sort"

// maxDisplaySize caps the rendered node size hint.
const maxDisplaySize = 50

// Node is a token in the word graph. Weight is the sum of counts of
// every extracted pair containing the token, not just surviving edges.
type Node struct {
	Token       string
	Weight      int
	DisplaySize int
}

// Edge is an undirected weighted edge between two graph tokens,
// canonicalized so A < B.
type Edge struct {
	A, B   string
	Weight int
}

// Graph is an explicit adjacency representation of the word
// co-occurrence network. It owns its node and edge lists and carries
// no external handles, so callers can serialize it directly.
type Graph struct {
	Nodes []Node
	Edges []Edge

	index map[string]int            // token -> position in Nodes
	adj   map[string]map[string]int // token -> neighbor -> edge weight
}

// BuildGraph selects the maxNodes tokens with the highest total pair
// weight and connects them with every pair whose count is at least
// minEdgeWeight. Ties in the top-K selection are broken by token,
// lexicographically ascending, so the node set is independent of map
// iteration order. An empty pair mapping yields an empty graph.
func BuildGraph(pairs map[Pair]int, minEdgeWeight, maxNodes int) *Graph {
	g := &Graph{
		index: make(map[string]int),
		adj:   make(map[string]map[string]int),
	}
	if len(pairs) == 0 {
		return g
	}

	weights := make(map[string]int)
	for p, count := range pairs {
		weights[p.A] += count
		weights[p.B] += count
	}

	ranked := make([]Node, 0, len(weights))
	for token, weight := range weights {
		ranked = append(ranked, Node{Token: token, Weight: weight})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Weight != ranked[j].Weight {
			return ranked[i].Weight > ranked[j].Weight
		}
		return ranked[i].Token < ranked[j].Token
	})
	if maxNodes > 0 && len(ranked) > maxNodes {
		ranked = ranked[:maxNodes]
	}

	for _, n := range ranked {
		n.DisplaySize = n.Weight * 2
		if n.DisplaySize > maxDisplaySize {
			n.DisplaySize = maxDisplaySize
		}
		g.index[n.Token] = len(g.Nodes)
		g.Nodes = append(g.Nodes, n)
		g.adj[n.Token] = make(map[string]int)
	}

	for p, count := range pairs {
		if count < minEdgeWeight {
			continue
		}
		if !g.Has(p.A) || !g.Has(p.B) {
			continue
		}
		g.Edges = append(g.Edges, Edge{A: p.A, B: p.B, Weight: count})
		g.adj[p.A][p.B] = count
		g.adj[p.B][p.A] = count
	}
	sort.Slice(g.Edges, func(i, j int) bool {
		if g.Edges[i].A != g.Edges[j].A {
			return g.Edges[i].A < g.Edges[j].A
		}
		return g.Edges[i].B < g.Edges[j].B
	})

	return g
}

// NumNodes returns the node count.
func (g *Graph) NumNodes() int { return len(g.Nodes) }

// NumEdges returns the edge count.
func (g *Graph) NumEdges() int { return len(g.Edges) }

// Has reports whether the token is a graph node.
func (g *Graph) Has(token string) bool {
	_, ok := g.index[token]
	return ok
}

// Degree returns the number of neighbors of a token.
func (g *Graph) Degree(token string) int {
	return len(g.adj[token])
}

// Neighbors returns a token's neighbors in lexicographic order.
func (g *Graph) Neighbors(token string) []string {
	nbrs := make([]string, 0, len(g.adj[token]))
	for nbr := range g.adj[token] {
		nbrs = append(nbrs, nbr)
	}
	sort.Strings(nbrs)
	return nbrs
}

// Tokens returns all node tokens in node-list order
// (weight descending, then lexicographic).
func (g *Graph) Tokens() []string {
	tokens := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		tokens[i] = n.Token
	}
	return tokens
}

// Density is edges over possible edges, 0 for graphs of one node or fewer.
func (g *Graph) Density() float64 {
	n := len(g.Nodes)
	if n <= 1 {
		return 0
	}
	possible := float64(n*(n-1)) / 2
	return float64(len(g.Edges)) / possible
}
