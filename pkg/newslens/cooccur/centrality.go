package cooccur

import (
	"math"

	"github.com/newslens/newslens/pkg/newslens/internalerr"
)

// Eigenvector centrality solver bounds.
const (
	eigenMaxIter = 1000
	eigenTol     = 1e-6
)

// DegreeCentrality is each node's degree divided by n-1.
func DegreeCentrality(g *Graph) map[string]float64 {
	n := g.NumNodes()
	out := make(map[string]float64, n)
	if n <= 1 {
		return out
	}
	scale := 1.0 / float64(n-1)
	for _, node := range g.Nodes {
		out[node.Token] = float64(g.Degree(node.Token)) * scale
	}
	return out
}

// ClosenessCentrality is the inverse average shortest-path distance
// from each node to the nodes it can reach, scaled by the fraction of
// the graph that is reachable so that nodes in small components do not
// dominate.
func ClosenessCentrality(g *Graph) map[string]float64 {
	n := g.NumNodes()
	out := make(map[string]float64, n)
	if n <= 1 {
		return out
	}
	for _, node := range g.Nodes {
		dists := bfsDistances(g, node.Token)
		total := 0
		for _, d := range dists {
			total += d
		}
		reachable := len(dists) // includes the source at distance 0
		if total == 0 {
			out[node.Token] = 0
			continue
		}
		closeness := float64(reachable-1) / float64(total)
		closeness *= float64(reachable-1) / float64(n-1)
		out[node.Token] = closeness
	}
	return out
}

// BetweennessCentrality computes normalized betweenness via Brandes'
// accumulation over BFS shortest paths. Scores are the fraction of all
// shortest paths passing through each node.
func BetweennessCentrality(g *Graph) map[string]float64 {
	n := g.NumNodes()
	out := make(map[string]float64, n)
	for _, node := range g.Nodes {
		out[node.Token] = 0
	}
	if n <= 2 {
		return out
	}

	for _, source := range g.Nodes {
		s := source.Token

		var stack []string
		preds := make(map[string][]string)
		sigma := map[string]float64{s: 1}
		dist := map[string]int{s: 0}

		queue := []string{s}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			stack = append(stack, v)
			for _, w := range g.Neighbors(v) {
				if _, seen := dist[w]; !seen {
					dist[w] = dist[v] + 1
					queue = append(queue, w)
				}
				if dist[w] == dist[v]+1 {
					sigma[w] += sigma[v]
					preds[w] = append(preds[w], v)
				}
			}
		}

		delta := make(map[string]float64)
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range preds[w] {
				delta[v] += sigma[v] / sigma[w] * (1 + delta[w])
			}
			if w != s {
				out[w] += delta[w]
			}
		}
	}

	// Each undirected pair was counted from both endpoints; fold that
	// into the normalization over (n-1)(n-2)/2 pairs.
	scale := 1.0 / float64((n-1)*(n-2))
	for token := range out {
		out[token] *= scale
	}
	return out
}

// EigenvectorCentrality approximates the principal eigenvector of the
// adjacency matrix by power iteration, capped at eigenMaxIter rounds.
// Returns internalerr.ErrNonConvergence when the iteration does not
// settle within the cap; callers are expected to omit the metric
// rather than abort.
func EigenvectorCentrality(g *Graph) (map[string]float64, error) {
	n := g.NumNodes()
	if n <= 1 {
		return map[string]float64{}, nil
	}

	x := make(map[string]float64, n)
	for _, node := range g.Nodes {
		x[node.Token] = 1.0 / float64(n)
	}

	for iter := 0; iter < eigenMaxIter; iter++ {
		next := make(map[string]float64, n)
		for _, node := range g.Nodes {
			sum := x[node.Token] // self term keeps isolated nodes stable
			for nbr := range g.adj[node.Token] {
				sum += x[nbr]
			}
			next[node.Token] = sum
		}

		var norm float64
		for _, v := range next {
			norm += v * v
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			norm = 1
		}
		var diff float64
		for token, v := range next {
			v /= norm
			next[token] = v
			diff += math.Abs(v - x[token])
		}
		x = next

		if diff < float64(n)*eigenTol {
			return x, nil
		}
	}

	return nil, internalerr.ErrNonConvergence
}

// bfsDistances returns hop counts from source to every reachable node,
// source included at distance 0.
func bfsDistances(g *Graph, source string) map[string]int {
	dist := map[string]int{source: 0}
	queue := []string{source}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for nbr := range g.adj[v] {
			if _, seen := dist[nbr]; !seen {
				dist[nbr] = dist[v] + 1
				queue = append(queue, nbr)
			}
		}
	}
	return dist
}
