package cooccur

import (
	"sort"

	"github.com/newslens/newslens/pkg/newslens/internalerr"
)

// Community is a cohesive cluster of graph tokens.
type Community struct {
	Members []string // sorted lexicographically
	// AvgDegree is the mean whole-graph degree of the members.
	AvgDegree float64
}

// Partition is a disjoint cover of all graph nodes into communities.
type Partition struct {
	Communities []Community
	Modularity  float64
	// Degraded marks the single-community fallback taken when
	// detection failed, so callers can tell it apart from a graph
	// that genuinely forms one community.
	Degraded bool
}

// DetectCommunities partitions the graph by greedy modularity
// maximization: every node starts in its own community and the merge
// with the largest modularity gain is applied until no merge improves
// the score. Defined for graphs of more than two nodes; smaller graphs
// and edgeless graphs return internalerr.ErrInsufficientData, which
// callers turn into the degraded single-community fallback.
func DetectCommunities(g *Graph) (Partition, error) {
	n := g.NumNodes()
	m := g.NumEdges()
	if n <= 2 || m == 0 {
		return Partition{}, internalerr.ErrInsufficientData
	}

	// community id per token, community degree sums, and inter-community
	// edge counts
	comm := make(map[string]int, n)
	degSum := make(map[int]float64)
	for i, node := range g.Nodes {
		comm[node.Token] = i
		degSum[i] = float64(g.Degree(node.Token))
	}
	between := make(map[[2]int]float64)
	for _, e := range g.Edges {
		key := commKey(comm[e.A], comm[e.B])
		between[key]++
	}

	totalEdges := float64(m)
	twoM := 2 * totalEdges

	for {
		bestGain := 0.0
		var bestKey [2]int
		found := false

		keys := make([][2]int, 0, len(between))
		for key := range between {
			keys = append(keys, key)
		}
		// Sorted candidate order keeps merges deterministic on ties.
		sort.Slice(keys, func(i, j int) bool {
			if keys[i][0] != keys[j][0] {
				return keys[i][0] < keys[j][0]
			}
			return keys[i][1] < keys[j][1]
		})

		for _, key := range keys {
			gain := between[key]/totalEdges - 2*(degSum[key[0]]/twoM)*(degSum[key[1]]/twoM)
			if gain > bestGain {
				bestGain = gain
				bestKey = key
				found = true
			}
		}
		if !found {
			break
		}

		absorb(comm, degSum, between, bestKey[0], bestKey[1])
	}

	// Collect members per surviving community.
	grouped := make(map[int][]string)
	for _, node := range g.Nodes {
		id := comm[node.Token]
		grouped[id] = append(grouped[id], node.Token)
	}

	part := Partition{}
	for _, members := range grouped {
		sort.Strings(members)
		var degTotal float64
		for _, tok := range members {
			degTotal += float64(g.Degree(tok))
		}
		part.Communities = append(part.Communities, Community{
			Members:   members,
			AvgDegree: degTotal / float64(len(members)),
		})
	}
	sort.Slice(part.Communities, func(i, j int) bool {
		if len(part.Communities[i].Members) != len(part.Communities[j].Members) {
			return len(part.Communities[i].Members) > len(part.Communities[j].Members)
		}
		return part.Communities[i].Members[0] < part.Communities[j].Members[0]
	})

	part.Modularity = Modularity(g, part.Communities)
	return part, nil
}

// Modularity scores a partition: the fraction of edges inside
// communities minus the fraction expected under a random rewiring that
// preserves degrees.
func Modularity(g *Graph, communities []Community) float64 {
	m := float64(g.NumEdges())
	if m == 0 {
		return 0
	}
	comm := make(map[string]int, g.NumNodes())
	for i, c := range communities {
		for _, tok := range c.Members {
			comm[tok] = i
		}
	}

	intra := make(map[int]float64)
	for _, e := range g.Edges {
		if comm[e.A] == comm[e.B] {
			intra[comm[e.A]]++
		}
	}

	var q float64
	for i, c := range communities {
		var degTotal float64
		for _, tok := range c.Members {
			degTotal += float64(g.Degree(tok))
		}
		frac := degTotal / (2 * m)
		q += intra[i]/m - frac*frac
	}
	return q
}

// SingleCommunityFallback builds the degraded one-community partition
// covering every node.
func SingleCommunityFallback(g *Graph) Partition {
	members := g.Tokens()
	sort.Strings(members)
	var degTotal float64
	for _, tok := range members {
		degTotal += float64(g.Degree(tok))
	}
	avg := 0.0
	if len(members) > 0 {
		avg = degTotal / float64(len(members))
	}
	return Partition{
		Communities: []Community{{Members: members, AvgDegree: avg}},
		Modularity:  0,
		Degraded:    true,
	}
}

func commKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

// absorb merges community b into a, rewiring degree sums and
// inter-community edge counts.
func absorb(comm map[string]int, degSum map[int]float64, between map[[2]int]float64, a, b int) {
	for tok, id := range comm {
		if id == b {
			comm[tok] = a
		}
	}
	degSum[a] += degSum[b]
	delete(degSum, b)

	for key, count := range between {
		if key[0] != b && key[1] != b {
			continue
		}
		delete(between, key)
		other := key[0]
		if other == b {
			other = key[1]
		}
		if other == b || other == a {
			// b's internal edges and a-b edges become internal to a
			continue
		}
		between[commKey(a, other)] += count
	}
	delete(between, commKey(a, b))
}
