package cooccur

import "sort"

// topCentral is how many nodes each centrality ranking reports.
const topCentral = 10

// criticalPerMetric is how many top nodes per metric feed the
// critical-node union.
const criticalPerMetric = 5

// WordScore pairs a token with a centrality score.
type WordScore struct {
	Word  string
	Score float64
}

// MetricsReport summarizes the structure of a word graph. Centrality
// mappings are populated only for graphs of more than one node;
// Eigenvector is nil when the power iteration failed to converge.
// Partition falls back to a single degraded community when detection
// fails on graphs of more than two nodes.
type MetricsReport struct {
	NumNodes int
	NumEdges int
	Density  float64

	Degree      map[string]float64
	Betweenness map[string]float64
	Closeness   map[string]float64
	Eigenvector map[string]float64

	TopDegree      []WordScore
	TopBetweenness []WordScore
	TopCloseness   []WordScore
	TopEigenvector []WordScore

	// CriticalNodes is the deduplicated union of the top-5 nodes by
	// degree and by betweenness, degree entries first.
	CriticalNodes []string

	Partition Partition

	Warnings []string
}

// ComputeMetrics derives density, centrality rankings, critical nodes
// and community structure from a graph. Sub-computations degrade
// independently: a failed eigenvector solve or community detection is
// reported through Warnings while the rest of the report is still
// produced.
func ComputeMetrics(g *Graph) MetricsReport {
	report := MetricsReport{
		NumNodes: g.NumNodes(),
		NumEdges: g.NumEdges(),
		Density:  g.Density(),
	}

	if g.NumNodes() > 1 {
		report.Degree = DegreeCentrality(g)
		report.Betweenness = BetweennessCentrality(g)
		report.Closeness = ClosenessCentrality(g)

		report.TopDegree = rankScores(report.Degree, topCentral)
		report.TopBetweenness = rankScores(report.Betweenness, topCentral)
		report.TopCloseness = rankScores(report.Closeness, topCentral)

		eigen, err := EigenvectorCentrality(g)
		if err != nil {
			report.Warnings = append(report.Warnings,
				"eigenvector centrality did not converge; metric omitted")
		} else {
			report.Eigenvector = eigen
			report.TopEigenvector = rankScores(eigen, topCentral)
		}

		report.CriticalNodes = criticalNodes(report.TopDegree, report.TopBetweenness)
	}

	if g.NumNodes() > 2 {
		part, err := DetectCommunities(g)
		if err != nil {
			report.Partition = SingleCommunityFallback(g)
			report.Warnings = append(report.Warnings,
				"community detection failed; falling back to a single community")
		} else {
			report.Partition = part
		}
	}

	return report
}

// rankScores orders a score mapping descending, ties broken
// lexicographically by token.
func rankScores(scores map[string]float64, topN int) []WordScore {
	ranked := make([]WordScore, 0, len(scores))
	for word, score := range scores {
		ranked = append(ranked, WordScore{Word: word, Score: score})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Word < ranked[j].Word
	})
	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

func criticalNodes(topDegree, topBetweenness []WordScore) []string {
	seen := make(map[string]struct{})
	var critical []string
	add := func(ranked []WordScore) {
		limit := criticalPerMetric
		if len(ranked) < limit {
			limit = len(ranked)
		}
		for _, ws := range ranked[:limit] {
			if _, ok := seen[ws.Word]; ok {
				continue
			}
			seen[ws.Word] = struct{}{}
			critical = append(critical, ws.Word)
		}
	}
	add(topDegree)
	add(topBetweenness)
	return critical
}
