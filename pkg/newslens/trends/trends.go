// Package trends derives temporal volume signals from article publish
// times: daily counts, moving-average trends, peak days, volume
// anomalies and per-day co-occurrence pair trajectories.
package trends

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/newslens/newslens/pkg/newslens/cooccur"
)

// Moving-average windows for corpus volume and keyword trends.
const (
	VolumeWindow  = 7
	KeywordWindow = 3
)

// peakDays is how many peak days the volume report lists.
const peakDays = 5

// anomalyZ flags a day whose count sits this many standard deviations
// from the mean daily volume.
const anomalyZ = 2.0

// Record is the minimal input: when an article was published and the
// text used for keyword matching.
type Record struct {
	Title     string
	Summary   string
	Source    string
	Published time.Time
}

// DayCount is one day's article volume with its smoothed trend value
// and anomaly flag.
type DayCount struct {
	Day     time.Time // truncated to UTC midnight
	Count   int
	Trend   float64
	Anomaly bool
}

// VolumeReport summarizes daily article volume across the batch.
type VolumeReport struct {
	Days     []DayCount
	Peaks    []DayCount // top days by count, descending
	NumDocs  int
	FirstDay time.Time
	LastDay  time.Time
}

// PairTrend is one co-occurrence pair's per-day count series, aligned
// with the Days slice of the volume report for the same batch.
type PairTrend struct {
	Pair   cooccur.Pair
	Counts []int
}

// DailyVolume buckets records by UTC day and computes a moving-average
// trend plus z-score anomaly flags. Days with no articles between the
// first and last day are filled with zero counts so trends stay
// contiguous.
func DailyVolume(records []Record) VolumeReport {
	report := VolumeReport{NumDocs: len(records)}
	if len(records) == 0 {
		return report
	}

	counts := make(map[time.Time]int)
	var first, last time.Time
	for _, r := range records {
		day := Day(r.Published)
		counts[day]++
		if first.IsZero() || day.Before(first) {
			first = day
		}
		if last.IsZero() || day.After(last) {
			last = day
		}
	}
	report.FirstDay = first
	report.LastDay = last

	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		report.Days = append(report.Days, DayCount{Day: day, Count: counts[day]})
	}

	applyTrend(report.Days, VolumeWindow)
	flagAnomalies(report.Days)

	peaks := make([]DayCount, len(report.Days))
	copy(peaks, report.Days)
	sort.SliceStable(peaks, func(i, j int) bool {
		return peaks[i].Count > peaks[j].Count
	})
	if len(peaks) > peakDays {
		peaks = peaks[:peakDays]
	}
	report.Peaks = peaks

	return report
}

// KeywordVolume counts, per day, the articles whose title or summary
// contains the keyword (case-insensitive), smoothed over a three-day
// window. The day range spans only the matching articles' publish
// dates, which can be narrower than the full batch's.
func KeywordVolume(records []Record, keyword string) []DayCount {
	kw := strings.ToLower(keyword)
	matching := make([]Record, 0, len(records))
	for _, r := range records {
		text := strings.ToLower(r.Title + " " + r.Summary)
		if strings.Contains(text, kw) {
			matching = append(matching, r)
		}
	}
	if len(matching) == 0 {
		return nil
	}

	report := DailyVolume(matching)
	days := report.Days
	applyTrend(days, KeywordWindow)
	return days
}

// PairTrends groups records by day, extracts co-occurrence pairs per
// day with the given parameters, and returns each pair's daily count
// series ordered by total count descending (ties by canonical pair
// key). tokensFor supplies the cleaned token sequence for a record.
func PairTrends(records []Record, tokensFor func(Record) []string, params cooccur.Params, topN int) []PairTrend {
	if len(records) == 0 {
		return nil
	}

	byDay := make(map[time.Time][][]string)
	var first, last time.Time
	for _, r := range records {
		day := Day(r.Published)
		byDay[day] = append(byDay[day], tokensFor(r))
		if first.IsZero() || day.Before(first) {
			first = day
		}
		if last.IsZero() || day.After(last) {
			last = day
		}
	}

	var days []time.Time
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}

	daily := make([]map[cooccur.Pair]int, len(days))
	totals := make(map[cooccur.Pair]int)
	for i, day := range days {
		seqs := byDay[day]
		if len(seqs) == 0 {
			daily[i] = map[cooccur.Pair]int{}
			continue
		}
		pairs := cooccur.ExtractPairs(seqs, params.WindowSize, params.MinPairCount)
		daily[i] = pairs
		for p, count := range pairs {
			totals[p] += count
		}
	}

	ranked := make([]cooccur.Pair, 0, len(totals))
	for p := range totals {
		ranked = append(ranked, p)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if totals[ranked[i]] != totals[ranked[j]] {
			return totals[ranked[i]] > totals[ranked[j]]
		}
		if ranked[i].A != ranked[j].A {
			return ranked[i].A < ranked[j].A
		}
		return ranked[i].B < ranked[j].B
	})
	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}

	trends := make([]PairTrend, len(ranked))
	for i, p := range ranked {
		series := make([]int, len(days))
		for d := range days {
			series[d] = daily[d][p]
		}
		trends[i] = PairTrend{Pair: p, Counts: series}
	}
	return trends
}

// Day truncates a timestamp to UTC midnight.
func Day(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// applyTrend writes a trailing moving average over the counts, using
// as many days as are available at the start of the series.
func applyTrend(days []DayCount, window int) {
	for i := range days {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		sum := 0
		for j := start; j <= i; j++ {
			sum += days[j].Count
		}
		days[i].Trend = float64(sum) / float64(i-start+1)
	}
}

// flagAnomalies marks days whose count deviates from the mean by more
// than anomalyZ standard deviations. Needs at least three days of
// signal; flat series produce no anomalies.
func flagAnomalies(days []DayCount) {
	if len(days) < 3 {
		return
	}
	var sum float64
	for _, d := range days {
		sum += float64(d.Count)
	}
	mean := sum / float64(len(days))

	var variance float64
	for _, d := range days {
		diff := float64(d.Count) - mean
		variance += diff * diff
	}
	stddev := math.Sqrt(variance / float64(len(days)))
	if stddev == 0 {
		return
	}

	for i := range days {
		z := (float64(days[i].Count) - mean) / stddev
		if math.Abs(z) > anomalyZ {
			days[i].Anomaly = true
		}
	}
}
