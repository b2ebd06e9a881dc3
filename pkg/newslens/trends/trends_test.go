package trends

import (
	"testing"
	"time"

	"github.com/newslens/newslens/pkg/newslens/cooccur"
)

func day(offset int) time.Time {
	return time.Date(2026, 8, 1, 12, 30, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func TestDailyVolumeBuckets(t *testing.T) {
	records := []Record{
		{Published: day(0)},
		{Published: day(0)},
		{Published: day(2)},
	}
	report := DailyVolume(records)

	if len(report.Days) != 3 {
		t.Fatalf("expected 3 contiguous days, got %d", len(report.Days))
	}
	if report.Days[0].Count != 2 || report.Days[1].Count != 0 || report.Days[2].Count != 1 {
		t.Errorf("unexpected daily counts: %+v", report.Days)
	}
	if report.FirstDay != Day(day(0)) || report.LastDay != Day(day(2)) {
		t.Errorf("date range wrong: %v .. %v", report.FirstDay, report.LastDay)
	}
	if report.Peaks[0].Count != 2 {
		t.Errorf("peak day should have count 2, got %+v", report.Peaks[0])
	}
}

func TestDailyVolumeEmpty(t *testing.T) {
	report := DailyVolume(nil)
	if len(report.Days) != 0 || report.NumDocs != 0 {
		t.Errorf("empty input should yield an empty report, got %+v", report)
	}
}

func TestDailyVolumeTrendSmoothing(t *testing.T) {
	var records []Record
	for i := 0; i < 3; i++ {
		records = append(records, Record{Published: day(i)})
	}
	report := DailyVolume(records)

	// One article per day: every trailing average is exactly 1.
	for _, d := range report.Days {
		if d.Trend != 1.0 {
			t.Errorf("day %v trend: expected 1.0, got %f", d.Day, d.Trend)
		}
		if d.Anomaly {
			t.Errorf("flat series should have no anomalies, got %v", d)
		}
	}
}

func TestDailyVolumeAnomaly(t *testing.T) {
	var records []Record
	for i := 0; i < 9; i++ {
		records = append(records, Record{Published: day(i)})
	}
	// A spike on the last day.
	for i := 0; i < 30; i++ {
		records = append(records, Record{Published: day(9)})
	}
	report := DailyVolume(records)

	last := report.Days[len(report.Days)-1]
	if !last.Anomaly {
		t.Errorf("spike day should be flagged, got %+v", last)
	}
	if report.Days[0].Anomaly {
		t.Errorf("baseline day should not be flagged, got %+v", report.Days[0])
	}
}

func TestKeywordVolume(t *testing.T) {
	records := []Record{
		{Title: "Ekonomi krizi derinleşiyor", Published: day(0)},
		{Title: "Spor haberleri", Published: day(0)},
		{Summary: "ekonomi toparlanıyor", Published: day(1)},
	}
	days := KeywordVolume(records, "Ekonomi")

	if len(days) != 2 {
		t.Fatalf("expected 2 days of keyword volume, got %d", len(days))
	}
	if days[0].Count != 1 || days[1].Count != 1 {
		t.Errorf("unexpected keyword counts: %+v", days)
	}

	if days := KeywordVolume(records, "deprem"); days != nil {
		t.Errorf("absent keyword should yield nil, got %v", days)
	}
}

func TestKeywordVolumeDayRange(t *testing.T) {
	// The batch spans four days but the keyword only appears on the
	// middle two; the series covers just the matching range.
	records := []Record{
		{Title: "Spor haberleri", Published: day(0)},
		{Title: "Ekonomi krizi", Published: day(1)},
		{Title: "Ekonomi toparlanıyor", Published: day(2)},
		{Title: "Hava durumu", Published: day(3)},
	}
	days := KeywordVolume(records, "ekonomi")

	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}
	if !days[0].Day.Equal(Day(day(1))) || !days[1].Day.Equal(Day(day(2))) {
		t.Errorf("series should span only matching days: %+v", days)
	}
}

func TestPairTrends(t *testing.T) {
	records := []Record{
		{Title: "ekonomi kriz", Published: day(0)},
		{Title: "ekonomi kriz", Published: day(1)},
		{Title: "spor futbol", Published: day(1)},
	}
	tokensFor := func(r Record) []string {
		switch r.Title {
		case "ekonomi kriz":
			return []string{"ekonomi", "kriz"}
		default:
			return []string{"spor", "futbol"}
		}
	}
	params := cooccur.Params{WindowSize: 3, MinPairCount: 1}

	trends := PairTrends(records, tokensFor, params, 10)
	if len(trends) != 2 {
		t.Fatalf("expected 2 pair trends, got %d", len(trends))
	}
	eco := trends[0]
	if eco.Pair != cooccur.NewPair("ekonomi", "kriz") {
		t.Fatalf("heaviest pair should lead, got %+v", eco.Pair)
	}
	if len(eco.Counts) != 2 || eco.Counts[0] != 1 || eco.Counts[1] != 1 {
		t.Errorf("unexpected series for (ekonomi, kriz): %v", eco.Counts)
	}
	spor := trends[1]
	if spor.Counts[0] != 0 || spor.Counts[1] != 1 {
		t.Errorf("unexpected series for (futbol, spor): %v", spor.Counts)
	}
}
