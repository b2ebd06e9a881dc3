// Package maintenance keeps the store bounded between analysis runs.
package maintenance

import (
	"context"
	"errors"
	"time"

	"github.com/newslens/newslens/pkg/newslens/store"
)

// Default retention periods.
const (
	DefaultArticleTTL = 90 * 24 * time.Hour
	DefaultReportTTL  = 30 * 24 * time.Hour
)

// Pruner removes articles and reports past their retention period.
type Pruner struct {
	Store      store.Store
	ArticleTTL time.Duration
	ReportTTL  time.Duration
}

// Result summarizes a pruning run.
type Result struct {
	ArticlesRemoved int64
	ReportsRemoved  int64
}

// Prune deletes everything older than the configured retention,
// measured back from now. Zero TTLs fall back to the defaults.
func (p *Pruner) Prune(ctx context.Context, now time.Time) (Result, error) {
	var res Result
	if p.Store == nil {
		return res, errors.New("pruner: store required")
	}

	articleTTL := p.ArticleTTL
	if articleTTL <= 0 {
		articleTTL = DefaultArticleTTL
	}
	reportTTL := p.ReportTTL
	if reportTTL <= 0 {
		reportTTL = DefaultReportTTL
	}

	removed, err := p.Store.DeleteArticlesBefore(ctx, now.Add(-articleTTL))
	if err != nil {
		return res, err
	}
	res.ArticlesRemoved = removed

	removed, err = p.Store.DeleteReportsBefore(ctx, now.Add(-reportTTL))
	if err != nil {
		return res, err
	}
	res.ReportsRemoved = removed

	return res, nil
}
