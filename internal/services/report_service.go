// Package services orchestrates the lookup, fetch-all and aggregation stages
// behind the dashboard.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"despesas/internal/cache"
	"despesas/internal/camara"
	"despesas/internal/core"
	"despesas/internal/metrics"
)

// ErrDeputyNotFound signals that the directory search returned zero results.
// It halts the pipeline for that query but is not fatal to the process.
var ErrDeputyNotFound = errors.New("nenhum deputado encontrado")

// Report is a complete category breakdown for one deputy.
type Report struct {
	Deputy  core.Deputy
	Records int
	Totals  []core.CategoryTotal
	Total   core.Money

	// FailedPage and FetchWarning are set when paging stopped early; the
	// totals then cover only the pages fetched before the failure.
	FailedPage   int
	FetchWarning string
}

// Partial reports whether the expense history is incomplete.
func (r *Report) Partial() bool { return r.FailedPage > 0 }

// ReportService builds expense reports and memoizes remote lookups. The
// caches hang off the instance, not the package, so every deployment scopes
// them explicitly: cmd/despesas creates one service for the process lifetime.
type ReportService struct {
	finder camara.DeputyFinder
	lister camara.ExpenseLister

	deputies *cache.Memo[core.Deputy]
	expenses *cache.Memo[[]core.Expense]
}

func NewReportService(finder camara.DeputyFinder, lister camara.ExpenseLister) *ReportService {
	return &ReportService{
		finder:   finder,
		lister:   lister,
		deputies: cache.NewMemo[core.Deputy](),
		expenses: cache.NewMemo[[]core.Expense](),
	}
}

// Lookup resolves a deputy by name, serving repeated queries from the memo.
// Returns ErrDeputyNotFound when the search comes back empty.
func (s *ReportService) Lookup(ctx context.Context, name string) (*core.Deputy, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("lookup: %w", core.ErrEmptyName)
	}

	key := normalizeQuery(name)
	if d, ok := s.deputies.Get(key); ok {
		metrics.CacheLookups.WithLabelValues("deputies", "hit").Inc()
		return &d, nil
	}
	metrics.CacheLookups.WithLabelValues("deputies", "miss").Inc()

	d, err := s.finder.FindDeputy(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("buscar deputado: %w", err)
	}
	if d == nil {
		return nil, ErrDeputyNotFound
	}
	s.deputies.Set(key, *d)
	return d, nil
}

// BuildReport runs the full pipeline for a free-text name query.
//
// A fetch failure after at least one successful page degrades to a partial
// report carrying the failing page; a failure before any records, a not-found
// search or a non-numeric amount fail the whole report.
func (s *ReportService) BuildReport(ctx context.Context, name string) (*Report, error) {
	start := time.Now()

	deputy, err := s.Lookup(ctx, name)
	if err != nil {
		return nil, err
	}

	records, fetchErr := s.expensesFor(ctx, deputy.ID)
	if fetchErr != nil && len(records) == 0 {
		return nil, fmt.Errorf("buscar despesas: %w", fetchErr)
	}

	totals, err := core.TotalsByCategory(records)
	if err != nil {
		return nil, fmt.Errorf("agregar despesas: %w", err)
	}

	report := &Report{
		Deputy:  *deputy,
		Records: len(records),
		Totals:  totals,
		Total:   core.SumTotals(totals),
	}
	if fetchErr != nil {
		var fe *camara.FetchError
		if errors.As(fetchErr, &fe) {
			report.FailedPage = fe.Page
		}
		report.FetchWarning = fetchErr.Error()
	}

	metrics.ReportDuration.Observe(time.Since(start).Seconds())
	slog.InfoContext(ctx, "Report built",
		"deputy_id", deputy.ID,
		"records", report.Records,
		"categories", len(report.Totals),
		"total_cents", report.Total.Cents,
		"partial", report.Partial())
	return report, nil
}

// expensesFor fetches the full expense history, memoized by deputy ID.
// Partial fetches are never cached, so re-triggering the search retries
// the paging from scratch.
func (s *ReportService) expensesFor(ctx context.Context, deputyID int64) ([]core.Expense, error) {
	key := strconv.FormatInt(deputyID, 10)
	if records, ok := s.expenses.Get(key); ok {
		metrics.CacheLookups.WithLabelValues("expenses", "hit").Inc()
		out := make([]core.Expense, len(records))
		copy(out, records)
		return out, nil
	}
	metrics.CacheLookups.WithLabelValues("expenses", "miss").Inc()

	records, err := s.lister.AllExpenses(ctx, deputyID)
	if err != nil {
		return records, err
	}
	stored := make([]core.Expense, len(records))
	copy(stored, records)
	s.expenses.Set(key, stored)
	return records, nil
}

// normalizeQuery collapses whitespace and case so "Maria  do Rosário " and
// "maria do rosário" share a memo entry. Diacritic matching stays delegated
// to the upstream search.
func normalizeQuery(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
