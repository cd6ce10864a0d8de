// Package camara implements the client for the Câmara dos Deputados
// open-data API: deputy directory search and the paginated expense listing.
package camara

import (
	"context"

	"despesas/internal/core"
)

// DeputyFinder resolves a free-text name to the best-matching deputy.
// A nil deputy with a nil error means the search returned no results.
type DeputyFinder interface {
	FindDeputy(ctx context.Context, name string) (*core.Deputy, error)
}

// ExpenseLister retrieves the complete expense history for a deputy by
// exhausting the upstream pagination. When the returned error is non-nil the
// records gathered before the failure are still returned.
type ExpenseLister interface {
	AllExpenses(ctx context.Context, deputyID int64) ([]core.Expense, error)
}
