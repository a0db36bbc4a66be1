package selection

import (
	"context"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/sqlgrip/sqlgrip-engine/pkg/llm"
	"github.com/sqlgrip/sqlgrip-engine/pkg/models"
	"github.com/sqlgrip/sqlgrip-engine/pkg/prompts"
	sqltext "github.com/sqlgrip/sqlgrip-engine/pkg/sql"
)

const (
	// FallbackLimit is how many catalog entries the degraded fallback keeps.
	FallbackLimit = 10

	// MaxCatalogSize caps how many catalog entries are offered to the model.
	MaxCatalogSize = 500
)

// Result is the outcome of a table selection.
type Result struct {
	// Tables is the chosen subset of the catalog, in selection order,
	// deduplicated.
	Tables []string

	// ShortCircuited is true when the current script's references answered
	// the question without a model call.
	ShortCircuited bool

	// Degraded is true when the model returned nothing usable and the
	// fallback list was substituted. The result is still usable; callers
	// should surface this as a notice, not an error.
	Degraded bool
}

// Selector narrows a table catalog to the tables relevant to one request.
type Selector struct {
	router *llm.Router
	logger *zap.Logger
}

// NewSelector creates a selector over the given router.
func NewSelector(router *llm.Router, logger *zap.Logger) *Selector {
	return &Selector{
		router: router,
		logger: logger.Named("selector"),
	}
}

// SelectTables applies the selection policy, evaluated in order:
//
//  1. Extract table references from the current script, cross-checked
//     against the catalog.
//  2. If the script references tables and the request does not name one,
//     return the references directly. No model call is made on this path.
//  3. Otherwise ask the turbo model, offering the full catalog with the
//     referenced tables flagged as higher-priority context.
//  4. Filter the response against the catalog and deduplicate.
//  5. If nothing usable survives, fall back to the first FallbackLimit
//     catalog entries and mark the result degraded.
//
// Model failures never propagate; they degrade to the fallback list.
func (s *Selector) SelectTables(ctx context.Context, userRequest string, catalog []models.TableInfo, currentSQL string) (*Result, error) {
	if len(catalog) == 0 {
		return &Result{}, nil
	}
	if len(catalog) > MaxCatalogSize {
		catalog = catalog[:MaxCatalogSize]
	}

	names := models.TableNames(catalog)

	referenced := sqltext.ExtractReferencedTables(currentSQL, names)

	if len(referenced) > 0 && !RequestNamesTable(userRequest, names) {
		s.logger.Debug("selection short-circuited by script references",
			zap.Int("referenced", len(referenced)))
		return &Result{Tables: referenced, ShortCircuited: true}, nil
	}

	resp, err := s.router.Invoke(ctx, llm.OpSelectTables,
		prompts.SelectTablesSystem(),
		prompts.SelectTablesUser(userRequest, catalog, referenced))
	if err != nil {
		s.logger.Warn("table selection model call failed, using fallback",
			zap.Error(err))
		return s.fallback(catalog), nil
	}

	selected := s.filterToCatalog(llm.ParseNameList(resp.Content), names)
	if len(selected) == 0 {
		s.logger.Warn("model returned no usable table names, using fallback",
			zap.Int("catalog_size", len(catalog)))
		return s.fallback(catalog), nil
	}

	return &Result{Tables: selected}, nil
}

// filterToCatalog keeps only names present in the catalog, restoring catalog
// casing, and drops duplicates. Hallucinated names are discarded here.
func (s *Selector) filterToCatalog(candidates, catalogNames []string) []string {
	canonical := make(map[string]string, len(catalogNames))
	for _, name := range catalogNames {
		canonical[strings.ToLower(name)] = name
	}

	var kept []string
	for _, c := range candidates {
		if name, ok := canonical[strings.ToLower(strings.TrimSpace(c))]; ok {
			kept = append(kept, name)
		}
	}
	return lo.Uniq(kept)
}

func (s *Selector) fallback(catalog []models.TableInfo) *Result {
	limit := FallbackLimit
	if len(catalog) < limit {
		limit = len(catalog)
	}
	return &Result{
		Tables:   models.TableNames(catalog[:limit]),
		Degraded: true,
	}
}
