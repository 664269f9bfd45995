package policy

import (
	"fmt"
	"net/http"
	"regexp"

	"go.uber.org/zap"

	"storefront-edge/internal/interfaces"
)

// Table maps route patterns to named strategies. The default interception
// path is not in the table; routes listed here override it.
type Table struct {
	routes []route
	logger *zap.Logger
}

type route struct {
	pattern  *regexp.Regexp
	strategy interfaces.Strategy
}

// NewTable creates an empty route table.
func NewTable(logger *zap.Logger) *Table {
	return &Table{logger: logger}
}

// Add registers a strategy for every path matching pattern. Routes match in
// registration order; the first match wins.
func (t *Table) Add(pattern string, strategy interfaces.Strategy) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid route pattern %q: %w", pattern, err)
	}

	t.routes = append(t.routes, route{pattern: re, strategy: strategy})
	t.logger.Info("Route strategy registered",
		zap.String("pattern", pattern), zap.String("strategy", string(strategy.Name())))

	return nil
}

// Match returns the strategy configured for the request's path, if any.
func (t *Table) Match(req *http.Request) (interfaces.Strategy, bool) {
	for _, r := range t.routes {
		if r.pattern.MatchString(req.URL.Path) {
			return r.strategy, true
		}
	}

	return nil, false
}
