package analyst

import "github.com/pankajrawal86/lvx-agents/internal/domain"

// Registry maps capability names to analysts and remembers insertion order,
// which is the execution order of a full analysis run.
type Registry struct {
	names  []string
	byName map[string]domain.Analyst
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]domain.Analyst)}
}

// Register adds an analyst under name. Re-registering a name replaces the
// analyst but keeps its original position.
func (r *Registry) Register(name string, a domain.Analyst) {
	if _, exists := r.byName[name]; !exists {
		r.names = append(r.names, name)
	}
	r.byName[name] = a
}

// Get returns the analyst registered under name.
func (r *Registry) Get(name string) (domain.Analyst, bool) {
	a, ok := r.byName[name]
	return a, ok
}

// Names returns the registered capability names in insertion order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// All returns the analysts in insertion order.
func (r *Registry) All() []domain.Analyst {
	out := make([]domain.Analyst, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.byName[name])
	}
	return out
}

// Default builds the production registry: the six specialists in the order a
// full analysis runs them.
func Default(oracle domain.Oracle) *Registry {
	r := NewRegistry()
	r.Register("deal_memo", NewDealMemo(oracle))
	r.Register("risk_and_compliance", NewRiskAndCompliance(oracle))
	r.Register("benchmarking", NewBenchmarking(oracle))
	r.Register("market_research", NewMarketResearch(oracle))
	r.Register("portfolio_fit", NewPortfolioFit(oracle))
	r.Register("digital_footprint", NewDigitalFootprint(oracle))
	return r
}
