package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/specialistvlad/stashgrid/internal/link"
	"github.com/specialistvlad/stashgrid/internal/resolver"
)

var (
	// plansTotal counts plan requests by result: ok, rejected or invalid.
	plansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stashgrid_plans_total",
		Help: "Total plans computed by result",
	}, []string{"result"})

	stashedLinksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stashgrid_stashed_links_total",
		Help: "Total link values deferred by cycle breaking",
	})

	phantomEdgesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stashgrid_phantom_edges_total",
		Help: "Total sibling group edges removed together with a cut",
	})

	leafRecordsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stashgrid_leaf_records_total",
		Help: "Total records emitted into upload orders",
	})

	// planRounds tracks how many cycle-breaking rounds a plan needed.
	planRounds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "stashgrid_plan_rounds",
		Help:    "Cycle-breaking rounds per plan",
		Buckets: []float64{0, 1, 2, 5, 10, 50, 100, 1000},
	})

	// cutValue tracks the cost/gain value of each chosen cut.
	cutValue = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "stashgrid_cut_value",
		Help:    "Cost per gain of the record whose link was cut",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
	})
)

// metricsObserver feeds resolver events into the process metrics.
type metricsObserver struct{}

func (metricsObserver) OnLeaves(batch []link.RecordID) {
	leafRecordsTotal.Add(float64(len(batch)))
}

func (metricsObserver) OnCut(round resolver.Round) {
	stashedLinksTotal.Add(float64(len(round.Stashed)))
	phantomEdgesTotal.Add(float64(round.Phantoms))
	cutValue.Observe(round.Value)
}
