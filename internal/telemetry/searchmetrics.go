package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	searchMetricsEnabled bool
	searchQueriesTotal   metric.Int64Counter
	tagAggregationsTotal metric.Int64Counter
	tagAggregationTime   metric.Float64Histogram
)

func initSearchInstruments(serviceName string) {
	meter := otel.Meter(serviceName + "/search")

	var err error
	searchQueriesTotal, err = meter.Int64Counter(
		"snipmark_search_queries_total",
		metric.WithDescription("Compiled snippet queries by mode and sort"),
	)
	if err != nil {
		return
	}
	tagAggregationsTotal, err = meter.Int64Counter(
		"snipmark_tag_aggregations_total",
		metric.WithDescription("Tag frequency aggregations by scope and status"),
	)
	if err != nil {
		return
	}
	tagAggregationTime, err = meter.Float64Histogram(
		"snipmark_tag_aggregation_duration_seconds",
		metric.WithDescription("Tag frequency aggregation latency"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return
	}
	searchMetricsEnabled = true
}

// RecordSearch counts one compiled query. matchNone marks queries that were
// answered empty without touching the store.
func RecordSearch(ctx context.Context, single bool, sort string, matchNone bool) {
	if !searchMetricsEnabled {
		return
	}
	mode := "list"
	if single {
		mode = "single"
	}
	searchQueriesTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("search.mode", mode),
		attribute.String("search.sort", sort),
		attribute.Bool("search.match_none", matchNone),
	))
}

func RecordTagAggregation(ctx context.Context, ownerScoped bool, took time.Duration, err error) {
	if !searchMetricsEnabled {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	attrs := metric.WithAttributes(
		attribute.Bool("tags.owner_scoped", ownerScoped),
		attribute.String("tags.status", status),
	)
	tagAggregationsTotal.Add(ctx, 1, attrs)
	tagAggregationTime.Record(ctx, took.Seconds(), attrs)
}
