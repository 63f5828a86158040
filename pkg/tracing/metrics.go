package tracing

import (
	"context"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

var (
	VisitsCounted = stats.Int64("kitchen/visits_counted", "Visits added to the running total", stats.UnitDimensionless)
	VisitsSkipped = stats.Int64("kitchen/visits_skipped", "Visits ignored as bots or repeat sessions", stats.UnitDimensionless)
	ContentSaves  = stats.Int64("kitchen/content_saves", "Content documents written", stats.UnitDimensionless)

	KeyReason     = tag.MustNewKey("reason")
	KeyContentKey = tag.MustNewKey("content_key")
)

var DomainViews = []*view.View{
	{Name: "kitchen/visits_counted", Measure: VisitsCounted, Aggregation: view.Count()},
	{Name: "kitchen/visits_skipped", Measure: VisitsSkipped, TagKeys: []tag.Key{KeyReason}, Aggregation: view.Count()},
	{Name: "kitchen/content_saves", Measure: ContentSaves, TagKeys: []tag.Key{KeyContentKey}, Aggregation: view.Count()},
}

// Count records one occurrence of m tagged with the given key/value pairs.
// Recording without registered views is a no-op.
func Count(ctx context.Context, m *stats.Int64Measure, tags ...tag.Mutator) {
	_ = stats.RecordWithTags(ctx, tags, m.M(1))
}
