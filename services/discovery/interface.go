package discovery

import (
	"context"
	"time"

	"nearbuy/config"
)

// AnalyticsSink receives fire-and-forget search events. Implementations must
// swallow their own failures; the feed never depends on them.
type AnalyticsSink interface {
	RecordSuggestionSelection(ctx context.Context, query, userID, viewerRole string)
}

// Viewer is the optional identity attached to a feed session. A zero Viewer
// is valid: selection events are simply not recorded.
type Viewer struct {
	UserID string
	Role   string
}

// Tunables collects the feed engine's knobs. The expansion ceiling and
// sparsity threshold come from configuration rather than being hard-coded.
type Tunables struct {
	PageSize              int
	ExpansionCeilingMiles float64
	ExpansionThreshold    int
	DefaultRadiusMiles    float64
	Debounce              time.Duration
	MinQueryLen           int
	SuggestionLimit       int
}

// TunablesFromConfig builds Tunables from the loaded application config.
func TunablesFromConfig() Tunables {
	cfg := config.AppConfig
	return Tunables{
		PageSize:              cfg.FeedPageSize,
		ExpansionCeilingMiles: cfg.ExpansionCeilingMiles,
		ExpansionThreshold:    cfg.ExpansionThreshold,
		DefaultRadiusMiles:    cfg.DefaultRadiusMiles,
		Debounce:              time.Duration(cfg.SearchDebounceMS) * time.Millisecond,
		MinQueryLen:           cfg.SearchMinQueryLen,
		SuggestionLimit:       cfg.SuggestionLimit,
	}
}
