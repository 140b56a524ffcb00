package metrics

// Common metric attribute keys and operation names to keep telemetry
// consistent/searchable.
const (
	AttrMethod    = "method"
	AttrPath      = "path"
	AttrStatus    = "status"
	AttrOperation = "operation"
	AttrCacheHit  = "cache_hit"

	OpApply       = "apply"
	OpCancel      = "cancel"
	OpRecalculate = "recalculate"
	OpSimulate    = "simulate"
)
