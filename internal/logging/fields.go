package logging

// Common structured log field keys to keep logs searchable/consistent.
const (
	FieldService    = "service"
	FieldVersion    = "version"
	FieldRequestID  = "request_id"
	FieldPath       = "path"
	FieldMethod     = "method"
	FieldStatusCode = "status_code"
	FieldDurationMS = "duration_ms"
	FieldProfileID  = "profile_id"
	FieldPoolID     = "pool_id"
	FieldMatchID    = "match_id"
	FieldPlayerID   = "player_id"
	FieldRosterKey  = "roster_key"
	FieldCount      = "count"
)
