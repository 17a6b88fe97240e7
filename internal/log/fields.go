package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
	FieldMonth       = "month"
	FieldDepartment  = "department"
	FieldMetric      = "metric"
	FieldRowCount    = "row_count"
	FieldMonthCount  = "month_count"
	FieldDeptCount   = "department_count"
	FieldFeedURL     = "feed_url"
	FieldDataSource  = "data_source"
	FieldSnapshotAge = "snapshot_age"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentFeed      = "feed"
	ComponentReconcile = "reconcile"
	ComponentRefresher = "refresher"
	ComponentSheets    = "sheets"
	ComponentCache     = "cache"
	ComponentRateLimit = "rate_limit"
)
