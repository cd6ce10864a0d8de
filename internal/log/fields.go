package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldQuery      = "query"
	FieldDeputyID   = "deputy_id"
	FieldPage       = "page"
	FieldRecords    = "records"
	FieldCategories = "categories"
	FieldTotalCents = "total_cents"
)

// Components defines standard component names
const (
	ComponentApp    = "app"
	ComponentHTTP   = "http"
	ComponentCamara = "camara"
	ComponentReport = "report"
	ComponentCache  = "cache"
)
