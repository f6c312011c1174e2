package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldQuery      = "query"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldCategory   = "category"
	FieldKind       = "kind"
	FieldAmount     = "amount_cents"
	FieldDate       = "date"
	FieldRowRef     = "row_ref"
	FieldBackend    = "backend"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentLedger  = "ledger"
	ComponentBackend = "backend"
	ComponentReport  = "report"
)

// Operations defines standard operation names
const (
	OpAppend    = "append"
	OpRead      = "read"
	OpSummarize = "summarize"
	OpSeries    = "timeseries"
	OpCategory  = "categories"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
