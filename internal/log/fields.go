package log

// Common field names for structured logging
const (
	FieldComponent    = "component"
	FieldInvocationID = "invocation_id"
	FieldRequestID    = "request_id"
	FieldMethod       = "method"
	FieldPath         = "path"
	FieldStatusCode   = "status_code"
	FieldDuration     = "duration_ms"
	FieldError        = "error"
	FieldOperation    = "operation"
	FieldBudgetID     = "budget_id"
	FieldGroup        = "category_group"
	FieldCategory     = "category"
	FieldCategories   = "categories"
	FieldFiltered     = "filtered"
	FieldKey          = "key"
	FieldURL          = "url"
	FieldSink         = "sink"
	FieldMode         = "mode"
	FieldBytes        = "bytes"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentLambda    = "lambda"
	ComponentOrchestra = "orchestrator"
	ComponentPublish   = "publish"
	ComponentRender    = "render"
	ComponentBudget    = "budget"
	ComponentWorkspace = "workspace"
	ComponentAMQP      = "amqp"
	ComponentWorker    = "worker"
	ComponentStorage   = "storage"
)

// Operations defines standard operation names
const (
	OpFetch     = "fetch"
	OpNormalize = "normalize"
	OpRender    = "render"
	OpUpload    = "upload"
	OpUpdate    = "update"
	OpConsume   = "consume"
	OpShutdown  = "shutdown"
	OpStartup   = "startup"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithUpload adds the fields describing one object write
func (f LogFields) WithUpload(key, url string, size int) LogFields {
	f[FieldKey] = key
	f[FieldURL] = url
	f[FieldBytes] = size
	return f
}

// WithHTTPResponse adds HTTP response fields
func (f LogFields) WithHTTPResponse(method, path string, statusCode int, durationMs int64) LogFields {
	f[FieldMethod] = method
	f[FieldPath] = path
	f[FieldStatusCode] = statusCode
	f[FieldDuration] = durationMs
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
