package logger

const (
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldLatency   = "latency_ms"
	FieldClientIP  = "client_ip"

	// совпадает с ключом, который выставляет api/middleware
	FieldUserID = "user_id"

	FieldService = "service"
	FieldPostID  = "post_id"
	FieldAuthor  = "author_id"
	FieldFilter  = "filter"
	FieldPage    = "page"
	FieldKey     = "cache_key"
)
