package ctxkey

const (
	// RequestBody caches the raw request body so the panic recovery
	// middleware can log it after handlers consumed the reader.
	// Set in: common.GetRequestBody on first read.
	RequestBody = "request_body"
)
