package config

import (
	"strings"
	"time"

	"github.com/modelgate/modelgate/common/env"
)

var (
	// ServerPort overrides the --port flag when running inside container or PaaS environments.
	ServerPort = strings.TrimSpace(env.String("PORT", ""))
	// GinMode allows forcing Gin into release mode (or other modes) without recompiling.
	GinMode = strings.TrimSpace(env.String("GIN_MODE", ""))

	// DebugEnabled toggles verbose structured logging when DEBUG=true.
	DebugEnabled = env.Bool("DEBUG", false)

	// ModelName is the single model id announced on /v1/models and echoed in responses.
	ModelName = env.String("MODEL_NAME", "gpt-3.5-turbo")

	// PromptTemplate selects the conversation template used to flatten chat
	// history into the engine prompt. Must name a registered template.
	PromptTemplate = env.String("PROMPT_TEMPLATE", "chatml")

	// EngineBaseURL is the base URL of the local text-generation engine.
	EngineBaseURL = strings.TrimRight(env.String("ENGINE_BASE_URL", "http://127.0.0.1:5000"), "/")
	// EngineAPIKey is sent as a bearer token to the generation engine when non-empty.
	EngineAPIKey = strings.TrimSpace(env.String("ENGINE_API_KEY", ""))
	// EngineTimeout bounds blocking generation calls (seconds). Zero disables the bound.
	EngineTimeout = time.Second * time.Duration(env.Int("ENGINE_TIMEOUT", 600))
	// EngineNativeStop forwards stop sequences to the engine so it can halt
	// generation itself. Post-hoc trimming is applied regardless.
	EngineNativeStop = env.Bool("ENGINE_NATIVE_STOP", true)

	// DefaultMaxTokens caps generation length when the request does not supply
	// max_length. Zero (the default) leaves the engine's own length default in
	// place.
	DefaultMaxTokens = env.Int("DEFAULT_MAX_TOKENS", 0)

	// APIAuth enables HTTP basic auth on the API when set to "user:password".
	APIAuth = strings.TrimSpace(env.String("API_AUTH", ""))

	// EnablePrometheusMetrics exposes the /metrics endpoint for Prometheus scrapers when true.
	EnablePrometheusMetrics = env.Bool("ENABLE_PROMETHEUS_METRICS", true)

	// ShutdownTimeoutSec specifies the graceful shutdown timeout (seconds) for
	// the HTTP server and in-flight streaming requests.
	ShutdownTimeoutSec = env.Int("SHUTDOWN_TIMEOUT", 60)

	// StreamChannelBuffer sizes the fragment channel between the generation
	// producer and the SSE writer. A small buffer smooths bursts without
	// letting an abandoned producer run far ahead.
	StreamChannelBuffer = env.Int("STREAM_CHANNEL_BUFFER", 16)
)
