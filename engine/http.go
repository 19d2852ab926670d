package engine

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Laisky/errors/v2"
	"github.com/Laisky/zap"

	"github.com/modelgate/modelgate/common/logger"
)

const (
	dataPrefix = "data: "
	doneMarker = "[DONE]"
)

// HTTPEngine speaks to a local text-generation server over HTTP.
//
// Contract: POST {base}/api/generate with a JSON body; the server answers
// with a single JSON object, or with an SSE stream of fragment objects
// terminated by a [DONE] line when stream is true.
type HTTPEngine struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	nativeStop bool
	buffer     int
	client     *http.Client
}

// HTTPEngineOptions configures NewHTTPEngine.
type HTTPEngineOptions struct {
	BaseURL string
	// APIKey is sent as a bearer token when non-empty.
	APIKey string
	// Timeout bounds blocking completions. Streams are not bounded; they
	// end when the engine closes the event stream.
	Timeout time.Duration
	// NativeStop forwards stop sequences so the engine halts generation
	// itself instead of wasting tokens past the stop marker.
	NativeStop bool
	// StreamBuffer sizes the fragment channel.
	StreamBuffer int
}

func NewHTTPEngine(opts HTTPEngineOptions) *HTTPEngine {
	return &HTTPEngine{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		apiKey:     opts.APIKey,
		timeout:    opts.Timeout,
		nativeStop: opts.NativeStop,
		buffer:     opts.StreamBuffer,
		// The shared client carries no Timeout of its own: a client-level
		// timeout would sever long-lived streams mid-generation.
		client: &http.Client{},
	}
}

type generateRequest struct {
	Prompt       string   `json:"prompt"`
	Temperature  *float64 `json:"temperature,omitempty"`
	TopP         *float64 `json:"top_p,omitempty"`
	TopK         *int     `json:"top_k,omitempty"`
	MaxNewTokens *int     `json:"max_new_tokens,omitempty"`
	Stop         []string `json:"stop,omitempty"`
	Stream       bool     `json:"stream,omitempty"`
}

type generateResponse struct {
	Text         string `json:"text"`
	FinishReason string `json:"finish_reason,omitempty"`
	Error        string `json:"error,omitempty"`
}

func (e *HTTPEngine) newRequest(ctx context.Context, body *generateRequest) (*http.Request, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, "marshal generate request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "build generate request")
	}
	req.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}
	return req, nil
}

func (e *HTTPEngine) buildBody(prompt string, params Params, stream bool) *generateRequest {
	body := &generateRequest{
		Prompt:       prompt,
		Temperature:  params.Temperature,
		TopP:         params.TopP,
		TopK:         params.TopK,
		MaxNewTokens: params.MaxLength,
		Stream:       stream,
	}
	if e.nativeStop {
		body.Stop = params.Stop
	}
	return body
}

func (e *HTTPEngine) Complete(ctx context.Context, prompt string, params Params) (*Result, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	req, err := e.newRequest(ctx, e.buildBody(prompt, params, false))
	if err != nil {
		return nil, err
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "call generation engine")
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read engine response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("generation engine returned status %d: %s",
			resp.StatusCode, string(responseBody))
	}

	var generated generateResponse
	if err := json.Unmarshal(responseBody, &generated); err != nil {
		return nil, errors.Wrap(err, "unmarshal engine response")
	}
	if generated.Error != "" {
		return nil, errors.Errorf("generation engine error: %s", generated.Error)
	}

	return &Result{Text: generated.Text, FinishReason: generated.FinishReason}, nil
}

func (e *HTTPEngine) Stream(ctx context.Context, prompt string, params Params) (*Stream, error) {
	req, err := e.newRequest(ctx, e.buildBody(prompt, params, true))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "call generation engine")
	}
	if resp.StatusCode != http.StatusOK {
		responseBody, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		return nil, errors.Errorf("generation engine returned status %d: %s",
			resp.StatusCode, string(responseBody))
	}

	stream := NewStream(e.buffer)
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		e.consume(resp.Body, stream)
	}()
	// A reader stalled in Scan on a quiet upstream would only notice a detach
	// on its next Send; closing the body forces Scan to return right away.
	go func() {
		select {
		case <-stream.Done():
			_ = resp.Body.Close()
		case <-finished:
		}
	}()
	return stream, nil
}

// consume reads SSE fragment lines off the response body and forwards them
// to the stream. On detach it stops reading and closes the body; the server
// observes the closed connection and winds generation down on its side.
func (e *HTTPEngine) consume(body io.ReadCloser, stream *Stream) {
	defer stream.Close()
	defer body.Close()

	scanner := bufio.NewScanner(body)
	buffer := make([]byte, 1024*1024)
	scanner.Buffer(buffer, len(buffer))
	scanner.Split(bufio.ScanLines)

	for scanner.Scan() {
		data := scanner.Text()
		if !strings.HasPrefix(data, dataPrefix) {
			continue
		}
		data = data[len(dataPrefix):]
		if strings.HasPrefix(data, doneMarker) {
			return
		}

		var fragment generateResponse
		if err := json.Unmarshal([]byte(data), &fragment); err != nil {
			logger.Logger.Warn("skip malformed engine fragment",
				zap.String("data", data), zap.Error(err))
			continue
		}
		if fragment.Error != "" {
			stream.Send(Event{Err: errors.Errorf("generation engine error: %s", fragment.Error)})
			return
		}
		if fragment.Text == "" {
			continue
		}
		if !stream.Send(Event{Text: fragment.Text}) {
			return
		}
	}

	if err := scanner.Err(); err != nil {
		stream.Send(Event{Err: errors.Wrap(err, "read engine stream")})
	}
}
