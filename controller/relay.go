package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/Laisky/errors/v2"
	gmw "github.com/Laisky/gin-middlewares/v6"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"

	"github.com/modelgate/modelgate/common"
	"github.com/modelgate/modelgate/common/config"
	"github.com/modelgate/modelgate/common/graceful"
	"github.com/modelgate/modelgate/common/helper"
	"github.com/modelgate/modelgate/common/render"
	"github.com/modelgate/modelgate/engine"
	"github.com/modelgate/modelgate/middleware"
	"github.com/modelgate/modelgate/monitor"
	"github.com/modelgate/modelgate/relay/compiler"
	"github.com/modelgate/modelgate/relay/model"
	"github.com/modelgate/modelgate/relay/react"
	"github.com/modelgate/modelgate/relay/template"
	"github.com/modelgate/modelgate/relay/transcoder"
)

var errInvalidStreamFunctions = errors.New(
	"invalid request: function calling is not yet supported in stream mode")

var generationEngine engine.Engine

// Setup injects the generation engine shared by all requests. Call once
// before the router starts serving.
func Setup(e engine.Engine) { generationEngine = e }

// buildParams translates request sampling fields into engine parameters.
// Near-zero temperatures are remapped to greedy decoding (top_k=1) because
// most sampling kernels reject temperature values that close to zero.
func buildParams(req *model.GeneralChatRequest, stopWords []string) engine.Params {
	params := engine.Params{
		Temperature: req.Temperature,
		TopP:        req.TopP,
		TopK:        req.TopK,
		MaxLength:   req.MaxLength,
		Stop:        stopWords,
	}
	if req.Temperature != nil && *req.Temperature < 0.01 {
		one := 1
		params.TopK = &one
		params.Temperature = nil
	}
	// An absent max_length stays nil so the engine's own default applies,
	// unless the operator configured an explicit cap.
	if params.MaxLength == nil && config.DefaultMaxTokens > 0 {
		n := config.DefaultMaxTokens
		params.MaxLength = &n
	}
	return params
}

// buildStopWords assembles the effective stop set: the client's stop strings,
// the tool-call guard when a function manifest is present, the template's own
// end-of-reply marker, and newline-stripped variants of all of the above.
func buildStopWords(req *model.GeneralChatRequest, conv *template.Conversation) []string {
	stopWords := make([]string, 0, len(req.Stop)+2)
	stopWords = append(stopWords, req.Stop...)
	if len(req.Functions) > 0 {
		found := false
		for _, w := range stopWords {
			if w == react.ObservationStopWord {
				found = true
				break
			}
		}
		if !found {
			stopWords = append(stopWords, react.ObservationStopWord)
		}
	}
	if conv.StopStr != "" {
		stopWords = append(stopWords, conv.StopStr)
	}
	return transcoder.ExpandStopWords(stopWords)
}

// ChatCompletions handles POST /v1/chat/completions in both blocking and
// streaming form.
func ChatCompletions(c *gin.Context) {
	done := graceful.BeginRequest()
	defer done()

	body, err := common.GetRequestBody(c)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid_request_error", err)
		return
	}
	var req model.GeneralChatRequest
	if err := json.Unmarshal(body, &req); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid_request_error", err)
		return
	}

	if req.Stream && len(req.Functions) > 0 {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid_request_error",
			errInvalidStreamFunctions)
		return
	}

	compiled, err := compiler.Compile(req.Messages, req.Functions)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid_request_error", err)
		return
	}

	conv, err := template.Get(config.PromptTemplate)
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "internal_error", err)
		return
	}

	turns := compiled.History
	if !compiled.TextCompletion {
		turns = append(turns, [2]string{compiled.Query, ""})
	}
	prompt := conv.PromptFor(turns, compiled.System)

	stopWords := buildStopWords(&req, conv)
	params := buildParams(&req, stopWords)

	modelName := req.Model
	if modelName == "" {
		modelName = config.ModelName
	}

	if req.Stream {
		relayStream(c, prompt, params, stopWords, modelName)
		return
	}
	relayBlocking(c, &req, prompt, params, stopWords, modelName)
}

func relayBlocking(c *gin.Context, req *model.GeneralChatRequest,
	prompt string, params engine.Params, stopWords []string, modelName string) {
	start := time.Now()
	result, err := generationEngine.Complete(c.Request.Context(), prompt, params)
	monitor.ObserveGeneration("complete", start)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadGateway, "engine_error", err)
		return
	}

	text := transcoder.TrimStopWords(result.Text, stopWords)

	var choice model.Choice
	if len(req.Functions) > 0 {
		choice = react.ParseResponse(text)
	} else {
		choice = model.Choice{
			Index: 0,
			Message: model.Message{
				Role:    model.RoleAssistant,
				Content: text,
			},
			FinishReason: model.FinishReasonStop,
		}
	}
	if result.FinishReason == model.FinishReasonLength {
		choice.FinishReason = model.FinishReasonLength
	}

	promptTokens := countTokens(prompt)
	completionTokens := countTokens(text)
	c.JSON(http.StatusOK, model.ChatCompletionResponse{
		Id:      helper.GenChatCompletionID(),
		Model:   modelName,
		Object:  model.ObjectChatCompletion,
		Created: helper.GetTimestamp(),
		Choices: []model.Choice{choice},
		Usage: &model.Usage{
			PromptTokens:     promptTokens,
			CompletionTokens: completionTokens,
			TotalTokens:      promptTokens + completionTokens,
		},
	})
}

func relayStream(c *gin.Context, prompt string, params engine.Params,
	stopWords []string, modelName string) {
	lg := gmw.GetLogger(c)

	start := time.Now()
	stream, err := generationEngine.Stream(c.Request.Context(), prompt, params)
	if err != nil {
		monitor.ObserveGeneration("stream", start)
		middleware.AbortWithError(c, http.StatusBadGateway, "engine_error", err)
		return
	}

	// Bridge engine events onto a plain fragment channel for the transducer.
	// A terminal engine error ends the fragment sequence; the SSE stream is
	// already committed by then, so it is logged and the stream closed.
	fragments := make(chan string)
	errCh := make(chan error, 1)
	go func() {
		defer close(fragments)
		for ev := range stream.Events() {
			if ev.Err != nil {
				errCh <- ev.Err
				return
			}
			fragments <- ev.Text
		}
	}()

	defer func() {
		monitor.ObserveGeneration("stream", start)
		stream.Detach()
		// Leftover fragments are drained off the handler goroutine so the
		// producer can wind down; shutdown waits for this task.
		graceful.GoDetached(context.Background(), "drain generation stream",
			func(context.Context) {
				for range fragments {
				}
			})
	}()

	transducer := transcoder.NewTransducer(fragments, stopWords)

	id := helper.GenChatCompletionID()
	created := helper.GetTimestamp()
	chunk := func(delta model.DeltaMessage, finishReason *string) model.ChatCompletionStreamResponse {
		return model.ChatCompletionStreamResponse{
			Id:      id,
			Model:   modelName,
			Object:  model.ObjectChatCompletionChunk,
			Created: created,
			Choices: []model.StreamChoice{{
				Index:        0,
				Delta:        delta,
				FinishReason: finishReason,
			}},
		}
	}

	common.SetEventStreamHeaders(c)
	if err := render.ObjectData(c, chunk(model.DeltaMessage{Role: model.RoleAssistant}, nil)); err != nil {
		lg.Warn("write role chunk", zap.Error(err))
		return
	}

	c.Stream(func(w io.Writer) bool {
		delta, ok := transducer.Next()
		if !ok {
			return false
		}
		monitor.StreamFragmentsTotal.Inc()
		if err := render.ObjectData(c, chunk(model.DeltaMessage{Content: delta}, nil)); err != nil {
			lg.Warn("write content chunk", zap.Error(err))
			return false
		}
		return true
	})

	select {
	case err := <-errCh:
		lg.Error("generation stream failed", zap.Error(err))
		// Cut the stream short: no finish chunk, no [DONE], so clients can
		// tell the generation died mid-way.
		return
	default:
	}

	finishReason := model.FinishReasonStop
	if err := render.ObjectData(c, chunk(model.DeltaMessage{}, &finishReason)); err != nil {
		lg.Warn("write finish chunk", zap.Error(err))
		return
	}
	render.Done(c)
}
