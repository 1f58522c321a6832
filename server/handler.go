// Package server exposes the analysis pipeline over HTTP: a streaming SSE
// endpoint and a single-shot JSON endpoint sharing one pipeline.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"ideaforge/config"
	"ideaforge/pipeline"
	"ideaforge/types"
	"ideaforge/youtube"
)

// Runner is the pipeline contract the handlers drive.
type Runner interface {
	Run(ctx context.Context, channelURL string, onProgress pipeline.ProgressFunc) (*types.AnalysisResult, error)
}

// Handler serves the analyze endpoints.
type Handler struct {
	pipe  Runner
	creds config.Credentials
}

// NewHandler creates a Handler and registers the channel-URL validator on
// gin's binding engine.
func NewHandler(pipe Runner, creds config.Credentials) *Handler {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("ytchannelurl", validChannelURL)
	}
	return &Handler{pipe: pipe, creds: creds}
}

// RegisterRoutes attaches all routes to the router.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/api/analyze-channel", h.analyze)
	r.POST("/api/analyze-channel-stream", h.analyzeStream)
}

type analyzeRequest struct {
	ChannelURL string `json:"channelUrl" binding:"required,ytchannelurl"`
}

var channelPathPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/@[\w-]+`),
	regexp.MustCompile(`/channel/[\w-]+`),
	regexp.MustCompile(`/c/[\w-]+`),
	regexp.MustCompile(`/user/[\w-]+`),
}

// validChannelURL accepts a syntactically valid YouTube URL whose path
// matches one of the four recognized channel-reference shapes.
func validChannelURL(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}
	host := u.Hostname()
	if !strings.Contains(host, "youtube.com") && !strings.Contains(host, "youtu.be") {
		return false
	}
	for _, p := range channelPathPatterns {
		if p.MatchString(raw) {
			return true
		}
	}
	return false
}

// bind parses and validates the request body, writing the 400/500 pre-flight
// responses itself. Returns the URL and true on success.
func (h *Handler) bind(c *gin.Context) (string, bool) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data",
			"details": formatBindingError(err),
		})
		return "", false
	}
	if missing := h.creds.Missing(); len(missing) > 0 {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Server configuration error",
			"details": strings.Join(missing, ", "),
		})
		return "", false
	}
	return req.ChannelURL, true
}

func (h *Handler) analyze(c *gin.Context) {
	channelURL, ok := h.bind(c)
	if !ok {
		return
	}

	result, err := h.pipe.Run(c.Request.Context(), channelURL, nil)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// event is one SSE payload. Exactly one of the progress pair, Error or Data
// is populated depending on Type.
type event struct {
	Type    string                `json:"type"`
	Step    string                `json:"step,omitempty"`
	Message string                `json:"message,omitempty"`
	Error   string                `json:"error,omitempty"`
	Data    *types.AnalysisResult `json:"data,omitempty"`
}

func (h *Handler) analyzeStream(c *gin.Context) {
	channelURL, ok := h.bind(c)
	if !ok {
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	ctx := c.Request.Context()
	events := make(chan event, 16)
	send := func(ev event) {
		// A gone client stops the stream reader; don't block forever.
		select {
		case events <- ev:
		case <-ctx.Done():
		}
	}

	go func() {
		defer close(events)
		result, err := h.pipe.Run(ctx, channelURL, func(step, message string) {
			send(event{Type: "progress", Step: step, Message: message})
		})
		if err != nil {
			send(event{Type: "error", Error: err.Error()})
			return
		}
		send(event{Type: "complete", Data: result})
	}()

	c.Stream(func(w io.Writer) bool {
		ev, open := <-events
		if !open {
			return false
		}
		b, err := json.Marshal(ev)
		if err != nil {
			return false
		}
		fmt.Fprintf(w, "data: %s\n\n", b)
		// error and complete both terminate the stream
		return ev.Type == "progress"
	})
}

// statusFor maps terminal pipeline errors to client-vs-server-fault codes.
func statusFor(err error) int {
	var resErr *youtube.ResolutionError
	switch {
	case errors.As(err, &resErr):
		return http.StatusBadRequest
	case errors.Is(err, pipeline.ErrNoVideos), errors.Is(err, youtube.ErrNoUploads):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// formatBindingError renders validator errors as field-path annotated
// messages, e.g. "channelUrl: must be a valid YouTube channel URL".
func formatBindingError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := jsonFieldName(fe.Field())
		switch fe.Tag() {
		case "required":
			parts = append(parts, field+": Channel URL is required")
		case "ytchannelurl":
			parts = append(parts, field+": Must be a valid YouTube channel URL")
		default:
			parts = append(parts, fmt.Sprintf("%s: %s", field, fe.Tag()))
		}
	}
	return strings.Join(parts, ", ")
}

func jsonFieldName(field string) string {
	if field == "ChannelURL" {
		return "channelUrl"
	}
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
