package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// TileUpdate represents a single tile update sent via SSE
type TileUpdate struct {
	TileX      int    `json:"tileX"`
	TileY      int    `json:"tileY"`
	X          int    `json:"x"` // Pixel offset of the tile
	Y          int    `json:"y"`
	ImageData  string `json:"imageData"`  // Base64 encoded PNG of just this tile
	TileNumber int    `json:"tileNumber"` // Tiles completed so far (1-based)
	TotalTiles int    `json:"totalTiles"` // Total number of tiles in the image
}

// RenderSummary is sent when a streamed render finishes
type RenderSummary struct {
	Scene            string  `json:"scene"`
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	Bounces          int     `json:"bounces"`
	ElapsedMs        int64   `json:"elapsedMs"`
	TotalPixels      int     `json:"totalPixels"`
	HitPixels        int     `json:"hitPixels"`
	BackgroundPixels int     `json:"backgroundPixels"`
	Coverage         float64 `json:"coverage"`
	SphereCount      int     `json:"sphereCount"`
	LightCount       int     `json:"lightCount"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "tile", "complete", "error"
	Data string `json:"data"` // JSON-encoded data
}

// RenderingPipeline contains the configured scene and renderer
type RenderingPipeline struct {
	Scene    *scene.Scene
	Renderer *renderer.Renderer
}

// setupRenderingPipeline parses the request and prepares scene and renderer
func (s *Server) setupRenderingPipeline(c echo.Context, logger core.Logger) (*RenderingPipeline, *RenderRequest, int, error) {
	req, err := s.parseRenderRequest(c.QueryParams())
	if err != nil {
		return nil, nil, http.StatusBadRequest, fmt.Errorf("invalid request: %w", err)
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		return nil, nil, sceneErrorStatus(err), err
	}

	r, err := renderer.NewRenderer(sceneObj, s.rendererConfig(req), logger)
	if err != nil {
		return nil, nil, http.StatusBadRequest, err
	}

	return &RenderingPipeline{Scene: sceneObj, Renderer: r}, req, http.StatusOK, nil
}

// handleRenderImage renders a scene and returns it as a PNG
func (s *Server) handleRenderImage(c echo.Context) error {
	pipeline, req, status, err := s.setupRenderingPipeline(c, renderer.NewDefaultLogger())
	if err != nil {
		return errorJSON(c, status, err.Error())
	}

	result, err := pipeline.Renderer.Render(c.Request().Context())
	if err != nil {
		if errors.Is(err, context.Canceled) {
			// Client went away; nothing to send
			return nil
		}
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}

	var img image.Image = result.Image
	if req.Mask {
		img = result.Mask
	}
	data, err := output.EncodePNG(img)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}

	header := c.Response().Header()
	header.Set("X-Render-Time-Ms", strconv.FormatInt(result.Stats.Duration.Milliseconds(), 10))
	header.Set("X-Hit-Pixels", strconv.Itoa(result.Stats.HitPixels))
	return c.Blob(http.StatusOK, "image/png", data)
}

// handleRenderStream renders with real-time tile streaming via SSE
func (s *Server) handleRenderStream(c echo.Context) error {
	w := c.Response()
	s.setSSEHeaders(w)
	w.WriteHeader(http.StatusOK)

	ctx := c.Request().Context()

	// Create unified SSE event channel for thread-safe writing
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(w, ctx, sseEventChan)
	}()

	// Setup console logging and streaming
	consoleChan, webLogger := s.setupConsoleLogging()
	consoleCtx, stopConsole := context.WithCancel(ctx)
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		s.streamConsoleMessages(consoleCtx, consoleChan, sseEventChan)
	}()

	defer func() {
		stopConsole()
		<-consoleDone
		close(sseEventChan)
		<-writerDone
	}()

	pipeline, req, _, err := s.setupRenderingPipeline(c, webLogger)
	if err != nil {
		s.handleError(ctx, sseEventChan, err.Error())
		return nil
	}

	startTime := time.Now()
	tileChan, resultChan, errChan := pipeline.Renderer.RenderTiles(ctx)
	s.handleRenderingEvents(ctx, sseEventChan, tileChan, resultChan, errChan, pipeline, req, startTime)
	return nil
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, consoleChan)
	return consoleChan, webLogger
}

// writeSSEEvents writes all SSE events from a single goroutine until the channel closes
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan chan SSEEvent) {
	for event := range sseEventChan {
		// Keep draining after a disconnect so senders never block
		if ctx.Err() != nil {
			continue
		}

		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
			continue
		}
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}
	}
}

// streamConsoleMessages forwards console messages until ctx is done
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan chan ConsoleMessage, sseEventChan chan SSEEvent) {
	forward := func(consoleMsg ConsoleMessage) {
		data, err := json.Marshal(consoleMsg)
		if err != nil {
			log.Printf("Error marshaling console message: %v", err)
			return
		}
		select {
		case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
		default:
			// Channel full, skip message to avoid blocking
		}
	}

	for {
		select {
		case consoleMsg := <-consoleChan:
			forward(consoleMsg)
		case <-ctx.Done():
			// Flush whatever the render logged before finishing
			for {
				select {
				case consoleMsg := <-consoleChan:
					forward(consoleMsg)
				default:
					return
				}
			}
		}
	}
}

// handleRenderingEvents processes the main rendering event loop
func (s *Server) handleRenderingEvents(ctx context.Context, sseEventChan chan SSEEvent,
	tileChan <-chan renderer.TileCompletionResult, resultChan <-chan *renderer.Result, errChan <-chan error,
	pipeline *RenderingPipeline, req *RenderRequest, startTime time.Time) {

	for tileResult := range tileChan {
		s.handleTileUpdate(ctx, sseEventChan, tileResult)
	}

	if err := <-errChan; err != nil {
		if !errors.Is(err, context.Canceled) {
			s.handleError(ctx, sseEventChan, fmt.Sprintf("Rendering failed: %v", err))
		}
		return
	}

	result, ok := <-resultChan
	if !ok || result == nil {
		s.handleError(ctx, sseEventChan, "Rendering produced no result")
		return
	}

	summary := RenderSummary{
		Scene:            pipeline.Scene.Name,
		Width:            pipeline.Renderer.Width(),
		Height:           pipeline.Renderer.Height(),
		Bounces:          pipeline.Scene.BounceLimit,
		ElapsedMs:        time.Since(startTime).Milliseconds(),
		TotalPixels:      result.Stats.TotalPixels,
		HitPixels:        result.Stats.HitPixels,
		BackgroundPixels: result.Stats.BackgroundPixels,
		Coverage:         result.Stats.Coverage(),
		SphereCount:      len(pipeline.Scene.Spheres),
		LightCount:       len(pipeline.Scene.Lights),
	}

	data, err := json.Marshal(summary)
	if err != nil {
		log.Printf("Error marshaling render summary: %v", err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "complete", Data: string(data)}:
	case <-ctx.Done():
	}
}

// handleTileUpdate encodes and sends one finished tile
func (s *Server) handleTileUpdate(ctx context.Context, sseEventChan chan SSEEvent, tileResult renderer.TileCompletionResult) {
	imageData, err := s.imageToBase64PNG(tileResult.TileImage)
	if err != nil {
		log.Printf("Error encoding tile image: %v", err)
		return
	}

	data, err := json.Marshal(TileUpdate{
		TileX:      tileResult.TileX,
		TileY:      tileResult.TileY,
		X:          tileResult.Bounds.Min.X,
		Y:          tileResult.Bounds.Min.Y,
		ImageData:  imageData,
		TileNumber: tileResult.TileNumber,
		TotalTiles: tileResult.TotalTiles,
	})
	if err != nil {
		log.Printf("Error marshaling tile update: %v", err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "tile", Data: string(data)}:
	case <-ctx.Done():
	}
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	data, err := output.EncodePNG(img)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// handleError sends an error event
func (s *Server) handleError(ctx context.Context, sseEventChan chan SSEEvent, message string) {
	log.Printf("Render error: %s", message)
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: message}:
	case <-ctx.Done():
	}
}
