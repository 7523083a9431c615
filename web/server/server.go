package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// DefaultTileSize is the tile edge used for web renders
const DefaultTileSize = 32

// Server handles web requests for the raytracer
type Server struct {
	config   *config.Config
	uploader *output.S3Uploader // nil when publishing is not configured
	echo     *echo.Echo
}

// NewServer creates a new web server. uploader may be nil.
func NewServer(cfg *config.Config, uploader *output.S3Uploader) *Server {
	s := &Server{
		config:   cfg,
		uploader: uploader,
		echo:     echo.New(),
	}
	s.echo.HideBanner = true
	s.routes()
	return s
}

func (s *Server) routes() {
	s.echo.Use(corsMiddleware)
	s.echo.Use(requestLogMiddleware)

	s.echo.GET("/api/health", s.handleHealth)
	s.echo.GET("/api/scenes", s.handleScenes)
	s.echo.GET("/api/scene-config", s.handleSceneConfig)
	s.echo.GET("/api/render", s.handleRenderImage)
	s.echo.GET("/api/render/stream", s.handleRenderStream)
	s.echo.GET("/api/inspect", s.handleInspect)
	s.echo.POST("/api/publish", s.handlePublish)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the web server
func (s *Server) Start() error {
	log.Printf("Starting web server on %s", s.config.ServerAddress)
	if err := s.echo.Start(s.config.ServerAddress); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		c.Response().Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Response().Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")

		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}

		return next(c)
	}
}

func requestLogMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		log.Printf("%s %s -> %d (%v)", c.Request().Method, c.Request().URL.Path, c.Response().Status, time.Since(start))
		return err
	}
}

// errorJSON writes {"error": message} with the given status
func errorJSON(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"error": message})
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":     "ok",
		"publishing": s.uploader != nil,
	})
}

// handleScenes lists built-in and JSON scenes grouped by category
func (s *Server) handleScenes(c echo.Context) error {
	response, err := scene.ListAllScenes(s.config.ScenesDir)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, response)
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(c echo.Context) error {
	sceneName := c.QueryParam("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	sceneObj, err := scene.Create(sceneName, s.config.ScenesDir)
	if err != nil {
		return errorJSON(c, sceneErrorStatus(err), err.Error())
	}

	cam := sceneObj.CameraConfig
	return c.JSON(http.StatusOK, map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"width":       cam.Width,
			"height":      cam.Height(),
			"aspectRatio": cam.AspectRatio,
			"vfov":        cam.VFov,
			"bounces":     sceneObj.BounceLimit,
			"spheres":     len(sceneObj.Spheres),
			"lights":      len(sceneObj.Lights),
		},
		"limits": map[string]interface{}{
			"width":   map[string]int{"min": minWidth, "max": maxWidth},
			"bounces": map[string]int{"min": -1, "max": maxBounces},
			"gamma":   map[string]float64{"min": minGamma, "max": maxGamma},
		},
	})
}

const (
	minWidth    = 16
	maxWidth    = 2000
	maxBounces  = 64
	minGamma    = 1.0
	maxGamma    = 3.0
	minTileSize = 8
	maxTileSize = 256
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene    string  `json:"scene"`    // Built-in ID, json:<name>, or .json path
	Width    int     `json:"width"`    // 0 keeps the scene's width
	Bounces  int     `json:"bounces"`  // -1 keeps the scene's bounce limit
	Gamma    float64 `json:"gamma"`    // Output gamma
	TileSize int     `json:"tileSize"` // Tile edge in pixels
	Mask     bool    `json:"mask"`     // Return the coverage mask instead of the color image
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}
	if err := validateSceneName(req.Scene); err != nil {
		return nil, err
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 0, minWidth, maxWidth); err != nil {
		return nil, err
	}
	defaultBounces := max(-1, min(maxBounces, s.config.BounceLimit))
	if req.Bounces, err = parseIntParam(values, "bounces", defaultBounces, -1, maxBounces); err != nil {
		return nil, err
	}
	defaultGamma := max(minGamma, min(maxGamma, s.config.Gamma))
	if req.Gamma, err = parseFloatParam(values, "gamma", defaultGamma, minGamma, maxGamma); err != nil {
		return nil, err
	}
	if req.TileSize, err = parseIntParam(values, "tileSize", DefaultTileSize, minTileSize, maxTileSize); err != nil {
		return nil, err
	}
	if mask := values.Get("mask"); mask != "" {
		if req.Mask, err = strconv.ParseBool(mask); err != nil {
			return nil, fmt.Errorf("invalid mask: %s", mask)
		}
	}

	return req, nil
}

// validateSceneName keeps web requests inside the configured scenes directory.
// Only built-in IDs and "json:<name>" are accepted; raw file paths are CLI-only.
func validateSceneName(name string) error {
	if strings.HasSuffix(name, ".json") {
		return fmt.Errorf("scene files must be referenced as json:<name>, got: %s", name)
	}
	if jsonName, ok := strings.CutPrefix(name, "json:"); ok {
		if jsonName == "" || strings.ContainsAny(jsonName, `/\`) || strings.Contains(jsonName, "..") {
			return fmt.Errorf("invalid scene name: %s", name)
		}
	}
	return nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %f and %f, got: %f", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene builds the requested scene with width and bounce overrides applied
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	sceneObj, err := scene.Create(req.Scene, s.config.ScenesDir, geometry.CameraConfig{Width: req.Width})
	if err != nil {
		return nil, err
	}
	if req.Bounces >= 0 {
		sceneObj = sceneObj.WithBounceLimit(req.Bounces)
	}
	return sceneObj, nil
}

// rendererConfig converts request options to a renderer configuration
func (s *Server) rendererConfig(req *RenderRequest) renderer.Config {
	cfg := renderer.DefaultConfig()
	cfg.TileSize = req.TileSize
	cfg.NumWorkers = s.config.NumWorkers
	cfg.Gamma = req.Gamma
	return cfg
}

// sceneErrorStatus maps scene creation errors to HTTP status codes
func sceneErrorStatus(err error) int {
	if errors.Is(err, scene.ErrUnknownScene) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}
