package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// PublishThumbnailSize bounds the longest edge of published thumbnails
const PublishThumbnailSize = 256

// PublishResponse is returned after a render has been uploaded
type PublishResponse struct {
	Scene        string  `json:"scene"`
	ImageURL     string  `json:"imageUrl"`
	ThumbnailURL string  `json:"thumbnailUrl"`
	MaskURL      string  `json:"maskUrl,omitempty"`
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	ElapsedMs    int64   `json:"elapsedMs"`
	Coverage     float64 `json:"coverage"`
}

// objectKeyPart turns a scene identifier into something safe for an object key
func objectKeyPart(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}

// handlePublish renders a scene and uploads the image and its thumbnail to S3
func (s *Server) handlePublish(c echo.Context) error {
	if s.uploader == nil {
		return errorJSON(c, http.StatusServiceUnavailable, output.ErrS3NotConfigured.Error())
	}

	pipeline, req, status, err := s.setupRenderingPipeline(c, renderer.NewDefaultLogger())
	if err != nil {
		return errorJSON(c, status, err.Error())
	}

	ctx := c.Request().Context()
	result, err := pipeline.Renderer.Render(ctx)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}

	prefix := fmt.Sprintf("renders/%s/%s", objectKeyPart(req.Scene), output.TimestampedName(time.Now()))

	imageURL, err := s.uploader.UploadPNG(ctx, prefix+".png", result.Image)
	if err != nil {
		return errorJSON(c, http.StatusBadGateway, err.Error())
	}
	thumbURL, err := s.uploader.UploadPNG(ctx, prefix+"_thumb.png", output.Thumbnail(result.Image, PublishThumbnailSize))
	if err != nil {
		return errorJSON(c, http.StatusBadGateway, err.Error())
	}

	response := PublishResponse{
		Scene:        pipeline.Scene.Name,
		ImageURL:     imageURL,
		ThumbnailURL: thumbURL,
		Width:        pipeline.Renderer.Width(),
		Height:       pipeline.Renderer.Height(),
		ElapsedMs:    result.Stats.Duration.Milliseconds(),
		Coverage:     result.Stats.Coverage(),
	}
	if req.Mask {
		maskURL, err := s.uploader.UploadPNG(ctx, prefix+"_mask.png", result.Mask)
		if err != nil {
			return errorJSON(c, http.StatusBadGateway, err.Error())
		}
		response.MaskURL = maskURL
	}

	return c.JSON(http.StatusOK, response)
}
