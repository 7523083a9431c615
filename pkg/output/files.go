package output

import (
	"fmt"
	"image"
	"path/filepath"
	"time"
)

// RenderFiles lists the files written for one render
type RenderFiles struct {
	Image     string
	Mask      string // Empty when no mask was written
	Thumbnail string // Empty when no thumbnail was written
}

// FileOptions selects the optional outputs of WriteRender
type FileOptions struct {
	Mask          image.Image // Coverage mask to save alongside the render, or nil
	ThumbnailSize uint        // Max thumbnail edge in pixels, 0 disables
}

// TimestampedName returns render_<timestamp> for t
func TimestampedName(t time.Time) string {
	return fmt.Sprintf("render_%s", t.Format("20060102_150405"))
}

// WriteRender saves img as dir/<base>.png plus the optional mask and thumbnail
func WriteRender(dir, base string, img image.Image, opts FileOptions) (RenderFiles, error) {
	files := RenderFiles{Image: filepath.Join(dir, base+".png")}
	if err := SavePNG(files.Image, img); err != nil {
		return files, err
	}

	if opts.Mask != nil {
		files.Mask = filepath.Join(dir, base+"_mask.png")
		if err := SavePNG(files.Mask, opts.Mask); err != nil {
			return files, err
		}
	}

	if opts.ThumbnailSize > 0 {
		files.Thumbnail = filepath.Join(dir, base+"_thumb.png")
		if err := SavePNG(files.Thumbnail, Thumbnail(img, opts.ThumbnailSize)); err != nil {
			return files, err
		}
	}

	return files, nil
}
