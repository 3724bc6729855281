package cmd

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

var formats = map[string]func(io.Writer, image.Image) error{
	"png": png.Encode,
	"bmp": bmp.Encode,
	"tiff": func(w io.Writer, img image.Image) error {
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	},
}

// resolveFormat picks the output encoding from an explicit name or, when
// empty, from the output file extension.
func resolveFormat(name, out string) (string, error) {
	if name == "" {
		name = strings.TrimPrefix(strings.ToLower(filepath.Ext(out)), ".")
		if name == "tif" {
			name = "tiff"
		}
		if name == "" {
			name = "png"
		}
	}
	if _, ok := formats[name]; !ok {
		return "", fmt.Errorf("unknown format %q (use png, bmp, or tiff)", name)
	}
	return name, nil
}

// frameName returns the path for frame i of n. A single frame keeps out as
// is; otherwise an index is inserted before the extension.
func frameName(out string, i, n int) string {
	if n <= 1 {
		return out
	}
	ext := filepath.Ext(out)
	return fmt.Sprintf("%s-%03d%s", strings.TrimSuffix(out, ext), i, ext)
}

// frameImage wraps captured RGBA bytes in an image without copying.
func frameImage(pix []byte, width, height int) *image.RGBA {
	return &image.RGBA{
		Pix:    pix,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}
}

func writeFrame(path, format string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := formats[format](f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
