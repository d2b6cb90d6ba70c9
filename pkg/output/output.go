// Package output serializes finished pixel buffers to image formats.
package output

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
)

// WritePPM serializes the image as a plain-text portable pixmap (P3).
// Pixels are written row-major, top to bottom, one "R G B" line per pixel
// with channels in [0, 255].
func WritePPM(w io.Writer, img *image.RGBA) error {
	bw := bufio.NewWriter(w)

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", width, height); err != nil {
		return fmt.Errorf("writing ppm header: %w", err)
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", c.R, c.G, c.B); err != nil {
				return fmt.Errorf("writing pixel (%d,%d): %w", x, y, err)
			}
		}
	}

	return bw.Flush()
}

// WritePNG serializes the image as a PNG
func WritePNG(w io.Writer, img *image.RGBA) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// SaveImage writes the image to a file, choosing the encoder from the
// format name. The file is written to a temporary path and renamed into
// place so a failed render never leaves a partial image behind.
func SaveImage(path, format string, img *image.RGBA) error {
	var encode func(io.Writer, *image.RGBA) error
	switch format {
	case "ppm":
		encode = WritePPM
	case "png":
		encode = WritePNG
	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}

	if err := encode(tmp, img); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing output file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("renaming output file: %w", err)
	}
	return nil
}
