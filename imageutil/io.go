package imageutil

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"

	_ "golang.org/x/image/tiff" // Register TIFF decoder
)

// LoadImage loads an image from the specified path.
// Supports PNG, JPEG, GIF, and TIFF formats.
func LoadImage(path string) (*RGBAImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return RGBAImageFromImage(img), nil
}

// WriteBinaryPNG encodes a 0/255 byte raster as a single-channel PNG.
func WriteBinaryPNG(w io.Writer, pix []uint8, width, height int) error {
	if len(pix) != width*height {
		return fmt.Errorf("raster is %d bytes, want %d", len(pix), width*height)
	}
	gray := image.NewGray(image.Rect(0, 0, width, height))
	copy(gray.Pix, pix)
	return png.Encode(w, gray)
}

// SaveBinaryPNG writes a 0/255 byte raster to a PNG file.
func SaveBinaryPNG(path string, pix []uint8, width, height int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := WriteBinaryPNG(f, pix, width, height); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
