package imageutil

import (
	"image"

	"golang.org/x/image/draw"
)

// Resize resizes an RGBA image to the specified dimensions with
// Catmull-Rom interpolation, which holds up for both up and down
// scaling.
func Resize(img *RGBAImage, width, height int) *RGBAImage {
	dst := NewRGBAImage(width, height)
	dstRect := image.Rect(0, 0, width, height)
	draw.CatmullRom.Scale(dst.RGBA, dstRect, img.RGBA, img.Bounds(), draw.Over, nil)
	return dst
}

// BoundEdge scales the image down so its longer edge does not exceed
// maxEdge, preserving aspect ratio. Images already within the bound
// are returned as-is; nothing is ever enlarged.
func BoundEdge(img *RGBAImage, maxEdge int) *RGBAImage {
	w, h := img.Width(), img.Height()
	if maxEdge <= 0 || (w <= maxEdge && h <= maxEdge) {
		return img
	}
	if w >= h {
		nh := h * maxEdge / w
		if nh < 1 {
			nh = 1
		}
		return Resize(img, maxEdge, nh)
	}
	nw := w * maxEdge / h
	if nw < 1 {
		nw = 1
	}
	return Resize(img, nw, maxEdge)
}
