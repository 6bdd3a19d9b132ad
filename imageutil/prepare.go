package imageutil

import "image"

// Prepare converts a decoded image into the engine's input contract:
// alpha flattened over black, the longer edge bounded to maxEdge
// without enlargement, and the pixels laid out as a planar RGB buffer.
// Returns the buffer and the prepared dimensions.
func Prepare(img image.Image, maxEdge int) (rgb []uint8, w, h int) {
	rgba := RGBAImageFromImage(img)
	rgba = BoundEdge(rgba, maxEdge)
	return PlanarRGB(rgba), rgba.Width(), rgba.Height()
}
