// Package imaging provides the image geometry and pixel operations used by the
// text scanner.
//
// This package owns the mapping between the two coordinate spaces the scanner
// works in, plus the small set of pixel operations built on top of it:
// decoding, cropping, preprocessing, and outline/label drawing.
//
// # Coordinate Spaces
//
// Source space is the pixel grid of the original, full-resolution image.
// Display space is the pixel grid of the scaled copy shown on the canvas.
// Both are 0-based with (0,0) at the top-left corner, X increasing rightward,
// and Y increasing downward.
//
// A Mapper converts points and regions between the two. Conversions truncate
// toward zero and are computed in integer arithmetic, so they are exact and
// deterministic for a given image/canvas pair.
//
// # Regions
//
// Region follows the standard image convention:
//   - (X1, Y1) is the top-left corner (inclusive)
//   - (X2, Y2) is the bottom-right corner (exclusive)
//
// A Region may be degenerate (zero width or height). Callers decide whether a
// degenerate region is acceptable; CropRegion rejects them.
//
// # Thread Safety
//
// All functions are stateless. Mapper values are immutable after creation and
// safe to share. None of the functions mutate their input images.
package imaging
