// Package detection finds areas of an image that are likely to contain text.
//
// It is used to suggest a region of interest before recognition. The
// heuristic needs no OCR engine; it looks for windows whose edge density
// and edge structure resemble lines of print:
//
//  1. Convert to greyscale and mark pixels whose gradient to the right or
//     downward neighbour exceeds EdgeThreshold.
//  2. Slide windows of several text-line sizes over the edge map, scoring
//     each by edge density (best near 20%) and by how much of the edge
//     structure is made of short horizontal runs.
//  3. Merge overlapping windows that score at least the minimum into blocks,
//     highest score first.
//
// Window sums come from summed-area tables, so the cost is linear in the
// number of pixels per window size.
//
// # Coordinate System
//
// Blocks are returned as imaging.Region values in the coordinate space of
// the input image with its bounds rebased to (0,0): X1/Y1 inclusive, X2/Y2
// exclusive.
//
// # Limitations
//
// The heuristic works best on clean, high-contrast print. Photographs with
// heavy texture or noise may produce spurious blocks; very large type
// exceeds the window sizes and is found only in pieces.
package detection
