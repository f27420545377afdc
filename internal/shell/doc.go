// Package shell is a line-oriented front end for the scanner.
//
// The shell reads one JSON request per line on its input and writes one JSON
// event per line on its output, so any program that can spawn a process and
// exchange lines can drive the scanner as its UI.
//
// # Requests
//
// Each request names a command in "cmd":
//   - load: Load the image at "path"
//   - start_camera, stop_camera: Control the live camera
//   - capture: Freeze the current camera frame
//   - clear_roi: Remove the selection
//   - suggest: Select the most text-like area of the image
//   - press, move, release: Pointer gesture at display coordinates "x", "y"
//   - extract: Run text recognition
//   - save: Write extracted text to "path"
//   - quit: Stop the shell
//
// End of input behaves like quit.
//
// # Events
//
// Each event names its kind in "event":
//   - frame: A rendered display image was written to "path" ("width", "height")
//   - selection: Rubber band rectangle in display coordinates, with "visible"
//   - text: Extracted text in "text"
//   - notice: A user message with "level" (info, warning, error) and "message"
//   - busy: "busy" is true while recognition runs
//   - error: A request could not be understood ("code", "message")
//
// Frames are written as PNG files into the frames directory, numbered in
// display order.
//
// # Error Handling
//
// Malformed requests produce error events with JSON-RPC style codes:
//   - -32700: the line is not valid JSON
//   - -32601: unknown command
//   - -32602: missing or invalid arguments
//
// Failed operations are not protocol errors; they arrive as notice events.
package shell
