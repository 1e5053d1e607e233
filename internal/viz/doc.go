// Package viz draws the course in the terminal.
//
// [CanvasRenderer] rasterizes a render stage onto a braille [Canvas] and
// [Model] is the Bubble Tea program around it: the course on the left, ball
// telemetry and the parameter panel on the right.
//
// # Key Bindings
//
//	Space     - Putt
//	R, Enter  - Release the putt and reset the ball
//	Tab       - Select parameter
//	Up/Down   - Tune selected parameter
//	D         - Toggle debug outlines
//	T         - Cycle color themes
//	G         - Toggle GIF recording
//	Q         - Quit
package viz
