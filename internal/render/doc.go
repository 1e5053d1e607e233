// Package render is a small retained-mode drawing contract.
//
// A [Graphics] records drawing commands (lines, rectangles, circles) in its
// local coordinate frame and carries a position and rotation. A [Container]
// orders graphics for drawing, and a [Renderer] turns a container into pixels.
// Coordinates are world units with y pointing up; renderers own the mapping
// to screen space.
package render
