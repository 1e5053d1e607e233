// Package physics wraps the Chipmunk2D port (github.com/jakecoffman/cp) behind a
// handle-based rigid-body contract.
//
// Objects are addressed by opaque handles rather than pointers:
//
//   - [BodyHandle]: a rigid body created with [World.CreateRigidBody]
//   - [ColliderHandle]: a shape created with [World.CreateCollider]
//
// A collider created without a parent body is fixed in world space; it owns a
// private static body so that its translation and rotation can be changed in
// place without touching any other collider.
//
// Material and pose setters mutate the live object. A handle stays valid, and
// keeps pointing at the same object, until the world is discarded.
//
// # Thread Safety
//
// World is NOT thread-safe. All calls must come from the goroutine that drives
// [World.Step].
package physics
