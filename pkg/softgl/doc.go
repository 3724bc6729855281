// Package softgl is a pure-Go rendering engine implementing the ngl
// interfaces on top of the gg software rasterizer.
//
// It understands a small subset of the engine's serialized scene format
// (solid colored quads and groups), renders offscreen or into registered
// surfaces, and writes RGBA pixels into a caller-provided capture buffer on
// each draw. Every handle it hands out is tracked so callers can check that
// nothing leaked:
//
//	eng := softgl.New()
//	rt := eng.Runtime()
//	...
//	if s := eng.Stats(); s != (softgl.Stats{}) {
//		// something was not released
//	}
package softgl

// Version is the scene format version this engine accepts. Scenes whose
// major.minor is newer are rejected.
const Version = "v0.11.0"
