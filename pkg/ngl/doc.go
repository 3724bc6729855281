// Package ngl describes the native rendering engine this module drives and
// provides its bindings.
//
// The engine is consumed through the Engine, Media and WindowSystem
// interfaces. Builds with the "nopegl" tag and cgo enabled link libnopegl and
// libavutil and return them from Native; all other builds get a stub whose
// Native reports ErrNotSupported, which lets the rest of the module compile and
// run against a pure-Go engine (see package softgl).
//
// Handles are opaque integers: zero is the null handle and nothing outside the
// engine may interpret the value.
package ngl
