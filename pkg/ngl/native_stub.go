//go:build !nopegl || !cgo

package ngl

// Native reports ErrNotSupported: this build does not link libnopegl.
func Native() (*Runtime, error) {
	return nil, ErrNotSupported
}
