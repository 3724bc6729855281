//go:build !nopegl || !cgo

package ngl

import (
	"errors"
	"testing"
)

func TestNativeUnavailable(t *testing.T) {
	rt, err := Native()
	if !errors.Is(err, ErrNotSupported) || rt != nil {
		t.Errorf("Native() = %v, %v; want nil, ErrNotSupported", rt, err)
	}
}
