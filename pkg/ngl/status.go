package ngl

import "fmt"

// Native status codes. Success is 0; errors are negated little-endian
// four-character codes.
const (
	StatusOK              = 0
	StatusGeneric         = -0x6e656745 // 'Egen'
	StatusAccess          = -0x63636145 // 'Eacc'
	StatusBug             = -0x67756245 // 'Ebug'
	StatusExternal        = -0x74786545 // 'Eext'
	StatusInvalidArg      = -0x67726145 // 'Earg'
	StatusInvalidData     = -0x74616445 // 'Edat'
	StatusInvalidUsage    = -0x67737545 // 'Eusg'
	StatusIO              = -0x206f6945 // 'Eio '
	StatusLimitExceeded   = -0x6d696c45 // 'Elim'
	StatusMemory          = -0x6d656d45 // 'Emem'
	StatusNotFound        = -0x646e6645 // 'Efnd'
	StatusUnsupported     = -0x70757345 // 'Esup'
	StatusGraphicsGeneric = -0x65674745 // 'EGge'
)

var statusNames = map[int]string{
	StatusOK:              "ok",
	StatusGeneric:         "generic error",
	StatusAccess:          "access denied",
	StatusBug:             "internal bug",
	StatusExternal:        "external error",
	StatusInvalidArg:      "invalid argument",
	StatusInvalidData:     "invalid data",
	StatusInvalidUsage:    "invalid usage",
	StatusIO:              "i/o error",
	StatusLimitExceeded:   "limit exceeded",
	StatusMemory:          "out of memory",
	StatusNotFound:        "not found",
	StatusUnsupported:     "unsupported",
	StatusGraphicsGeneric: "graphics error",
}

// StatusString returns a readable name for a status code.
func StatusString(code int) string {
	if name, ok := statusNames[code]; ok {
		return name
	}
	if code > 0 {
		return fmt.Sprintf("ok (%d)", code)
	}
	return fmt.Sprintf("status %d", code)
}
