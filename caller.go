package rawfmt

import (
	"runtime"
	"strings"
)

const unknownFunction = "unknown"

// CurrentFn returns the name of the calling function without package path or
// receiver. If the caller cannot be determined it returns "unknown".
func CurrentFn() string {
	fn, _ := callerFrame(2)
	return fn
}

// callerFrame reports the short function name and line of the frame skip
// levels above callerFrame itself.
func callerFrame(skip int) (string, int) {
	pc, _, line, ok := runtime.Caller(skip)
	if !ok || pc == 0 {
		return unknownFunction, 0
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return unknownFunction, line
	}
	return shortFunctionName(fn.Name()), line
}

// shortFunctionName strips "path/to/pkg.(*Recv)." from a qualified name.
func shortFunctionName(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		return unknownFunction
	}
	return name
}
