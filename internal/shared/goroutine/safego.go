// Package goroutine wraps background goroutines with panic recovery. A
// panicking worker must not take the server down.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"vigil/internal/shared/logger"
)

// SafeGo runs fn on a new goroutine. A panic in fn is recovered and logged
// with its stack under the given name rather than crashing the process.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("goroutine panicked",
					"goroutine", name,
					"panic", fmt.Sprintf("%v", r),
					"stack", string(debug.Stack()),
				)
			}
		}()
		fn()
	}()
}
