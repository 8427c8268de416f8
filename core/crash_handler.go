package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync/atomic"

	"github.com/tebeka/atexit"
)

var crashCleanup atomic.Pointer[func()]

// SetCrashCleanup installs fn to run before the crash report is printed, typically restoring the terminal
func SetCrashCleanup(fn func()) {
	crashCleanup.Store(&fn)
}

// HandleCrash restores the terminal, prints r with the stack trace and exits through atexit
func HandleCrash(r any) {
	if r == nil {
		return
	}

	if fn := crashCleanup.Load(); fn != nil {
		(*fn)()
	}

	fmt.Fprintf(os.Stderr, "\n\x1b[31mSLOWMO CRASHED: %v\x1b[0m\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())

	atexit.Exit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword so a crash still restores the terminal.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
