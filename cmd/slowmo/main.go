// Command slowmo runs the proximity-triggered slow motion scene
package main

import (
	"github.com/tebeka/atexit"

	"github.com/lixenwraith/slowmo/core"
)

func main() {
	// Panic Recovery: restore the terminal and still run teardown handlers
	core.SetCrashCleanup(func() {
		if activeScreen != nil {
			activeScreen.Fini()
		}
	})
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
