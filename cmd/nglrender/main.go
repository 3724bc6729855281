// Command nglrender renders nope.gl scenes offscreen and writes the captured
// frames to image files.
package main

import (
	"fmt"
	"os"

	"github.com/nopeforge/nopegl-go/cmd/nglrender/cmd"
)

func main() {
	if err := cmd.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
