// Command panelcore is the interactive panel-detection session: load a
// comic or manga page, run the detection pipeline, and save a debug
// overlay plus a region sidecar for downstream EPUB assembly.
package main

import (
	"github.com/the-wabe/panelcore/pkg/cli"
)

func main() {
	cli.RunCLI()
}
