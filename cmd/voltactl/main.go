// Voltactl manages the schema store of a Volta deployment: spaces, tags,
// edges and indexes can be created, inspected and bulk loaded from YAML
// definition files.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "voltactl:", err)
		os.Exit(1)
	}
}
