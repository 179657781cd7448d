// Command eunify serves and inspects graph visualizations of the E-Unify
// graph backend.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
