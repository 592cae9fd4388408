// Command pathsample interpolates a smooth path through the knots in a YAML
// file and prints samples along it.
//
// The knot file lists the knots and, optionally, the topology:
//
//	topology: closed
//	knots:
//	  - [0, 0, 0]
//	  - [1, 0, 0]
//	  - [1, 1, 0]
//
// Every flag can also be set through a PATHSAMPLE_ environment variable, such
// as PATHSAMPLE_SAMPLES=32, or in the file passed with --config.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
