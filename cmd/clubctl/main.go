// Command clubctl operates on a club state file directly, without the HTTP
// service. It is meant for operators: seeding a store, repairing a roster, or
// inspecting state while the server is stopped.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
