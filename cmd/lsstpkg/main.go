package main

import (
	"fmt"
	"os"

	"github.com/jonathansick-shadow/lsst/pkg/errors"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "lsstpkg: %s\n", errors.Message(err))
		os.Exit(errors.ExitCode(err))
	}
}
