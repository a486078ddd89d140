// Package main provides the cafeteria CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/campusbites/cafeteria/pkg/types"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to a process exit code: user errors (bad input,
// unknown ids) exit 1, everything else exits 2.
func exitCode(err error) int {
	switch {
	case errors.Is(err, types.ErrOrderNotFound),
		errors.Is(err, types.ErrInvalidOrder),
		errors.Is(err, types.ErrInvalidID),
		errors.Is(err, types.ErrInvalidStatus),
		errors.Is(err, types.ErrDuplicateOrder):
		return exitUserError
	default:
		return exitSysError
	}
}
