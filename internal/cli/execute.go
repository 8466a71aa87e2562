package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/arthur-debert/modup/pkg/errors"
)

// Execute runs modup with args and returns the process exit code: 0 when
// every package succeeded or there was nothing to do, 1 otherwise.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	// Coded errors were already rendered by the command
	var modupErr *errors.ModupError
	if !stderrors.As(err, &modupErr) {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return 1
}
