package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/arthur-debert/modup/internal/cli"
)

func main() {
	// Interrupting stops archives that have not started; running ones finish
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
