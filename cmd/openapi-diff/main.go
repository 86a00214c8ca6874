// Command openapi-diff compares two OpenAPI documents and writes change reports.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/x3t/openapi-diff/cmd/openapi-diff/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := commands.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
