// Where: cmd/apigen/main.go
// What: CLI entrypoint.
// Why: Execute apigen commands with configured dependencies.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/poruru/apigen/internal/command"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := command.Run(os.Args[1:], buildDependencies(ctx))
	stop()
	os.Exit(code)
}
