// Package main is the entrypoint for the greeter service, a single-route
// HTTP responder packaged for ECS Fargate.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fargate-labs/greeter/internal/server"
)

func main() {
	ctx := context.Background()
	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	return server.Run(ctx, server.Params{Name: "greeter"}, nil)
}
