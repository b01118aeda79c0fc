package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/style"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !isReported(err) {
			fmt.Fprintln(os.Stderr, style.Paint("Error", fmt.Sprintf("Error: %v", err)))
		}
		stop()
		os.Exit(1)
	}
}
