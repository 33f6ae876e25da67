package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/iWorld-y/news_verifier/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		os.Stderr.WriteString(cli.ErrorMessage(err) + "\n")
		stop()
		os.Exit(1)
	}
}
