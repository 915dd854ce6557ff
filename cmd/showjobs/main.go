package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Nao-Mk2/showjobs/cmd"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := cmd.Execute(ctx)
	cancel()
	os.Exit(code)
}
