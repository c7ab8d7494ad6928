package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	zhouyicmd "github.com/koriyoshi2041/zhouyi/internal/cmd/zhouyi"
	"github.com/koriyoshi2041/zhouyi/internal/platform/config"
	platformerrors "github.com/koriyoshi2041/zhouyi/internal/platform/errors"
)

// main casts and annotates hexagrams from the command line.
func main() {
	cfg, err := zhouyicmd.ParseConfig()
	if err != nil {
		config.Exitf("zhouyi: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli := zhouyicmd.New(cfg, os.Stdout, os.Stderr)
	if err := cli.Execute(ctx, os.Args[1:]); err != nil {
		stop()
		config.ExitWithCode(platformerrors.ExitCode(err), "zhouyi: %s", cli.ErrorMessage(err))
	}
}
