package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/retroprints/covergen/cmd"
)

const version = "0.1.0"

func main() {
	// fang wraps the cobra tree with completions, manpages and --version.
	if err := fang.Execute(
		context.Background(),
		cmd.NewRootCmd(),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		os.Exit(1)
	}
}
