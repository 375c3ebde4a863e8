package main

import (
	"context"
	"os"

	"github.com/skiff-sh/fpless/cmd/cmdinit"
	"github.com/skiff-sh/fpless/pkg/interact"
)

func main() {
	cmd, err := cmdinit.NewCommand()
	if err != nil {
		interact.Error(err.Error())
		os.Exit(1)
	}

	ctx := context.Background()

	err = cmd.Run(ctx, os.Args)
	if err != nil {
		interact.Error(err.Error())
		os.Exit(1)
	}
}
