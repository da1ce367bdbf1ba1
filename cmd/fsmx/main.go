package main

import (
	"context"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/comalice/fsmx/cmd/fsmx/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	name := path.Base(os.Args[0])

	c := cli.NewCLI(name, os.Stdin, os.Stdout, os.Stderr)
	err := cli.RootCmd(c).ExecuteContext(ctx)
	cobra.CheckErr(err)
}
