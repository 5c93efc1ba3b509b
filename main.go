package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/261019-go-pkg-envsubst/internal/command"
	"github.com/lwmacct/261019-go-pkg-envsubst/internal/command/configure"
	"github.com/lwmacct/261019-go-pkg-envsubst/internal/command/process"
	"github.com/lwmacct/261019-go-pkg-envsubst/internal/version"
)

func main() {
	app := &cli.Command{
		Name:      version.AppRawName,
		Usage:     "替换文件中的环境变量占位符",
		Version:   version.GetVersion(),
		ArgsUsage: "[pattern...]",
		Flags:     command.Flags(),
		Action:    process.Action,
		Commands: []*cli.Command{
			version.Command,
			configure.Command,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
