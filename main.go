package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/lepinkainen/imagesorter/cmd"
	"github.com/lepinkainen/imagesorter/logging"
	"github.com/lepinkainen/imagesorter/types"
)

var Version = "dev"

type CLI struct {
	LogLevel string `name:"log-level" help:"Console log level for the headless commands" default:"warn" enum:"trace,debug,info,warn,error"`

	Sort    cmd.SortCmd    `cmd:"" default:"1" help:"Interactively sort images into destination directories"`
	Check   cmd.CheckCmd   `cmd:"" help:"Decode every image and report the ones that fail"`
	Similar cmd.SimilarCmd `cmd:"" help:"Find perceptually similar images"`
	Init    cmd.InitCmd    `cmd:"" help:"Write a sample configuration file"`
	Version cmd.VersionCmd `cmd:"" help:"Show version"`
}

func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("imagesorter"),
		kong.Description("Sort a directory of images with single key presses."),
		kong.UsageOnError(),
	}, options...)
	return kong.New(cli, options...)
}

func main() {
	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	logger, err := logging.New(os.Stderr, cli.LogLevel)
	ctx.FatalIfErrorf(err)

	appCtx := &types.AppContext{Version: Version, Logger: logger}
	err = ctx.Run(appCtx)
	ctx.FatalIfErrorf(err)
}
