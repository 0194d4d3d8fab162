package main

import (
	"os"

	"github.com/idilsaglam/todolist/internal/cli"
)

func main() {
	// Config, flags and subcommands are all resolved by the CLI runner.
	os.Exit(cli.Run(os.Args[1:], cli.Options{}))
}
