package main

import (
	"os"

	"github.com/bankscope-dev/bankscope/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
