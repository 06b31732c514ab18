package main

import (
	"os"

	"github.com/yatube-project/yatube/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
