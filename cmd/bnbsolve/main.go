package main

import (
	"fmt"
	"os"

	"github.com/katalvlaran/bnbmilp/internal/cli"
)

var version = "dev"

func main() {
	rootCmd := cli.NewRootCmd(version)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "bnbsolve:", err)
		os.Exit(cli.ExitCode(err))
	}
}
