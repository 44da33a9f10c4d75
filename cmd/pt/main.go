package main

import (
	"context"
	"fmt"
	"os"

	"progress-tracker/internal/cli"
)

func main() {
	root := cli.NewRootCommand(cli.NewRuntime, os.Stdout)

	if err := root.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
