package main

import (
	"os"

	"github.com/ainative/ainative-go/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
