package main

import (
	"os"

	"github.com/dvloznov/rural-insights/cmd/rural/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
