package main

import (
	"os"

	"github.com/ecotrace/wastewatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
