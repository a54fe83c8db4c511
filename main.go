package main

import (
	"os"

	"github.com/twinchat/twinchat/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
