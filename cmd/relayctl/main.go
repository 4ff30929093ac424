package main

import (
	"os"

	"github.com/dkeye/Handshake/internal/console"
)

func main() {
	if err := console.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
