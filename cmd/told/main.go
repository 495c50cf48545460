package main

import (
	"os"

	"Told/internal/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Sync()
		os.Exit(1)
	}
	log.Sync()
}
