package main

import (
	"os"

	"github.com/preston-bernstein/team-draft-service/internal/config"
)

func main() {
	if err := newRootCmd(config.Load()).Execute(); err != nil {
		os.Exit(1)
	}
}
