package main

import (
	"os"

	"github.com/okian/keel/internal/cli"
	"github.com/okian/keel/pkg/logger"
)

func main() {
	// Initialize logging before anything else can log.
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	os.Exit(cli.Execute())
}
