package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/ansera-cli/internal/adapters/driving/cli"
)

// version is set at build time:
//
//	go build -ldflags "-X main.version=v0.2.0"
var version = "dev"

func main() {
	// Optional .env for OLLAMA_HOST and friends. A missing file is fine.
	_ = godotenv.Load()

	if err := cli.Execute(version); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
