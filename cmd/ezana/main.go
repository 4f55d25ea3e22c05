package main

import (
	"os"

	"github.com/CRONANANI/ezana/backend/cmd/ezana/commands"
)

// main is the entry point for the Ezana dashboard CLI
// ⭐ Single CLI entry point: go run ./cmd/ezana [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
