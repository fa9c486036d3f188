package main

import (
	"fmt"
	"os"

	"github.com/shashiranjanraj/mithai/internal/server"

	// Register migrations so Bootstrap can run pending ones on startup.
	_ "github.com/shashiranjanraj/mithai/database/migrations"
)

func main() {
	if err := server.Start(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
