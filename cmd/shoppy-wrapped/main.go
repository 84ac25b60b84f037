package main

import (
	"github.com/joho/godotenv"

	"github.com/shoppy/wrapped/internal/cmd"
)

func main() {
	// Best effort; secrets can also come from the real environment.
	_ = godotenv.Load()

	cmd.Execute()
}
