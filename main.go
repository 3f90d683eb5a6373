package main

import (
	"github.com/joho/godotenv"

	"github.com/waymark-dev/waymark/internal/cli"
)

func main() {
	// Load .env if present so WAYMARK_API_URL can come from the project dir.
	_ = godotenv.Load()

	cli.Execute()
}
