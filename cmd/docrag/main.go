package main

import (
	"github.com/joho/godotenv"

	"docrag/internal/cli"
)

func main() {
	// .env is optional; environment variables win when both are set
	_ = godotenv.Load()

	cli.Execute()
}
