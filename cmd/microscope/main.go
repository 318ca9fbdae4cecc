package main

import (
	_ "github.com/joho/godotenv/autoload"

	"microscope/cmd/microscope/cmd"
)

var version = "dev"

func main() {
	cmd.Execute(version)
}
