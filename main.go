package main

import (
	"os"

	"nexventory/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
