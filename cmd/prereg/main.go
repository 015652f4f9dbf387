package main

import (
	"os"

	"github.com/rustyeddy/prereg/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
