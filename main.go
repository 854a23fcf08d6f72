package main

import (
	"os"

	"github.com/blagoySimandov/cvtex/internal/cli"
)

var version = "dev"

func main() {
	os.Exit(cli.Execute(version))
}
