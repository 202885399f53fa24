package main

import (
	"os"

	"github.com/halt-spesn/amberol/src/cli/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
