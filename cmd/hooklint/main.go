package main

import (
	"os"

	"github.com/grovetools/hooklint/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
