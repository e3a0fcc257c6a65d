package main

import (
	"os"

	"github.com/tk-425/caller-cli/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
