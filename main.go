package main

import (
	"os"

	"go.dot.industries/cccpt/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
