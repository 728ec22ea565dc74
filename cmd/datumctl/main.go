package main

import (
	"os"

	"github.com/danmuck/datumctl/cmd/datumctl/commands"
)

func main() {
	os.Exit(commands.Execute())
}
