package main

import (
	"os"

	"github.com/moasq/tuimenu/internal/commands"
)

func main() {
	err := commands.Execute()
	code := commands.ExitCode(err)
	if code == commands.ExitError {
		commands.ReportError(err)
	}
	os.Exit(code)
}
