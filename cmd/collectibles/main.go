// Command collectibles is the command-line front end of the collectible
// accounting core.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err == nil {
		return
	}

	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) || !exitErr.Reported {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
