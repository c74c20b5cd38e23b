// Package main is the entry point for the votd CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/MWPuppire/votd/internal/cli"
	"github.com/MWPuppire/votd/internal/netbible"
	"github.com/MWPuppire/votd/pkg/version"
)

func main() {
	os.Exit(run())
}

// run executes the root command and maps failures to an exit code.
func run() int {
	root := cli.NewRootCmd(version.GetVersion())
	root.SetOut(os.Stdout)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error: "+userMessage(err))
		return 1
	}

	return 0
}

// userMessage maps an error to the message shown to the user. Transport
// failures get a friendlier wording than the raw error chain.
func userMessage(err error) string {
	switch {
	case errors.Is(err, netbible.ErrTimeout):
		return "timeout exceeded"
	case errors.Is(err, netbible.ErrConnect):
		return "couldn't connect to the server; are you connected to the Internet?"
	case errors.Is(err, netbible.ErrStatus):
		return "the verse service returned an error; try again later"
	default:
		return err.Error()
	}
}
