package cli

import (
	"flag"
	"fmt"
)

// Version is set at build time via -ldflags
var Version = "dev"

// newVersionCommand creates the version command
func newVersionCommand() *Command {
	return &Command{
		Name:        "version",
		Description: "Print the build version",
		Flags:       flag.NewFlagSet("version", flag.ExitOnError),
		Run: func(args []string) error {
			fmt.Printf("contentlint %s\n", Version)
			return nil
		},
	}
}
