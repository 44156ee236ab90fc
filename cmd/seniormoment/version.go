package main

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Set with -ldflags "-X main.version=... -X main.commit=...".
var (
	version = "v0.0.0"
	commit  = "unknown"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			color.New(color.Bold).Fprint(out, "seniormoment ")
			fmt.Fprintf(out, "%s (commit %s, %s)\n", version, commit, runtime.Version())
		},
	}
}
