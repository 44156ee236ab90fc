package main

import (
	"github.com/spf13/cobra"
)

func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "seniormoment",
		Short:         "Alarm and reminder daemon that plays every sound through one funnel",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(NewRunCommand())
	root.AddCommand(NewVersionCommand())
	return root
}
