package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/service-sdk/go-sdk-qn-manager/api.v7/conf"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "kodoctl %s (%s/%s, %s)\n",
				conf.Version(), runtime.GOOS, runtime.GOARCH, runtime.Version())
		},
	}
}
