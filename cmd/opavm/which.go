package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"opavm/internal/catalog"
	"opavm/internal/runner"
)

// which prints only the resolved path, unstyled; the shim captures its
// output with command substitution.
func newWhichCmd() *cobra.Command {
	var tool string

	cmd := &cobra.Command{
		Use:   "which",
		Short: "Print the path of the active binary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := catalog.Get(tool)
			if err != nil {
				return err
			}
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}

			_, _, path, err := runner.ResolvedBinaryPath(cwd, spec)
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&tool, "tool", "t", "opa", "tool to locate (opa or regal)")
	return cmd
}
