package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"opavm/internal/catalog"
	"opavm/internal/resolver"
)

func newCurrentCmd() *cobra.Command {
	var tool string

	cmd := &cobra.Command{
		Use:   "current",
		Short: "Show the active version and how it was chosen",
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

			res, err := resolver.Resolve(cwd, spec)
			if err != nil {
				return err
			}
			fmt.Printf("%s %s\n", accentStyle.Render(res.Version), faintStyle.Render("("+res.Reason+")"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&tool, "tool", "t", "opa", "tool to inspect (opa or regal)")
	return cmd
}
