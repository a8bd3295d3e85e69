package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"opavm/internal/catalog"
	"opavm/internal/installer"
)

func newUninstallCmd() *cobra.Command {
	var tool string

	cmd := &cobra.Command{
		Use:   "uninstall <version>",
		Short: "Remove an installed version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := catalog.Get(tool)
			if err != nil {
				return err
			}
			version := args[0]

			if err := installer.New().Uninstall(version, spec); err != nil {
				return err
			}
			fmt.Println(successStyle.Render("Uninstalled " + spec.DisplayName + " " + version + "."))
			return nil
		},
	}

	cmd.Flags().StringVarP(&tool, "tool", "t", "opa", "tool to uninstall from (opa or regal)")
	return cmd
}
