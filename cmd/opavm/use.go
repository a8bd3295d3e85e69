package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"opavm/internal/catalog"
	"opavm/internal/fault"
	"opavm/internal/installer"
	"opavm/internal/state"
)

func newUseCmd() *cobra.Command {
	var tool string

	cmd := &cobra.Command{
		Use:   "use <version>",
		Short: "Set the global default version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := catalog.Get(tool)
			if err != nil {
				return err
			}
			version := args[0]

			inst := installer.New()
			if !inst.IsInstalled(version, spec) {
				return fault.New(fault.KindNotInstalled,
					"Version not installed.",
					"Run: "+installer.InstallCommand(spec, version))
			}

			if err := state.SetGlobalDefault(spec.Name, version); err != nil {
				return err
			}
			if spec.Name == "opa" {
				fmt.Println(successStyle.Render("Global default set to " + version + "."))
			} else {
				fmt.Println(successStyle.Render("Global default " + spec.DisplayName + " version set to " + version + "."))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&tool, "tool", "t", "opa", "tool to configure (opa or regal)")
	return cmd
}
