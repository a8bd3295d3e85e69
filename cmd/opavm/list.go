package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"opavm/internal/catalog"
	"opavm/internal/installer"
)

func newListCmd() *cobra.Command {
	var tool string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List installed versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := catalog.Get(tool)
			if err != nil {
				return err
			}

			versions, err := installer.New().InstalledVersions(spec)
			if err != nil {
				return err
			}
			if len(versions) == 0 {
				if spec.Name == "opa" {
					fmt.Println("No installed versions. Run: opavm install latest")
				} else {
					fmt.Printf("No installed %s versions. Run: opavm install %s latest\n",
						spec.DisplayName, spec.Name)
				}
				return nil
			}

			for _, v := range versions {
				fmt.Println(v)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&tool, "tool", "t", "opa", "tool to list (opa or regal)")
	return cmd
}
