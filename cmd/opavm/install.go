package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"opavm/internal/catalog"
	"opavm/internal/fault"
	"opavm/internal/installer"
	"opavm/internal/shim"
)

// resolveInstallTarget maps install arguments onto a tool and version.
// Accepted forms:
//
//	opavm install <version>          (opa)
//	opavm install <tool>             (latest)
//	opavm install <tool> <version>
//	opavm install <version> --tool <tool>
func resolveInstallTarget(args []string, toolFlag string) (catalog.ToolSpec, string, error) {
	if toolFlag != "" {
		spec, err := catalog.Get(toolFlag)
		if err != nil {
			return catalog.ToolSpec{}, "", err
		}
		if len(args) != 1 {
			return catalog.ToolSpec{}, "", fault.New(fault.KindUsage,
				"Invalid install arguments.",
				"With --tool, use: opavm install <version> --tool <opa|regal>")
		}
		if strings.ToLower(strings.TrimSpace(args[0])) == spec.Name {
			return spec, "latest", nil
		}
		return spec, args[0], nil
	}

	switch len(args) {
	case 1:
		if catalog.IsSupported(args[0]) {
			spec, err := catalog.Get(args[0])
			return spec, "latest", err
		}
		spec, _ := catalog.Get("opa")
		return spec, args[0], nil
	default:
		spec, err := catalog.Get(args[0])
		if err != nil {
			return catalog.ToolSpec{}, "", err
		}
		return spec, args[1], nil
	}
}

func newInstallCmd() *cobra.Command {
	var tool string

	cmd := &cobra.Command{
		Use:   "install [tool] <version>",
		Short: "Install a tool version from GitHub releases",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, version, err := resolveInstallTarget(args, tool)
			if err != nil {
				return err
			}

			inst := installer.New()
			reporter := newInstallReporter(os.Stdout, spec)
			resolved, err := inst.Install(version, spec, reporter.status, reporter.progress)
			if err != nil {
				return err
			}

			fmt.Println(successStyle.Render("Installed " + spec.DisplayName + " " + resolved + "."))
			if spec.Name == "opa" {
				shimPath, err := shim.EnsureShim()
				if err != nil {
					return err
				}
				fmt.Println("Shim ready at " + shimPath + ".")
				if instruction, err := shim.PathInstruction(); err == nil {
					fmt.Println(faintStyle.Render(instruction))
				}
			} else {
				path, err := inst.BinaryPath(resolved, spec)
				if err != nil {
					return err
				}
				fmt.Println("Binary path: " + path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&tool, "tool", "t", "", "tool to install (opa or regal)")
	return cmd
}
