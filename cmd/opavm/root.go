// opavm is a dead-simple version manager for OPA and Regal.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Execute runs the root cobra command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "opavm",
		Short: "A dead-simple OPA version manager",
		Long: "A dead-simple OPA version manager.\n\n" +
			"Tools: opa (default) and regal. Use --tool on tool-aware commands\n" +
			"like list, uninstall, and releases. For install you can use either\n" +
			"`opavm install regal 0.38.1` or `opavm install 0.38.1 --tool regal`.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newInstallCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newUseCmd())
	cmd.AddCommand(newPinCmd())
	cmd.AddCommand(newCurrentCmd())
	cmd.AddCommand(newWhichCmd())
	cmd.AddCommand(newExecCmd())
	cmd.AddCommand(newUninstallCmd())
	cmd.AddCommand(newReleasesCmd())
	cmd.AddCommand(newDoctorCmd())

	return cmd
}
