package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"opavm/internal/catalog"
	"opavm/internal/fault"
	"opavm/internal/installer"
)

func newPinCmd() *cobra.Command {
	var tool string

	cmd := &cobra.Command{
		Use:   "pin <version>",
		Short: "Pin a version for the current directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := catalog.Get(tool)
			if err != nil {
				return err
			}
			version := args[0]

			inst := installer.New()
			if !inst.IsInstalled(version, spec) {
				fmt.Printf("Version %s is not installed. Install now? [Y/n] ", version)
				answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
				if strings.ToLower(strings.TrimSpace(answer)) == "n" {
					return fault.New(fault.KindNotInstalled,
						"Version not installed.",
						"Run: "+installer.InstallCommand(spec, version))
				}
				reporter := newInstallReporter(os.Stdout, spec)
				resolved, err := inst.Install(version, spec, reporter.status, reporter.progress)
				if err != nil {
					return err
				}
				version = resolved
			}

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			pinPath := filepath.Join(cwd, spec.PinFilename)
			if err := os.WriteFile(pinPath, []byte(version+"\n"), 0o644); err != nil {
				return err
			}
			fmt.Println(successStyle.Render("Pinned " + version + " in " + pinPath + "."))
			return nil
		},
	}

	cmd.Flags().StringVarP(&tool, "tool", "t", "opa", "tool to pin (opa or regal)")
	return cmd
}
