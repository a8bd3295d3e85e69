package main

import (
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v4/host"
	"github.com/spf13/cobra"

	"opavm/internal/catalog"
	"opavm/internal/installer"
	"opavm/internal/platform"
	"opavm/internal/state"
)

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the local setup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(headerStyle.Render("opavm doctor"))
			fmt.Println()

			if name, _, version, err := host.PlatformInformation(); err == nil {
				fmt.Printf("Host:        %s %s\n", name, version)
			}
			if info, err := platform.Detect(); err == nil {
				fmt.Printf("Platform:    %s/%s\n", info.OS, info.Arch)
			} else {
				fmt.Println(errorStyle.Render("Platform:    " + err.Error()))
			}
			fmt.Printf("Home:        %s\n", state.BaseDir())
			if os.Getenv(state.EnvHome) != "" {
				fmt.Println(faintStyle.Render("             (set via " + state.EnvHome + ")"))
			}

			fmt.Println()
			checkDir("Versions dir", state.VersionsDir())
			checkDir("Shims dir", state.ShimsDir())
			checkDir("Keyrings dir", state.KeyringsDir())

			fmt.Println()
			if _, err := state.Load(); err != nil {
				fmt.Println(errorStyle.Render("State:       " + err.Error()))
			} else {
				fmt.Println(successStyle.Render("State:       ok"))
			}

			fmt.Println()
			inst := installer.New()
			for _, name := range catalog.Names() {
				spec, err := catalog.Get(name)
				if err != nil {
					continue
				}
				versions, err := inst.InstalledVersions(spec)
				if err != nil {
					fmt.Println(errorStyle.Render(spec.DisplayName + ": " + err.Error()))
					continue
				}
				fmt.Printf("%s: %d version(s) installed\n", spec.DisplayName, len(versions))
			}
			return nil
		},
	}
	return cmd
}

func checkDir(label, path string) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		fmt.Printf("%-12s %s\n", label+":", path)
		return
	}
	fmt.Printf("%-12s %s %s\n", label+":", path, warnStyle.Render("(missing)"))
}
