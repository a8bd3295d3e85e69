package main

import (
	"fmt"
	"os"
	"os/exec"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"opavm/internal/catalog"
	"opavm/internal/runner"
)

// opaCommands is what the exec help shows in place of cobra's generated
// flag listing, since every argument is forwarded verbatim to OPA.
var opaCommands = [][2]string{
	{"bench", "Benchmark a Rego query"},
	{"build", "Build an OPA bundle"},
	{"capabilities", "Print the capabilities of OPA"},
	{"check", "Check Rego source files"},
	{"completion", "Generate shell completion"},
	{"deps", "Analyze Rego query dependencies"},
	{"eval", "Evaluate a Rego query"},
	{"exec", "Execute against input files"},
	{"fmt", "Format Rego source files"},
	{"help", "Help about any command"},
	{"inspect", "Inspect OPA bundle(s)"},
	{"parse", "Parse Rego source file"},
	{"run", "Start OPA in interactive or server mode"},
	{"sign", "Generate an OPA bundle signature"},
	{"test", "Execute Rego test cases"},
	{"version", "Print the version of OPA"},
}

func newExecCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "exec [args...]",
		Short:              "Run the active OPA binary and forward arguments",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 && args[0] == "--" {
				args = args[1:]
			}
			if len(args) == 1 && (args[0] == "-h" || args[0] == "--help" || args[0] == "help") {
				printExecHelp(cmd)
				return nil
			}

			spec, err := catalog.Get("opa")
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

			child := exec.Command(path, args...)
			child.Stdin = os.Stdin
			child.Stdout = os.Stdout
			child.Stderr = os.Stderr
			if err := child.Run(); err != nil {
				if exitErr, ok := err.(*exec.ExitError); ok {
					os.Exit(exitErr.ExitCode())
				}
				return err
			}
			return nil
		},
	}
	return cmd
}

func printExecHelp(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Usage: opavm exec -- <opa-args>")
	fmt.Fprintln(out, "Resolves OPA version (.opa-version > global default) and forwards args.")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Examples")
	fmt.Fprintln(out, "opavm exec -- version")
	fmt.Fprintln(out, "opavm exec -- test -v ./policy")
	fmt.Fprintln(out, `opavm exec -- eval -i input.json -d policy.rego "data.example.allow"`)
	fmt.Fprintln(out)
	fmt.Fprintln(out, headerStyle.Render("Available OPA Commands"))
	tw := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	for _, c := range opaCommands {
		fmt.Fprintf(tw, "  %s\t%s\n", accentStyle.Render(c[0]), c[1])
	}
	tw.Flush()
}
