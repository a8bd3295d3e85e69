package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"opavm/internal/catalog"
	"opavm/internal/github"
)

func newReleasesCmd() *cobra.Command {
	var tool string
	var limit int

	cmd := &cobra.Command{
		Use:   "releases",
		Short: "List recent upstream releases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := catalog.Get(tool)
			if err != nil {
				return err
			}
			repo, err := github.RepoFor(spec)
			if err != nil {
				return err
			}

			releases, err := github.NewClient().FetchRecentReleases(limit, repo)
			if err != nil {
				return err
			}
			fmt.Println()
			fmt.Println(headerStyle.Render(spec.DisplayName + " Releases"))
			fmt.Println(faintStyle.Render("https://github.com/" + repo + "/releases"))
			fmt.Println()

			tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
			fmt.Fprintln(tw, headerStyle.Render("Version")+"\t"+
				headerStyle.Render("Tag")+"\t"+
				headerStyle.Render("Published")+"\t"+
				headerStyle.Render("Pre-release"))
			for _, rel := range releases {
				published := "-"
				if rel.PublishedAt != "" {
					published = rel.PublishedAt
					if len(published) > 10 {
						published = published[:10]
					}
				}
				pre := "no"
				if rel.Prerelease {
					pre = warnStyle.Render("yes")
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
					accentStyle.Render(rel.Version), rel.Tag, published, pre)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&tool, "tool", "t", "opa", "tool to query (opa or regal)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of releases to show")
	return cmd
}
