package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jingkaihe/skillcheck/pkg/presenter"
	"github.com/jingkaihe/skillcheck/pkg/skills"
)

const maxDescriptionWidth = 60

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List discovered skills",
	Long:  `List every skill below the repository root with its name, directory and description.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		config := getValidateConfigFromViper()
		if err := listSkillsCmd(cmd.Context(), config, os.Stdout); err != nil {
			presenter.Error(err, "Failed to list skills")
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func listSkillsCmd(ctx context.Context, config *ValidateConfig, w io.Writer) error {
	root, err := resolveRoot(config.Root)
	if err != nil {
		return err
	}

	walker, err := skills.NewWalker(root, skills.WithExcludedDirs(config.Exclude...))
	if err != nil {
		return err
	}

	catalog, err := walker.Catalog(ctx)
	if err != nil {
		return err
	}

	if len(catalog) == 0 {
		fmt.Fprintln(w, "No skills found")
		return nil
	}

	return renderSkillTable(w, catalog)
}

func renderSkillTable(w io.Writer, catalog []*skills.Skill) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tDIRECTORY\tDESCRIPTION")
	fmt.Fprintln(tw, "----\t---------\t-----------")

	for _, skill := range catalog {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", skill.Name, skill.Directory, truncate(skill.Description, maxDescriptionWidth))
	}
	return tw.Flush()
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}
