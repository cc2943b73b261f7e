package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jingkaihe/skillcheck/pkg/logger"
	"github.com/jingkaihe/skillcheck/pkg/presenter"
	"github.com/jingkaihe/skillcheck/pkg/skills"
)

// ValidateConfig holds the options of a validation run
type ValidateConfig struct {
	Root           string
	StrictSections bool
	Exclude        []string
	Quiet          bool
}

// NewValidateConfig returns the defaults used when no flag, env var or config
// file overrides them
func NewValidateConfig() *ValidateConfig {
	return &ValidateConfig{
		Root:           "",
		StrictSections: false,
		Exclude:        skills.DefaultExcludedDirs,
		Quiet:          false,
	}
}

func init() {
	// Environment variables
	viper.SetEnvPrefix("SKILLCHECK")
	viper.AutomaticEnv()

	// Config file support
	viper.SetConfigName("skillcheck")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.skillcheck")
	viper.AddConfigPath(".")

	// Load config file if it exists (ignore errors if it doesn't)
	_ = viper.ReadInConfig()
}

var rootCmd = &cobra.Command{
	Use:   "skillcheck",
	Short: "Validate SKILL.md files before they are committed",
	Long: `skillcheck finds every SKILL.md below the repository root and checks its YAML
frontmatter and recommended sections.

Missing or malformed name and description fields are errors and make the command
exit with status 1. Short descriptions, a missing PROACTIVELY keyword and missing
sections are reported as warnings only.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		presenter.SetQuiet(viper.GetBool("quiet"))
		return logger.Configure(viper.GetString("log_level"), viper.GetString("log_format"))
	},
	Run: func(cmd *cobra.Command, _ []string) {
		config := getValidateConfigFromViper()
		os.Exit(validateCmd(cmd.Context(), config, presenter.Default()))
	},
}

func init() {
	defaults := NewValidateConfig()

	flags := rootCmd.PersistentFlags()
	flags.String("root", defaults.Root, "Directory to search for SKILL.md files (defaults to the repository root)")
	flags.StringSlice("exclude", defaults.Exclude, "Directory names to skip while searching")
	flags.Bool("quiet", defaults.Quiet, "Only print errors")
	flags.String("log-level", "info", "Log level (panic, fatal, error, warn, info, debug, trace)")
	flags.String("log-format", "fmt", "Log format (fmt or json)")
	rootCmd.Flags().Bool("strict-sections", defaults.StrictSections, "Only accept recommended sections that are real markdown headings")

	bindFlags(flags, "root", "exclude", "quiet", "log-level", "log-format")
	bindFlags(rootCmd.Flags(), "strict-sections")
}

// bindFlags binds each named flag to the viper key spelled with underscores
func bindFlags(flags *pflag.FlagSet, names ...string) {
	for _, name := range names {
		viper.BindPFlag(strings.ReplaceAll(name, "-", "_"), flags.Lookup(name))
	}
}

func getValidateConfigFromViper() *ValidateConfig {
	config := NewValidateConfig()
	config.Root = viper.GetString("root")
	config.StrictSections = viper.GetBool("strict_sections")
	config.Quiet = viper.GetBool("quiet")
	config.Exclude = viper.GetStringSlice("exclude")
	return config
}

func validateCmd(ctx context.Context, config *ValidateConfig, p presenter.Presenter) int {
	root, err := resolveRoot(config.Root)
	if err != nil {
		p.Error(err, "Failed to determine the repository root")
		return 1
	}

	logger.G(ctx).WithField("root", root).WithField("strict_sections", config.StrictSections).Debug("validating skills")

	return skills.Run(ctx, root, p,
		skills.WithExcludedDirs(config.Exclude...),
		skills.WithStrictSections(config.StrictSections),
	)
}

// resolveRoot returns root when set, otherwise the repository containing the
// working directory
func resolveRoot(root string) (string, error) {
	if root != "" {
		return root, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "failed to get current working directory")
	}
	return findRepoRoot(cwd), nil
}

// findRepoRoot walks up from dir to the nearest directory holding a .git entry.
// It returns dir itself when there is none.
func findRepoRoot(dir string) string {
	current := filepath.Clean(dir)
	for {
		if _, err := os.Stat(filepath.Join(current, ".git")); err == nil {
			return current
		}
		parent := filepath.Dir(current)
		if parent == current {
			return filepath.Clean(dir)
		}
		current = parent
	}
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		presenter.Error(err, "skillcheck failed")
		os.Exit(1)
	}
}
