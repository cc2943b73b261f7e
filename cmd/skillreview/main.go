package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jingkaihe/skillcheck/pkg/logger"
	"github.com/jingkaihe/skillcheck/pkg/presenter"
	"github.com/jingkaihe/skillcheck/pkg/review"
)

const apiKeyEnv = "ANTHROPIC_API_KEY"

var errMissingAPIKey = errors.New(apiKeyEnv + " environment variable not set")

func init() {
	// Environment variables
	viper.SetEnvPrefix("SKILLCHECK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	viper.BindEnv("anthropic_api_key", apiKeyEnv)

	// Config file support
	viper.SetConfigName("skillcheck")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.skillcheck")
	viper.AddConfigPath(".")

	defaults := review.DefaultConfig()
	viper.SetDefault("model", defaults.Model)
	viper.SetDefault("max_tokens", defaults.MaxTokens)
	viper.SetDefault("output", defaults.Output)
	viper.SetDefault("retry.attempts", defaults.Retry.Attempts)
	viper.SetDefault("retry.initial_delay", defaults.Retry.InitialDelay)

	// Load config file if it exists (ignore errors if it doesn't)
	_ = viper.ReadInConfig()
}

var rootCmd = &cobra.Command{
	Use:   "skillreview",
	Short: "Generate a Claude review for a pull request",
	Long: `skillreview reads the files changed by a pull request, builds a review prompt with
the repository's review guidelines and asks Claude for a review. The review, or a
readable error message when Claude could not be reached, is written to the output
file so the CI job can post it as a comment.

Examples:
  skillreview --changed-files "skills/a/SKILL.md README.md" --pr-number 12 --repo acme/skills`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return logger.Configure(viper.GetString("log_level"), viper.GetString("log_format"))
	},
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		apiKey := viper.GetString("anthropic_api_key")
		if err := checkAPIKey(apiKey); err != nil {
			printMissingAPIKey(presenter.Default())
			os.Exit(1)
		}

		config, err := loadConfig()
		if err != nil {
			presenter.Error(err, "Failed to load configuration")
			os.Exit(1)
		}

		req := review.Request{
			PRNumber:     viper.GetString("pr_number"),
			Repo:         viper.GetString("repo"),
			ChangedFiles: strings.Fields(viper.GetString("changed_files")),
		}

		sender := review.NewAnthropicSender(apiKey)
		os.Exit(runReview(ctx, req, config, sender, presenter.Default(), os.ReadFile))
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.String("changed-files", "", "Space-separated list of changed files")
	flags.String("pr-number", "", "Pull request number")
	flags.String("repo", "", "Repository name")
	flags.String("output", review.DefaultOutput, "File the review is written to")
	flags.String("model", review.DefaultModel, "Claude model used for the review")
	flags.Int64("max-tokens", review.DefaultMaxTokens, "Maximum tokens in the review")
	flags.String("log-level", "info", "Log level (panic, fatal, error, warn, info, debug, trace)")
	flags.String("log-format", "fmt", "Log format (fmt or json)")

	rootCmd.MarkFlagRequired("changed-files")
	rootCmd.MarkFlagRequired("pr-number")
	rootCmd.MarkFlagRequired("repo")

	bindFlags(flags, "changed-files", "pr-number", "repo", "output", "model", "max-tokens", "log-level", "log-format")
}

// bindFlags binds every named flag to the viper key with dashes replaced by
// underscores
func bindFlags(flags *pflag.FlagSet, names ...string) {
	for _, name := range names {
		viper.BindPFlag(strings.ReplaceAll(name, "-", "_"), flags.Lookup(name))
	}
}

// loadConfig decodes the review settings from flags, environment and config file
func loadConfig() (review.Config, error) {
	config := review.DefaultConfig()
	if err := viper.Unmarshal(&config); err != nil {
		return config, errors.Wrap(err, "failed to decode review configuration")
	}
	return config, nil
}

func checkAPIKey(apiKey string) error {
	if strings.TrimSpace(apiKey) == "" {
		return errMissingAPIKey
	}
	return nil
}

func printMissingAPIKey(p presenter.Presenter) {
	p.Failure("Error: " + errMissingAPIKey.Error())
	p.Info("Set it before running the review, for example:")
	p.Info("  export " + apiKeyEnv + "=<your API key>")
	p.Info("In GitHub Actions, add it as a repository secret and pass it through the job environment.")
}

// runReview reads the changed files, asks for a review and writes it to the
// configured output. Review failures end up in the output file, so only local
// problems make it return a non-zero exit code.
func runReview(ctx context.Context, req review.Request, config review.Config, sender review.Sender, p presenter.Presenter, readFile review.ReadFileFunc, opts ...review.ClientOption) int {
	log := logger.G(ctx).WithField("pr", req.PRNumber).WithField("repo", req.Repo)

	p.Info(fmt.Sprintf("Reviewing PR #%s in %s", req.PRNumber, req.Repo))
	p.Info(fmt.Sprintf("Changed files: %d", len(req.ChangedFiles)))

	contents, err := review.LoadContents(req.ChangedFiles, readFile)
	if err != nil {
		log.WithError(err).Warn("some changed files could not be read")
	}
	req.Contents = contents

	for _, path := range req.ChangedFiles {
		if _, ok := contents[path]; ok {
			p.Success("Read " + path)
		} else {
			p.Warning("File not found: " + path)
		}
	}

	p.Info("")
	p.Info("Generating Claude review...")

	prompt, err := req.Prompt()
	if err != nil {
		p.Error(err, "Failed to build review prompt")
		return 1
	}

	client, err := review.NewClient(sender, append([]review.ClientOption{review.WithConfig(config)}, opts...)...)
	if err != nil {
		p.Error(err, "Failed to create review client")
		return 1
	}

	result := client.Review(ctx, prompt)

	output := config.Output
	if output == "" {
		output = review.DefaultOutput
	}
	if err := review.WriteResult(output, result); err != nil {
		p.Error(err, "Failed to write review")
		return 1
	}

	p.Success("Review complete! Written to " + output)
	return 0
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		presenter.Error(err, "skillreview failed")
		os.Exit(1)
	}
}
