package main

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jingkaihe/skillcheck/pkg/logger"
	"github.com/jingkaihe/skillcheck/pkg/presenter"
)

const (
	hookMarkerStart = "# >>> skillcheck pre-commit hook >>>"
	hookMarkerEnd   = "# <<< skillcheck pre-commit hook <<<"
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Manage the git pre-commit hook",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

var hookInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Run skillcheck from the git pre-commit hook",
	Long: `Add a skillcheck section to .git/hooks/pre-commit. Existing hook content is kept;
a previously installed skillcheck section is replaced.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		strict, _ := cmd.Flags().GetBool("strict-sections")

		hookPath, err := getHookPath(cmd.Context())
		if err != nil {
			presenter.Error(err, "Failed to locate the git hooks directory")
			os.Exit(1)
		}

		if err := installHook(hookPath, generateHookSection(strict)); err != nil {
			presenter.Error(err, "Failed to install pre-commit hook")
			os.Exit(1)
		}
		presenter.Success("Installed skillcheck pre-commit hook at " + hookPath)
	},
}

var hookUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove skillcheck from the git pre-commit hook",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		hookPath, err := getHookPath(cmd.Context())
		if err != nil {
			presenter.Error(err, "Failed to locate the git hooks directory")
			os.Exit(1)
		}

		result, err := uninstallHook(hookPath)
		if err != nil {
			presenter.Error(err, "Failed to uninstall pre-commit hook")
			os.Exit(1)
		}

		switch result {
		case hookMissing:
			presenter.Info("No pre-commit hook found.")
		case hookRemoved:
			presenter.Success("Removed skillcheck pre-commit hook at " + hookPath)
		case hookSectionRemoved:
			presenter.Success("Removed skillcheck section from " + hookPath)
		}
	},
}

func init() {
	hookInstallCmd.Flags().Bool("strict-sections", false, "Run skillcheck with --strict-sections from the hook")

	hookCmd.AddCommand(hookInstallCmd)
	hookCmd.AddCommand(hookUninstallCmd)
	rootCmd.AddCommand(hookCmd)
}

// getHookPath asks git for the repository's git directory so worktrees and
// submodules resolve correctly
func getHookPath(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "git", "rev-parse", "--git-dir").Output()
	if err != nil {
		return "", errors.Wrap(err, "not a git repository (git rev-parse --git-dir failed)")
	}

	gitDir := strings.TrimSpace(string(out))
	logger.G(ctx).WithField("git_dir", gitDir).Debug("resolved git directory")
	return filepath.Join(gitDir, "hooks", "pre-commit"), nil
}

func generateHookSection(strict bool) string {
	command := "skillcheck"
	if strict {
		command += " --strict-sections"
	}

	var b strings.Builder
	b.WriteString(hookMarkerStart + "\n")
	b.WriteString(command + "\n")
	b.WriteString("if [ $? -ne 0 ]; then\n")
	b.WriteString("  echo \"skillcheck: skill validation failed, commit blocked\"\n")
	b.WriteString("  exit 1\n")
	b.WriteString("fi\n")
	b.WriteString(hookMarkerEnd + "\n")
	return b.String()
}

func installHook(hookPath, section string) error {
	existing, err := os.ReadFile(hookPath)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "failed to read hook file")
	}

	var content string
	if len(existing) == 0 {
		content = "#!/bin/sh\n" + section
	} else {
		content = replaceHookSection(string(existing), section)
	}

	if err := os.MkdirAll(filepath.Dir(hookPath), 0o755); err != nil {
		return errors.Wrap(err, "failed to create hooks directory")
	}
	if err := os.WriteFile(hookPath, []byte(content), 0o755); err != nil {
		return errors.Wrap(err, "failed to write hook file")
	}
	return nil
}

type uninstallResult int

const (
	hookMissing uninstallResult = iota
	hookRemoved
	hookSectionRemoved
)

func uninstallHook(hookPath string) (uninstallResult, error) {
	existing, err := os.ReadFile(hookPath)
	if err != nil {
		if os.IsNotExist(err) {
			return hookMissing, nil
		}
		return hookMissing, errors.Wrap(err, "failed to read hook file")
	}

	content := removeHookSection(string(existing))

	// a hook reduced to its shebang has nothing left to run
	trimmed := strings.TrimSpace(content)
	if trimmed == "" || trimmed == "#!/bin/sh" || trimmed == "#!/bin/bash" {
		if err := os.Remove(hookPath); err != nil {
			return hookMissing, errors.Wrap(err, "failed to remove hook file")
		}
		return hookRemoved, nil
	}

	if err := os.WriteFile(hookPath, []byte(content), 0o755); err != nil {
		return hookMissing, errors.Wrap(err, "failed to write hook file")
	}
	return hookSectionRemoved, nil
}

func replaceHookSection(existing, section string) string {
	startIdx := strings.Index(existing, hookMarkerStart)
	endIdx := strings.Index(existing, hookMarkerEnd)

	if startIdx == -1 || endIdx == -1 {
		if !strings.HasSuffix(existing, "\n") {
			existing += "\n"
		}
		return existing + section
	}

	after := strings.TrimPrefix(existing[endIdx+len(hookMarkerEnd):], "\n")
	return existing[:startIdx] + section + after
}

func removeHookSection(existing string) string {
	startIdx := strings.Index(existing, hookMarkerStart)
	endIdx := strings.Index(existing, hookMarkerEnd)

	if startIdx == -1 || endIdx == -1 {
		return existing
	}

	after := strings.TrimPrefix(existing[endIdx+len(hookMarkerEnd):], "\n")
	return existing[:startIdx] + after
}
