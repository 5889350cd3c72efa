package main

import (
	"errors"
	"fmt"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/zubzet/tooling/internal/config"
	"github.com/zubzet/tooling/internal/messages"
	"github.com/zubzet/tooling/internal/upgrade"
	"github.com/zubzet/tooling/internal/versions"
)

// runDeps are the collaborators swapped out by tests.
type runDeps struct {
	commands upgrade.CommandRunner
	system   upgrade.System
}

var defaultRunDeps = runDeps{}

func newUpgradeCmd() *cobra.Command {
	var (
		dry        bool
		skip       []string
		configPath string
		diffLines  int
		colorFlag  string
	)

	cmd := &cobra.Command{
		Use:   messages.UpgradeUse,
		Short: messages.UpgradeShort,
		Long:  messages.UpgradeLong,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 3 {
				return &usageError{err: fmt.Errorf(messages.UpgradeArgsFmt, len(args))}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			location, from, to := args[0], args[1], args[2]

			cfg, err := loadRunConfig(location, configPath)
			if err != nil {
				return &usageError{err: err}
			}

			mode := cfg.ColorMode()
			if cmd.Flags().Changed("color") {
				parsed, ok := upgrade.ParseColorMode(colorFlag)
				if !ok {
					return &usageError{err: fmt.Errorf(messages.UpgradeColorInvalidFmt, colorFlag)}
				}
				mode = parsed
			}

			maxLines := 0
			if cfg.Upgrade.DiffLines != nil {
				maxLines = *cfg.Upgrade.DiffLines
			}
			if cmd.Flags().Changed("diff-lines") {
				if diffLines < 0 {
					return &usageError{err: fmt.Errorf(messages.UpgradeDiffLinesInvalidFmt, diffLines)}
				}
				maxLines = diffLines
			}

			registry, err := versions.Registry()
			if err != nil {
				return err
			}
			orchestrator, err := upgrade.NewOrchestrator(upgrade.Options{
				Registry:     registry,
				Printer:      upgrade.NewPrinter(cmd.OutOrStdout(), mode),
				Prompter:     newPrompter(cmd.InOrStdin(), cmd.OutOrStdout()),
				Commands:     defaultRunDeps.commands,
				System:       defaultRunDeps.system,
				Files:        versions.Files,
				DiffMaxLines: maxLines,
			})
			if err != nil {
				return err
			}

			_, err = orchestrator.Run(cmd.Context(), upgrade.Request{
				Location: location,
				From:     from,
				To:       to,
				Dry:      dry,
				Skip:     cfg.MergeSkip(skip),
			})
			return classifyRunError(err)
		},
	}

	cmd.Flags().BoolVarP(&dry, "dry", "d", false, messages.UpgradeFlagDry)
	cmd.Flags().StringArrayVarP(&skip, "skip", "s", nil, messages.UpgradeFlagSkip)
	cmd.Flags().StringVar(&configPath, "config", "", messages.UpgradeFlagConfig)
	cmd.Flags().IntVar(&diffLines, "diff-lines", 0, messages.UpgradeFlagDiffLine)
	cmd.Flags().StringVar(&colorFlag, "color", string(upgrade.ColorAuto), messages.UpgradeFlagColor)
	return cmd
}

// loadRunConfig reads an explicit --config file, or the optional file in the project root.
func loadRunConfig(location string, configPath string) (*config.Config, error) {
	if configPath != "" {
		expanded, err := homedir.Expand(configPath)
		if err != nil {
			return nil, err
		}
		return config.Load(expanded)
	}
	root, err := homedir.Expand(location)
	if err != nil {
		// The orchestrator reports the unusable location.
		return &config.Config{}, nil
	}
	return config.LoadOptional(root)
}

// classifyRunError marks argument problems as usage errors; everything else fails the run.
func classifyRunError(err error) error {
	if err == nil {
		return nil
	}
	var invalid *upgrade.ConfigurationError
	if errors.As(err, &invalid) {
		return &usageError{err: err}
	}
	return err
}
