package main

import (
	"github.com/spf13/cobra"

	"github.com/zubzet/tooling/internal/messages"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})
	cmd.Flags().BoolP("version", "v", false, messages.RootVersionFlag)
	cmd.AddCommand(newUpgradeCmd())
	return cmd
}
