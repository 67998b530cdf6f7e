package main

import (
	"github.com/redbco/redb-typeregistry/cmd/typectl/internal/types"
	"github.com/spf13/cobra"
)

// setupCommands initializes all commands and their relationships
func setupCommands(rootCmd *cobra.Command, a *app) {
	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newDescribeCmd(a))
	rootCmd.AddCommand(newKeysCmd(a))
	rootCmd.AddCommand(newCheckCmd(a))
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all types",
		Long:  `Display every type id with its display name, categories and qualifiers.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return types.ListTypes(cmd.OutOrStdout(), a.reg, a.cfg.Output)
		},
	}
}

func newDescribeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe [type-id|type-name]...",
		Short: "Show type details",
		Long: "Display details for one or more types. Arguments may be numeric ids (15), display names " +
			"(DECIMAL) or wire enum names (DECIMAL_TYPE).",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return types.DescribeTypes(cmd.OutOrStdout(), a.reg, a.log, args, a.cfg.Output)
		},
	}
}

func newKeysCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List metadata attribute keys",
		Long:  `Display the attribute keys used to parameterize column types such as VARCHAR(n) and DECIMAL(p,s).`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return types.ListKeys(cmd.OutOrStdout(), a.reg, a.cfg.Output)
		},
	}
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the type registry",
		Long:  `Verify that no type is both primitive and complex, every collection is complex, and every type is named.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return types.Check(cmd.OutOrStdout(), a.reg, a.log)
		},
	}
}
