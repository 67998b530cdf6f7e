package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/redbco/redb-typeregistry/cmd/typectl/internal/config"
	"github.com/redbco/redb-typeregistry/pkg/logger"
	"github.com/redbco/redb-typeregistry/pkg/typeregistry"
	"github.com/spf13/cobra"
)

var (
	version = "0.0.1"
	// Build information variables, set via -ldflags
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// printVersionInfo displays detailed version information
func printVersionInfo(w io.Writer) {
	fmt.Fprintf(w, "typectl v%s (build %s)\n", version, Version)
	fmt.Fprintf(w, "Built: %s, from commit: %s\n", BuildTime, GitCommit)
	fmt.Fprintf(w, "Go version: %s\n", runtime.Version())
	fmt.Fprintf(w, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

// app holds what the subcommands share once the root command has initialized.
type app struct {
	configFile string
	output     string

	cfg *config.Config
	log *logger.Logger
	reg *typeregistry.Registry
}

// setup loads configuration and builds the registry. It runs once per invocation
// before any subcommand.
func (a *app) setup(cmd *cobra.Command) error {
	var output string
	if cmd.Flags().Changed("output") {
		output = a.output
	}
	cfg, err := config.Load(a.configFile, output)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.log = logger.New("typectl")
	a.log.SetOutput(cmd.ErrOrStderr())
	if level, ok := logger.ParseLevel(cfg.LogLevel); ok {
		a.log.SetLevel(level)
	} else {
		a.log.Warnf("unknown log level %q, using INFO", cfg.LogLevel)
	}
	if !cfg.Color {
		a.log.SetColor(false)
	}

	a.reg = typeregistry.New(typeregistry.WithLogger(a.log))
	return nil
}

// needsSetup reports whether cmd reads the registry. The root command, help
// and cobra's completion commands run without touching the config file.
func needsSetup(cmd *cobra.Command) bool {
	if !cmd.HasParent() {
		return false
	}
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return false
		}
	}
	return true
}

// newRootCmd builds the command tree. Subcommands receive the registry built
// by the root command's pre-run hook.
func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "typectl",
		Short:         "Inspect the SQL type registry",
		Long:          "Inspect the column types, categories, display names and metadata keys reported to SQL clients.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !needsSetup(cmd) {
				return nil
			}
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Lookup("version").Changed {
				printVersionInfo(cmd.OutOrStdout())
				return nil
			}
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", config.DefaultPath(), "Path to config file")
	rootCmd.PersistentFlags().StringVarP(&a.output, "output", "o", config.OutputTable, "Output format (table, json, yaml)")
	rootCmd.Flags().Bool("version", false, "Show version information and exit")

	setupCommands(rootCmd, a)
	return rootCmd
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		os.Exit(1)
	}
}
