package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vaultcms/create-vault-cms/internal/build"
	"github.com/vaultcms/create-vault-cms/internal/debug"
)

// Build information reported by the version command.
var (
	Version   = build.Version()
	GitCommit = build.Commit()
	BuildDate = build.Date()
)

// Global flags
var (
	globalNoColor bool
	globalQuiet   bool
	globalDebug   bool
)

// errReported marks a failure whose message has already been printed.
var errReported = errors.New("installation failed")

// rootCmd installs Vault CMS when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "create-vault-cms [target]",
	Short: "Install Vault CMS into an Astro content folder",
	Long: `create-vault-cms downloads Vault CMS (or one of its preset templates)
and installs the Obsidian vault files into your site's content folder.

Only _bases, .obsidian and _GUIDE.md are copied from the template. The
enclosing project's .gitignore is patched so Obsidian workspace state
stays out of version control.

Examples:
  create-vault-cms
  create-vault-cms src/content
  create-vault-cms src/content --template starlight
  create-vault-cms slate
  create-vault-cms src/content --yes --no-open`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug.SetDebug(globalDebug)
		debug.SetNoColor(globalNoColor)
	},
	RunE: runInstall,
}

// Execute runs the root command and exits non-zero on failure.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errReported) {
			printError(err)
		}
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVar(&globalNoColor, FlagNoColor, false, DescNoColor)
	rootCmd.PersistentFlags().BoolVarP(&globalQuiet, FlagQuiet, "q", false, DescQuiet)
	rootCmd.PersistentFlags().BoolVar(&globalDebug, FlagDebug, false, DescDebug)

	// Install flags
	rootCmd.Flags().StringVarP(&installTemplate, FlagTemplate, "t", "", DescTemplate)
	rootCmd.Flags().BoolVarP(&installYes, FlagYes, "y", false, DescYes)
	rootCmd.Flags().BoolVar(&installNoOpen, FlagNoOpen, false, DescNoOpen)
	rootCmd.Flags().StringVar(&installConfig, FlagConfig, "", DescConfig)

	rootCmd.AddCommand(versionCmd)
}

// printError prints an error message to stderr
func printError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
