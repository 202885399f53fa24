package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/halt-spesn/amberol/src/config"
)

var (
	cfgFile string
	cfg     *config.Config

	buildType   string
	profile     string
	prefix      string
	cleanFlag   bool
	installFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "amberol-build <target>",
	Short: "Cross-platform build and packaging orchestrator for Amberol",
	Long: `Builds Amberol for the current platform and produces distributable
artifacts: a native install, a flatpak bundle, a portable Windows archive,
and an optional Windows installer.

Targets: linux, windows, flatpak, package-windows, all.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: targetNames(),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
	RunE:          runBuild,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .amberol-build.yml)")

	rootCmd.Flags().StringVar(&buildType, "buildtype", "release", "build type (release, debug)")
	rootCmd.Flags().StringVar(&profile, "profile", "default", "build profile (default, development)")
	rootCmd.Flags().StringVar(&prefix, "prefix", "", "installation prefix (default: platform-standard)")
	rootCmd.Flags().BoolVar(&cleanFlag, "clean", false, "clean previous build")
	rootCmd.Flags().BoolVar(&installFlag, "install", false, "install after building")
}

// exitError carries a specific process exit code up through cobra. The
// failure itself has already been reported by the time it is raised.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			return ee.code
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
