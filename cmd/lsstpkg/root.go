package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jonathansick-shadow/lsst/internal/version"
	"github.com/jonathansick-shadow/lsst/pkg/config"
	"github.com/jonathansick-shadow/lsst/pkg/logging"
	"github.com/jonathansick-shadow/lsst/pkg/resolve"
	"github.com/jonathansick-shadow/lsst/pkg/tools"
)

var (
	verbosity   int
	tmpDir      string
	buildDir    string
	pkgRoot     string
	fromDistrib bool

	rootCmd = &cobra.Command{
		Use:   "lsstpkg [flags] distfile [installdir [product [version]]]",
		Short: "Resolve the build configuration for a package distribution",
		Long: `lsstpkg resolves the product name, version, install directory and build
directory for a source package distribution from its arguments, the
environment and filename conventions, and reports them together with the
external commands the build will use. Output is one name=value assignment
per line, suitable for eval in the surrounding build logic.`,
		Args: cobra.MaximumNArgs(4),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE:          runRoot,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Swapped out in tests so command tests do not depend on the host's PATH
// or config directory.
var (
	locateTools  = tools.Locate
	loadDefaults = config.Load
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Verbosity flag for logging
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	addResolveFlags(rootCmd)

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(showCmd)
}

// addResolveFlags registers the resolution flags shared by the root and
// show commands. Parsing is non-interspersed: the first token that is not
// a flag starts the positional arguments.
func addResolveFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&tmpDir, "tmpdir", "t", "", "Scratch directory for build trees (default: current directory)")
	cmd.Flags().StringVarP(&buildDir, "builddir", "b", "", "Build directory (default: <tmpdir>/<product>-<version>)")
	cmd.Flags().StringVarP(&pkgRoot, "pkgroot", "r", "", "Package root list, \"|\"-separated (default: $LSST_PKGS)")
	cmd.Flags().BoolVarP(&fromDistrib, "from-distrib", "D", false, "Operating from a distribution package; skip product setup")
	cmd.Flags().SetInterspersed(false)
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, tl, err := resolveConfig(args)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatAssignments(cfg, tl))
	return nil
}

// resolveConfig locates the external commands, loads site defaults and
// resolves the configuration from flags, args and the environment.
// Commands are resolved first so a missing tool fails before argument
// validation.
func resolveConfig(args []string) (*resolve.Config, *tools.Tools, error) {
	tl, err := locateTools()
	if err != nil {
		return nil, nil, err
	}

	defaults, err := loadDefaults()
	if err != nil {
		return nil, nil, err
	}

	opts := resolve.Options{
		TmpDir:      tmpDir,
		BuildDir:    buildDir,
		PkgRoot:     pkgRoot,
		FromDistrib: fromDistrib,
		Defaults: resolve.Defaults{
			TmpDir:  defaults.TmpDir,
			PkgRoot: defaults.PkgRoot,
			Home:    defaults.Home,
		},
	}

	cfg, err := resolve.Resolve(opts, args, os.Getenv)
	if err != nil {
		return nil, nil, err
	}
	return cfg, tl, nil
}

type assignment struct {
	key   string
	value string
}

// assignments lists the resolved values in the order the surrounding
// build logic expects them.
func assignments(cfg *resolve.Config, tl *tools.Tools) []assignment {
	return []assignment{
		{"product", cfg.Product},
		{"version", cfg.Version},
		{"installdir", cfg.InstallDir},
		{"distfile", cfg.DistFile},
		{"builddir", cfg.BuildDir},
		{"tmpdir", cfg.TmpDir},
		{"pkgroot", cfg.PkgRoot},
		{"dosetup", strconv.FormatBool(cfg.DoSetup)},
		{"make", tl.Make},
		{"fetch", tl.Fetcher.Path},
	}
}

func formatAssignments(cfg *resolve.Config, tl *tools.Tools) string {
	var b strings.Builder
	for _, a := range assignments(cfg, tl) {
		fmt.Fprintf(&b, "%s=%s\n", a.key, a.value)
	}
	return b.String()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print version information for lsstpkg`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "lsstpkg version %s\n", version.Version)
		fmt.Fprintf(out, "  commit: %s\n", version.Commit)
		fmt.Fprintf(out, "  built:  %s\n", version.Date)
	},
}
