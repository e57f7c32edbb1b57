// Package resolve derives the build/install configuration for a package
// distribution from flags, positional arguments, environment variables and
// filename conventions. It computes paths and names only; fetching,
// unpacking and building are left to the surrounding tooling.
package resolve

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathansick-shadow/lsst/pkg/errors"
	"github.com/jonathansick-shadow/lsst/pkg/logging"
)

// Environment variable names
const (
	// EnvPkgRoot is the "|"-separated list of package roots
	EnvPkgRoot = "LSST_PKGS"

	// EnvHome is the software home used for install dir inference
	EnvHome = "LSST_HOME"
)

// ExternalDir is the subdirectory of the software home that holds
// external packages, giving the <home>/external/<product>/<version>
// install convention.
const ExternalDir = "external"

// archiveSuffixes are compressed-archive endings stripped from a
// distribution file name before product/version inference.
var archiveSuffixes = []string{
	".tar.gz", ".tgz", ".tar.bz2", ".tbz2", ".tar.xz", ".txz", ".tar.Z",
}

// Getenv looks up an environment variable. Tests substitute a map-backed
// implementation; production code passes os.Getenv.
type Getenv func(string) string

// Options carries the flag values and site defaults feeding a resolution.
type Options struct {
	// TmpDir is the -t flag: scratch directory for build trees
	TmpDir string

	// BuildDir is the -b flag: explicit build directory
	BuildDir string

	// PkgRoot is the -r flag: "|"-separated package root list override
	PkgRoot string

	// FromDistrib is the -D flag: operating from a distribution package
	FromDistrib bool

	// Defaults holds site configuration consulted after flags and
	// environment variables
	Defaults Defaults
}

// Defaults mirrors config.Defaults without importing it, keeping this
// package free of file I/O.
type Defaults struct {
	TmpDir  string
	PkgRoot string
	Home    string
}

// Config is the fully resolved configuration. It is assembled in a fixed
// order (flags, positionals, inference, validation, derived defaults) and
// never mutated afterward.
type Config struct {
	Product    string
	Version    string
	InstallDir string
	DistFile   string
	BuildDir   string
	TmpDir     string
	PkgRoot    string

	FromDistrib bool
	DoSetup     bool
}

// Resolve produces a Config from the given flags, positional arguments
// (distfile [installdir [product [version]]]) and environment.
func Resolve(opts Options, args []string, env Getenv) (*Config, error) {
	logger := logging.GetLogger("resolve")

	cfg := &Config{
		TmpDir:      expandHome(strings.TrimSpace(opts.TmpDir)),
		BuildDir:    expandHome(strings.TrimSpace(opts.BuildDir)),
		FromDistrib: opts.FromDistrib,
	}

	cfg.DistFile = positional(args, 0)
	cfg.InstallDir = expandHome(positional(args, 1))
	cfg.Product = positional(args, 2)
	cfg.Version = positional(args, 3)

	// The distribution file can never be inferred, so it is checked
	// before any inference runs.
	if cfg.DistFile == "" {
		return nil, errors.New(errors.ErrMissingArgument, "distfile argument missing")
	}

	home := env(EnvHome)
	if home == "" {
		home = opts.Defaults.Home
	}

	if cfg.Version == "" {
		if cfg.InstallDir != "" {
			// Take product/version from the install path convention
			// <...>/<product>/<version>
			cfg.Version = filepath.Base(cfg.InstallDir)
			if cfg.Product == "" {
				cfg.Product = filepath.Base(filepath.Dir(cfg.InstallDir))
			}
			logger.Debug().
				Str("product", cfg.Product).
				Str("version", cfg.Version).
				Msg("Inferred from install directory")
		} else {
			product, version := SplitDistName(cfg.DistFile)
			if cfg.Product == "" {
				cfg.Product = product
			}
			cfg.Version = version
			logger.Debug().
				Str("product", cfg.Product).
				Str("version", cfg.Version).
				Msg("Inferred from distribution file name")
		}
	}

	if cfg.InstallDir == "" && cfg.Product != "" && cfg.Version != "" && home != "" {
		cfg.InstallDir = filepath.Join(home, ExternalDir, cfg.Product, cfg.Version)
		logger.Debug().Str("installdir", cfg.InstallDir).Msg("Using external package convention")
	}

	for _, req := range []struct{ name, value string }{
		{"product", cfg.Product},
		{"version", cfg.Version},
		{"installdir", cfg.InstallDir},
		{"distfile", cfg.DistFile},
	} {
		if req.value == "" {
			return nil, errors.Newf(errors.ErrMissingArgument, "%s argument missing", req.name)
		}
	}

	if cfg.TmpDir == "" {
		cfg.TmpDir = expandHome(opts.Defaults.TmpDir)
	}
	if cfg.TmpDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot determine working directory")
		}
		cfg.TmpDir = cwd
	}

	if cfg.BuildDir == "" {
		cfg.BuildDir = filepath.Join(cfg.TmpDir, cfg.Product+"-"+cfg.Version)
	}

	cfg.PkgRoot = firstRoot(firstNonEmpty(
		strings.TrimSpace(opts.PkgRoot), env(EnvPkgRoot), opts.Defaults.PkgRoot))

	cfg.DoSetup = !cfg.FromDistrib

	logger.Debug().
		Str("product", cfg.Product).
		Str("version", cfg.Version).
		Str("installdir", cfg.InstallDir).
		Str("builddir", cfg.BuildDir).
		Msg("Resolution complete")

	return cfg, nil
}

// SplitDistName derives a product name and version from a distribution
// file path. The compressed-archive suffix is stripped from the base name,
// then any remaining extension, and the result is split at the first
// hyphen. A base name without a hyphen yields the whole name as product
// and an empty version.
func SplitDistName(distfile string) (product, version string) {
	base := stripArchiveSuffix(filepath.Base(distfile))
	if idx := strings.Index(base, "-"); idx >= 0 {
		return base[:idx], base[idx+1:]
	}
	return base, ""
}

// stripArchiveSuffix removes a known compressed-archive suffix, falling
// back to stripping a single extension.
func stripArchiveSuffix(name string) string {
	for _, suffix := range archiveSuffixes {
		if strings.HasSuffix(name, suffix) {
			return strings.TrimSuffix(name, suffix)
		}
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// firstRoot returns the first entry of a "|"-separated package root list.
func firstRoot(list string) string {
	if idx := strings.Index(list, "|"); idx >= 0 {
		return list[:idx]
	}
	return list
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func positional(args []string, i int) string {
	if i >= len(args) {
		return ""
	}
	return strings.TrimSpace(args[i])
}

// expandHome expands ~ and ~/ prefixes to the user's home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
