// Package config loads optional site defaults for lsstpkg from a TOML
// file under the XDG config directory. Values from the file sit below
// command-line flags and environment variables in precedence.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"

	"github.com/jonathansick-shadow/lsst/pkg/errors"
	"github.com/jonathansick-shadow/lsst/pkg/logging"
)

// ConfigDirName is the directory name for lsstpkg-specific files
const ConfigDirName = "lsstpkg"

// ConfigFileName is the name of the site defaults file
const ConfigFileName = "config.toml"

// Defaults holds site-wide fallback values consulted only when neither a
// flag nor an environment variable supplies the setting.
type Defaults struct {
	// TmpDir is the default scratch directory for build trees
	TmpDir string `toml:"tmpdir"`

	// PkgRoot is the default package root list ("|"-separated)
	PkgRoot string `toml:"pkgroot"`

	// Home is the default software home used for install dir inference
	Home string `toml:"home"`
}

// Path returns the location of the site defaults file.
func Path() string {
	return filepath.Join(xdg.ConfigHome, ConfigDirName, ConfigFileName)
}

// Load reads the site defaults file. A missing file is not an error and
// yields zero-valued defaults.
func Load() (*Defaults, error) {
	return LoadFrom(Path())
}

// LoadFrom reads site defaults from the given path.
func LoadFrom(path string) (*Defaults, error) {
	logger := logging.GetLogger("config")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("path", path).Msg("No site defaults file")
			return &Defaults{}, nil
		}
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read %s", path)
	}

	var d Defaults
	if err := toml.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "cannot parse %s", path)
	}

	d.TmpDir = strings.TrimSpace(d.TmpDir)
	d.PkgRoot = strings.TrimSpace(d.PkgRoot)
	d.Home = strings.TrimSpace(d.Home)

	logger.Debug().Str("path", path).Msg("Loaded site defaults")
	return &d, nil
}
