package resolve_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathansick-shadow/lsst/pkg/errors"
	"github.com/jonathansick-shadow/lsst/pkg/resolve"
)

// mapEnv builds a Getenv backed by a map so resolution tests do not touch
// the real process environment.
func mapEnv(m map[string]string) resolve.Getenv {
	return func(key string) string {
		return m[key]
	}
}

func TestResolveInference(t *testing.T) {
	tests := []struct {
		name    string
		opts    resolve.Options
		args    []string
		env     map[string]string
		want    func(t *testing.T, cfg *resolve.Config)
		wantMsg string
	}{
		{
			name: "install dir supplies version and product",
			args: []string{"cfitsio3060.tar.gz", "/opt/lsst/external/cfitsio/3.06"},
			want: func(t *testing.T, cfg *resolve.Config) {
				assert.Equal(t, "cfitsio", cfg.Product)
				assert.Equal(t, "3.06", cfg.Version)
				assert.Equal(t, "/opt/lsst/external/cfitsio/3.06", cfg.InstallDir)
			},
		},
		{
			name: "install dir supplies version, product given",
			args: []string{"dist.tar.gz", "/opt/lsst/external/cfitsio/3.06", "myfits"},
			want: func(t *testing.T, cfg *resolve.Config) {
				assert.Equal(t, "myfits", cfg.Product)
				assert.Equal(t, "3.06", cfg.Version)
			},
		},
		{
			name: "distribution file name supplies product and version",
			args: []string{"foo-1.2.3.tar.gz"},
			env:  map[string]string{resolve.EnvHome: "/opt/lsst"},
			want: func(t *testing.T, cfg *resolve.Config) {
				assert.Equal(t, "foo", cfg.Product)
				assert.Equal(t, "1.2.3", cfg.Version)
				assert.Equal(t, filepath.Join("/opt/lsst", "external", "foo", "1.2.3"), cfg.InstallDir)
			},
		},
		{
			name:    "hyphenless base name leaves version missing",
			args:    []string{"bar.tgz"},
			env:     map[string]string{resolve.EnvHome: "/opt/lsst"},
			wantMsg: "version argument missing",
		},
		{
			name:    "no home variable leaves install dir missing",
			args:    []string{"foo-1.2.3.tar.gz"},
			wantMsg: "installdir argument missing",
		},
		{
			name:    "version given but product not inferable",
			args:    []string{"foo-1.2.3.tar.gz", "", "", "2.0"},
			wantMsg: "product argument missing",
		},
		{
			name:    "distfile always required first",
			args:    []string{},
			env:     map[string]string{resolve.EnvHome: "/opt/lsst"},
			wantMsg: "distfile argument missing",
		},
		{
			name: "home falls back to site defaults",
			opts: resolve.Options{Defaults: resolve.Defaults{Home: "/site/lsst"}},
			args: []string{"foo-1.2.3.tar.gz"},
			want: func(t *testing.T, cfg *resolve.Config) {
				assert.Equal(t, filepath.Join("/site/lsst", "external", "foo", "1.2.3"), cfg.InstallDir)
			},
		},
		{
			name: "positional values are trimmed",
			args: []string{"  foo-1.2.3.tar.gz ", " /opt/lsst/external/foo/1.2.3  "},
			want: func(t *testing.T, cfg *resolve.Config) {
				assert.Equal(t, "foo-1.2.3.tar.gz", cfg.DistFile)
				assert.Equal(t, "/opt/lsst/external/foo/1.2.3", cfg.InstallDir)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := resolve.Resolve(tt.opts, tt.args, mapEnv(tt.env))

			if tt.wantMsg != "" {
				require.Error(t, err)
				assert.Equal(t, errors.ErrMissingArgument, errors.GetCode(err))
				assert.Equal(t, tt.wantMsg, errors.Message(err))
				return
			}

			require.NoError(t, err)
			tt.want(t, cfg)
		})
	}
}

func TestResolveBuildDir(t *testing.T) {
	t.Run("explicit build dir wins", func(t *testing.T) {
		cfg, err := resolve.Resolve(resolve.Options{BuildDir: "/builds/here"},
			[]string{"foo-1.2.3.tar.gz", "/opt/lsst/external/foo/1.2.3"}, mapEnv(nil))
		require.NoError(t, err)
		assert.Equal(t, "/builds/here", cfg.BuildDir)
	})

	t.Run("default is tmpdir joined with product-version", func(t *testing.T) {
		cfg, err := resolve.Resolve(resolve.Options{TmpDir: "/scratch"},
			[]string{"foo-1.2.3.tar.gz", "/opt/lsst/external/foo/1.2.3"}, mapEnv(nil))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/scratch", "foo-1.2.3"), cfg.BuildDir)
		assert.Equal(t, "/scratch", cfg.TmpDir)
	})

	t.Run("tmpdir falls back to site default then cwd", func(t *testing.T) {
		cfg, err := resolve.Resolve(resolve.Options{Defaults: resolve.Defaults{TmpDir: "/site/tmp"}},
			[]string{"foo-1.2.3.tar.gz", "/opt/lsst/external/foo/1.2.3"}, mapEnv(nil))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/site/tmp", "foo-1.2.3"), cfg.BuildDir)

		cwd, err := os.Getwd()
		require.NoError(t, err)
		cfg, err = resolve.Resolve(resolve.Options{},
			[]string{"foo-1.2.3.tar.gz", "/opt/lsst/external/foo/1.2.3"}, mapEnv(nil))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(cwd, "foo-1.2.3"), cfg.BuildDir)
	})
}

func TestResolvePkgRoot(t *testing.T) {
	args := []string{"foo-1.2.3.tar.gz", "/opt/lsst/external/foo/1.2.3"}

	tests := []struct {
		name string
		opts resolve.Options
		env  map[string]string
		want string
	}{
		{
			name: "flag wins over environment",
			opts: resolve.Options{PkgRoot: "/flag/pkgs|/flag/other"},
			env:  map[string]string{resolve.EnvPkgRoot: "/env/pkgs"},
			want: "/flag/pkgs",
		},
		{
			name: "environment wins over site defaults",
			opts: resolve.Options{Defaults: resolve.Defaults{PkgRoot: "/site/pkgs"}},
			env:  map[string]string{resolve.EnvPkgRoot: "/env/pkgs|/env/other"},
			want: "/env/pkgs",
		},
		{
			name: "site defaults as last resort",
			opts: resolve.Options{Defaults: resolve.Defaults{PkgRoot: "/site/pkgs"}},
			want: "/site/pkgs",
		},
		{
			name: "unset leaves pkgroot empty",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := resolve.Resolve(tt.opts, args, mapEnv(tt.env))
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.PkgRoot)
		})
	}
}

func TestResolveDoSetup(t *testing.T) {
	args := []string{"foo-1.2.3.tar.gz", "/opt/lsst/external/foo/1.2.3"}

	cfg, err := resolve.Resolve(resolve.Options{}, args, mapEnv(nil))
	require.NoError(t, err)
	assert.True(t, cfg.DoSetup)
	assert.False(t, cfg.FromDistrib)

	cfg, err = resolve.Resolve(resolve.Options{FromDistrib: true}, args, mapEnv(nil))
	require.NoError(t, err)
	assert.False(t, cfg.DoSetup)
	assert.True(t, cfg.FromDistrib)
}

func TestSplitDistName(t *testing.T) {
	tests := []struct {
		distfile    string
		wantProduct string
		wantVersion string
	}{
		{"foo-1.2.3.tar.gz", "foo", "1.2.3"},
		{"bar.tgz", "bar", ""},
		{"python-2.7.10.tar.xz", "python", "2.7.10"},
		{"wcstools-3.8.1.tar.bz2", "wcstools", "3.8.1"},
		{"boost-1.55-patched.tar.gz", "boost", "1.55-patched"},
		{"archive.zip", "archive", ""},
		{"/downloads/foo-1.2.3.tgz", "foo", "1.2.3"},
		{"plain-2.0", "plain", "2"},
	}

	for _, tt := range tests {
		t.Run(tt.distfile, func(t *testing.T) {
			product, version := resolve.SplitDistName(tt.distfile)
			assert.Equal(t, tt.wantProduct, product)
			assert.Equal(t, tt.wantVersion, version)
		})
	}
}
