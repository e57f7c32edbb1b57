// Package tools locates the external commands the build workflow depends
// on. Paths are resolved once at startup so a missing tool fails fast,
// before any arguments are processed.
package tools

import (
	"os/exec"
	"strings"

	"github.com/jonathansick-shadow/lsst/pkg/errors"
	"github.com/jonathansick-shadow/lsst/pkg/logging"
)

// lookPath is swapped out in tests
var lookPath = exec.LookPath

// Fetcher describes the HTTP download tool and its invocation form.
// Nothing here performs network I/O; callers build the command line for
// the surrounding tooling to run.
type Fetcher struct {
	// Name is the bare command name (curl or wget)
	Name string

	// Path is the absolute path resolved from PATH
	Path string

	// outputFlag precedes the destination path in the argument list
	outputFlag string
}

// FetchArgs returns the argument list (excluding the command itself) that
// downloads url to dest.
func (f *Fetcher) FetchArgs(url, dest string) []string {
	args := []string{}
	if f.Name == "curl" {
		args = append(args, "-L", "-s")
	} else {
		args = append(args, "-q")
	}
	return append(args, f.outputFlag, dest, url)
}

// CommandLine renders the full fetch invocation for logging and reports.
func (f *Fetcher) CommandLine(url, dest string) string {
	return f.Path + " " + strings.Join(f.FetchArgs(url, dest), " ")
}

// Tools holds the resolved command paths.
type Tools struct {
	// Make is the absolute path of the make executable
	Make string

	// Fetcher is the HTTP download tool
	Fetcher *Fetcher
}

// Locate resolves make and an HTTP fetcher on PATH. curl is preferred;
// wget is the fallback, with its invocation form adapted accordingly.
// A missing tool yields ErrCommandNotFound (exit status 5).
func Locate() (*Tools, error) {
	logger := logging.GetLogger("tools")

	makePath, err := lookPath("make")
	if err != nil {
		return nil, errors.New(errors.ErrCommandNotFound, "make: command not found")
	}

	fetcher, err := locateFetcher()
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("make", makePath).
		Str("fetcher", fetcher.Path).
		Msg("Located external commands")

	return &Tools{Make: makePath, Fetcher: fetcher}, nil
}

func locateFetcher() (*Fetcher, error) {
	if path, err := lookPath("curl"); err == nil {
		return &Fetcher{Name: "curl", Path: path, outputFlag: "-o"}, nil
	}
	if path, err := lookPath("wget"); err == nil {
		return &Fetcher{Name: "wget", Path: path, outputFlag: "-O"}, nil
	}
	return nil, errors.New(errors.ErrCommandNotFound, "curl: command not found")
}
