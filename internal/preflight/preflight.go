// Package preflight verifies the assistant runtime is installed and recent
// enough before any workspace file is generated.
package preflight

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/blang/semver"
)

var (
	// ErrRuntimeMissing means the runtime binary is not on PATH.
	ErrRuntimeMissing = errors.New("preflight: runtime not found")
	// ErrRuntimeTooOld means the installed runtime is below the minimum version.
	ErrRuntimeTooOld = errors.New("preflight: runtime version too old")
	// ErrVersionUnreadable means `--version` printed nothing that looks like a version.
	ErrVersionUnreadable = errors.New("preflight: cannot read runtime version")
)

// Runner abstracts process lookups so checks can be tested without a runtime.
type Runner interface {
	LookPath(file string) (string, error)
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) LookPath(file string) (string, error) { return exec.LookPath(file) }

func (execRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// SystemRunner runs real processes.
func SystemRunner() Runner { return execRunner{} }

// Check describes the runtime requirement.
type Check struct {
	Binary     string
	MinVersion string
	Runner     Runner
}

// Report is the outcome of a successful check.
type Report struct {
	Path    string
	Version semver.Version
	Minimum semver.Version
}

// Run locates the binary, reads its version and compares it with MinVersion.
func (c Check) Run(ctx context.Context) (Report, error) {
	runner := c.Runner
	if runner == nil {
		runner = SystemRunner()
	}
	binary := strings.TrimSpace(c.Binary)
	if binary == "" {
		return Report{}, fmt.Errorf("%w: binary name is empty", ErrRuntimeMissing)
	}
	minimum, err := semver.ParseTolerant(c.MinVersion)
	if err != nil {
		return Report{}, fmt.Errorf("preflight: minimum version %q: %w", c.MinVersion, err)
	}
	path, err := runner.LookPath(binary)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %s is not on PATH; install it first", ErrRuntimeMissing, binary)
	}
	out, err := runner.Output(ctx, path, "--version")
	if err != nil {
		return Report{}, fmt.Errorf("%w: %s --version: %v", ErrVersionUnreadable, binary, err)
	}
	version, err := ParseVersion(string(out))
	if err != nil {
		return Report{}, err
	}
	report := Report{Path: path, Version: version, Minimum: minimum}
	if version.LT(minimum) {
		return report, fmt.Errorf("%w: %s %s is installed, %s or newer is required", ErrRuntimeTooOld, binary, version, minimum)
	}
	return report, nil
}

// ParseVersion finds the first version-like token in output, so
// "clawdbot version v1.4.2 (linux)" yields 1.4.2.
func ParseVersion(output string) (semver.Version, error) {
	for _, field := range strings.Fields(output) {
		token := strings.Trim(field, "(),;")
		if token == "" || !startsVersion(token) {
			continue
		}
		if v, err := semver.ParseTolerant(token); err == nil {
			return v, nil
		}
	}
	return semver.Version{}, fmt.Errorf("%w: %q", ErrVersionUnreadable, strings.TrimSpace(output))
}

func startsVersion(token string) bool {
	token = strings.TrimPrefix(token, "v")
	return token != "" && token[0] >= '0' && token[0] <= '9'
}
