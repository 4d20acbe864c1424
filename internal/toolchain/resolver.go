// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package toolchain ensures developer tools are installed, dispatching on
// an enumerated install source, and provides the quiet execution wrapper
// used to run such operations without interleaved output.
package toolchain

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/pdiddy/manifest-recon/pkg/types"
)

// Source identifies where a tool is installed from.
type Source string

const (
	// SourceProxy is the default module registry.
	SourceProxy Source = "proxy"

	// SourceGitHub installs from the source-control host; the tool name
	// must be a full module path.
	SourceGitHub Source = "github"

	// SourceMirrorA and SourceMirrorB are the two named alternate
	// registries, resolved to URLs through ToolchainConfig.Mirrors.
	SourceMirrorA Source = "mirror-a"
	SourceMirrorB Source = "mirror-b"
)

// ErrUnknownSource marks an install source outside the enumerated set.
// It is fatal: callers abort rather than guessing a registry.
var ErrUnknownSource = errors.New("unrecognized install source")

// ParseSource validates a source string. An empty string means the
// default registry.
func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case "", SourceProxy:
		return SourceProxy, nil
	case SourceGitHub:
		return SourceGitHub, nil
	case SourceMirrorA:
		return SourceMirrorA, nil
	case SourceMirrorB:
		return SourceMirrorB, nil
	default:
		return "", fmt.Errorf("%w: %q (want proxy, github, mirror-a, or mirror-b)", ErrUnknownSource, s)
	}
}

// Resolver checks for and installs tools. The reconciliation commands
// never touch real installation state; tests substitute a fake.
type Resolver interface {
	// Installed reports whether the tool binary is already present.
	Installed(tool string) bool

	// Install fetches the tool from the given source, recording progress
	// on rec instead of printing.
	Install(tool string, src Source, rec *Recorder) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(name string, env []string, args ...string) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(name string, env []string, args ...string) error {
	cmd := exec.Command(name, args...)
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	return cmd.Run()
}

// goResolver installs tools with the go tool.
type goResolver struct {
	goBin   string
	mirrors map[string]string
	exec    executor
}

// NewResolver returns the production resolver for cfg.
func NewResolver(cfg types.ToolchainConfig) Resolver {
	goBin := cfg.GoBin
	if goBin == "" {
		goBin = "go"
	}
	return &goResolver{goBin: goBin, mirrors: cfg.Mirrors, exec: &osExecutor{}}
}

func (g *goResolver) Installed(tool string) bool {
	_, err := g.exec.LookPath(binaryName(tool))
	return err == nil
}

// binaryName reduces a module path like "golang.org/x/tools/cmd/stringer"
// to the installed binary name.
func binaryName(tool string) string {
	name := tool
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "@"); i >= 0 {
		name = name[:i]
	}
	return name
}

func (g *goResolver) Install(tool string, src Source, rec *Recorder) error {
	target := tool
	if !strings.Contains(target, "@") {
		target += "@latest"
	}

	var env []string
	switch src {
	case SourceProxy:
		// Default registry; the go tool's ambient proxy applies.
	case SourceGitHub:
		if !strings.HasPrefix(tool, "github.com/") {
			return fmt.Errorf("installing %s from github: tool must be a full github.com module path", tool)
		}
		env = append(env, "GOPROXY=direct")
	case SourceMirrorA, SourceMirrorB:
		url, ok := g.mirrors[string(src)]
		if !ok {
			return fmt.Errorf("installing %s: no URL configured for %s", tool, src)
		}
		env = append(env, "GOPROXY="+url)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSource, src)
	}

	rec.Notef("installing %s from %s", target, src)
	if err := g.exec.Run(g.goBin, env, "install", target); err != nil {
		if src == SourceProxy {
			return fmt.Errorf("tool %s not found in default registry: %w", tool, err)
		}
		return fmt.Errorf("installing %s from %s: %w", tool, src, err)
	}
	rec.Printf("installed %s", binaryName(tool))
	return nil
}

// EnsureInstalled makes the tool present: a no-op when it is already on
// PATH, an install from src otherwise. All output comes back on the
// Capture; nothing is printed.
func EnsureInstalled(r Resolver, tool string, src Source) (Capture, error) {
	return RunQuiet(func(rec *Recorder) error {
		if r.Installed(tool) {
			rec.Notef("%s already installed", binaryName(tool))
			return nil
		}
		return r.Install(tool, src, rec)
	})
}
