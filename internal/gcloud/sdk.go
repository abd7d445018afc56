package gcloud

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/Masterminds/semver/v3"
	"github.com/go-logr/logr"

	"github.com/imamik/iapssh/internal/config"
	"github.com/imamik/iapssh/internal/runner"
	"github.com/imamik/iapssh/internal/util/fault"
	"github.com/imamik/iapssh/internal/util/naming"
	"github.com/imamik/iapssh/internal/util/prerequisites"
)

// ReleaseSource resolves the newest SDK version.
type ReleaseSource interface {
	Latest(ctx context.Context) (string, error)
}

// Installer puts the SDK root of a version into dest.
type Installer interface {
	Install(ctx context.Context, version, dest string) error
}

// Executor runs a process; *runner.Runner implements it.
type Executor interface {
	Run(ctx context.Context, name string, args []string) (*runner.Result, error)
}

// completeMarkerSuffix follows the tool-cache convention of a sibling
// "<dir>.complete" file written after a successful install.
const completeMarkerSuffix = ".complete"

// Provisioner ensures SDK versions are present in a tool cache.
type Provisioner struct {
	CacheRoot string
	// Arch is the tool-cache architecture directory name.
	Arch      string
	Releases  ReleaseSource
	Installer Installer
	// NewExecutor builds the executor used for `gcloud components install`.
	NewExecutor func(env []string) Executor
}

// NewProvisioner returns a Provisioner using the public release endpoints.
func NewProvisioner(cacheRoot string) *Provisioner {
	return &Provisioner{
		CacheRoot: cacheRoot,
		Arch:      ToolCacheArch(runtime.GOARCH),
		Releases:  NewHTTPReleaseSource(),
		Installer: NewArchiveInstaller(),
		NewExecutor: func(env []string) Executor {
			return runner.New(runner.WithEnv(env))
		},
	}
}

// ToolCacheArch maps a Go architecture to the tool-cache directory name.
func ToolCacheArch(goarch string) string {
	switch goarch {
	case "amd64":
		return "x64"
	case "386":
		return "x86"
	default:
		return goarch
	}
}

// DefaultCacheRoot returns RUNNER_TOOL_CACHE, or the user cache directory.
func DefaultCacheRoot() (string, error) {
	if dir := os.Getenv("RUNNER_TOOL_CACHE"); dir != "" {
		return dir, nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine tool cache directory: %w", err)
	}
	return filepath.Join(dir, "iapssh"), nil
}

// Ensure returns an installation of the selected SDK version, installing it
// and the requested component when necessary.
//
// selector is "", "latest" or a concrete version. An invalid component fails
// before any network or filesystem access.
func (p *Provisioner) Ensure(ctx context.Context, selector string, component config.Component) (*Installation, error) {
	log := logr.FromContextOrDiscard(ctx)

	if _, err := config.ParseComponent(string(component)); err != nil {
		return nil, fault.Configuration(err)
	}

	version, err := p.resolveVersion(ctx, selector)
	if err != nil {
		return nil, err
	}

	root := naming.SDKCacheDir(p.CacheRoot, version, p.Arch)
	inst := &Installation{
		Version:   version,
		Root:      root,
		BinDir:    filepath.Join(root, "bin"),
		Component: component,
	}

	cached, err := isCached(root)
	if err != nil {
		return nil, fault.ToolProvision(err)
	}
	if cached {
		log.V(1).Info("Using cached Cloud SDK", "version", version, "path", root)
	} else {
		log.Info("Installing Cloud SDK", "version", version)
		if err := p.install(ctx, version, root); err != nil {
			return nil, fault.ToolProvision(fmt.Errorf("failed to install Cloud SDK %s: %w", version, err))
		}
		inst.Installed = true
	}

	check := prerequisites.Check(prerequisites.SDKTools(), inst.BinDir)
	if err := check.Error(); err != nil {
		return nil, fault.ToolProvision(fmt.Errorf("cloud SDK %s at %s is unusable: %w", version, root, err))
	}
	inst.Executable = check.Path("gcloud")

	if component.IsSet() {
		if err := p.installComponent(ctx, inst); err != nil {
			return nil, err
		}
	}

	return inst, nil
}

func (p *Provisioner) resolveVersion(ctx context.Context, selector string) (string, error) {
	if selector != "" && selector != config.LatestVersion {
		if _, err := semver.StrictNewVersion(selector); err != nil {
			return "", fault.Configuration(fmt.Errorf("invalid Cloud SDK version %q: %w", selector, err))
		}
		return selector, nil
	}
	version, err := p.Releases.Latest(ctx)
	if err != nil {
		return "", fault.ToolProvision(fmt.Errorf("failed to resolve latest Cloud SDK version: %w", err))
	}
	logr.FromContextOrDiscard(ctx).V(1).Info("Resolved latest Cloud SDK version", "version", version)
	return version, nil
}

func (p *Provisioner) install(ctx context.Context, version, root string) error {
	// A directory without a marker is the leftover of an interrupted install.
	if err := os.RemoveAll(root); err != nil {
		return err
	}
	if err := p.Installer.Install(ctx, version, root); err != nil {
		return err
	}
	return os.WriteFile(root+completeMarkerSuffix, nil, 0o644)
}

func (p *Provisioner) installComponent(ctx context.Context, inst *Installation) error {
	log := logr.FromContextOrDiscard(ctx)
	log.Info("Installing Cloud SDK component", "component", inst.Component.String())

	exec := p.NewExecutor(inst.Env(os.Environ()))
	res, err := exec.Run(ctx, inst.Executable, []string{"components", "install", string(inst.Component), "--quiet"})
	if err == nil {
		err = res.Err()
	}
	if err != nil {
		return fault.ToolProvision(fmt.Errorf("failed to install Cloud SDK component %s: %w", inst.Component, err))
	}
	return nil
}

func isCached(root string) (bool, error) {
	if _, err := os.Stat(root + completeMarkerSuffix); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to inspect tool cache: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to inspect tool cache: %w", err)
	}
	return info.IsDir(), nil
}
