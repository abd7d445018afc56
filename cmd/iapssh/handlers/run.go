package handlers

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-logr/logr"

	"github.com/imamik/iapssh/internal/config"
	"github.com/imamik/iapssh/internal/gcloud"
	"github.com/imamik/iapssh/internal/metrics"
	"github.com/imamik/iapssh/internal/report"
	"github.com/imamik/iapssh/internal/runner"
	"github.com/imamik/iapssh/internal/sshkey"
	"github.com/imamik/iapssh/internal/state"
	"github.com/imamik/iapssh/internal/util/async"
	"github.com/imamik/iapssh/internal/util/fault"
	"github.com/imamik/iapssh/internal/util/naming"
)

// SDKProvisioner ensures a usable Cloud SDK. *gcloud.Provisioner implements it.
type SDKProvisioner interface {
	Ensure(ctx context.Context, selector string, component config.Component) (*gcloud.Installation, error)
}

// OutputWriter publishes step outputs. *report.Writer implements it.
type OutputWriter interface {
	Write(outputs ...report.Output) error
}

// Factory function variables for run - can be replaced in tests.
var (
	loadConfig = config.Load

	newSDKProvisioner = func() (SDKProvisioner, error) {
		root, err := gcloud.DefaultCacheRoot()
		if err != nil {
			return nil, fault.ToolProvision(err)
		}
		return gcloud.NewProvisioner(root), nil
	}

	newExecutor = func(env []string) gcloud.Executor {
		return runner.New(runner.WithEnv(env))
	}

	newOutputWriter = func() OutputWriter {
		return report.NewWriter()
	}

	provisionKeys = sshkey.Provision

	readFile = os.ReadFile

	now = time.Now
)

// RunOptions holds the flag values of the run command.
type RunOptions struct {
	// Inputs holds explicitly set input flags by input name. They take
	// precedence over INPUT_* environment variables.
	Inputs map[string]string
	// PrivateKeyFile replaces the ssh_private_key input with a file's content.
	PrivateKeyFile string
	// KeyComment is appended to the derived public key.
	KeyComment  string
	StateFile   string
	MetricsFile string
	// Cleanup removes the key material before returning.
	Cleanup bool
}

// Run handles the run command.
//
// It validates the inputs, writes the key material and ensures the Cloud SDK
// concurrently, then runs the command on the instance through
// `gcloud compute ssh --tunnel-through-iap`. The key directory is recorded in
// the state file so the cleanup command can remove it later.
func Run(ctx context.Context, opts RunOptions) (err error) {
	log := logr.FromContextOrDiscard(ctx)

	cfg, err := prepareConfig(opts)
	if err != nil {
		return err
	}
	log.Info("Connecting to instance", cfg.LogValues()...)

	// Read before any key material exists, so a bad script leaves nothing behind.
	command, err := gcloud.EffectiveCommand(cfg)
	if err != nil {
		return err
	}

	store := state.NewStore(resolveStateFile(opts.StateFile))
	if opts.Cleanup {
		defer func() { _ = Cleanup(ctx, store.Path) }()
	}

	keysDir := cfg.SSHKeysDir
	if keysDir == "" {
		keysDir = naming.EphemeralKeysDir(runnerTempDir())
	}
	if err := store.Add(state.Entry{KeysDir: keysDir, CreatedAt: now().UTC()}); err != nil {
		return fault.IO(err)
	}

	recorder := metrics.NewRecorder(cfg.InstanceName, cfg.Zone)
	defer func() {
		recorder.SetSuccess(err == nil)
		writeMetrics(log, recorder, opts.MetricsFile)
	}()

	provisioner, err := newSDKProvisioner()
	if err != nil {
		return err
	}

	var (
		material *sshkey.Material
		inst     *gcloud.Installation
	)
	err = async.RunParallel(ctx, []async.Task{
		{
			Name: "key material",
			Func: func(context.Context) error {
				m, err := provisionKeys(keysDir, cfg.SSHPrivateKey, opts.KeyComment)
				material = m
				return err
			},
		},
		{
			Name: "cloud sdk",
			Func: func(ctx context.Context) error {
				i, err := provisioner.Ensure(ctx, cfg.GcloudVersion, cfg.GcloudComponent)
				inst = i
				return err
			},
		},
	})
	if err != nil {
		return err
	}
	log.Info("Key material ready", "dir", material.Dir, "fingerprint", material.Fingerprint)
	if inst.Installed {
		recorder.ObserveSDKInstall(inst.Version)
	}

	args, err := gcloud.BuildSSHArgs(cfg, material.PrivateKeyPath, command)
	if err != nil {
		return err
	}

	res, err := newExecutor(inst.Env(os.Environ())).Run(ctx, inst.Executable, inst.Args(args...))
	if err != nil {
		return err
	}
	recorder.ObserveCommand(res.ExitCode, res.Duration.Seconds())

	if err := newOutputWriter().Write(
		report.Output{Name: "stdout", Value: res.Stdout},
		report.Output{Name: "stderr", Value: res.Stderr},
	); err != nil {
		return fault.IO(err)
	}

	if err := res.Err(); err != nil {
		return err
	}

	log.Info("Command succeeded", "duration", res.Duration.String())
	return nil
}

// prepareConfig loads the inputs, applies flag overrides and validates the
// result. Nothing is written to disk.
func prepareConfig(opts RunOptions) (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	for name, value := range opts.Inputs {
		if err := cfg.Set(name, value); err != nil {
			return nil, fault.Configuration(err)
		}
	}

	if opts.PrivateKeyFile != "" {
		data, err := readFile(opts.PrivateKeyFile)
		if err != nil {
			return nil, fault.IO(fmt.Errorf("failed to read private key file: %w", err))
		}
		cfg.SSHPrivateKey = string(data)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func writeMetrics(log logr.Logger, recorder *metrics.Recorder, path string) {
	if path == "" {
		return
	}
	if err := recorder.WriteFile(path); err != nil {
		log.Error(err, "Failed to write metrics", "path", path)
		return
	}
	log.V(1).Info("Wrote metrics", "path", path)
}
