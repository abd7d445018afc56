package naming

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
)

const (
	// PrivateKeyFile is the file name of the private key inside a keys directory.
	PrivateKeyFile = "google_compute_engine"
	// PublicKeyFile is the file name of the derived public key.
	PublicKeyFile = PrivateKeyFile + ".pub"

	keysDirPrefix = "iapssh"
	stateFile     = "iapssh-state.yaml"
)

// PrivateKeyPath returns the private key path inside dir.
func PrivateKeyPath(dir string) string {
	return filepath.Join(dir, PrivateKeyFile)
}

// PublicKeyPath returns the public key path inside dir.
func PublicKeyPath(dir string) string {
	return filepath.Join(dir, PublicKeyFile)
}

// EphemeralKeysDir returns a fresh, unique keys directory path under base.
// The directory is not created.
func EphemeralKeysDir(base string) string {
	return filepath.Join(base, fmt.Sprintf("%s-%s", keysDirPrefix, uuid.NewString()))
}

// StateFile returns the default state record path under base.
func StateFile(base string) string {
	return filepath.Join(base, stateFile)
}

// SDKCacheDir returns the tool cache directory for one SDK version and arch.
func SDKCacheDir(cacheRoot, version, arch string) string {
	return filepath.Join(cacheRoot, "gcloud", version, arch)
}
