package sshkey

import (
	"bytes"
	"fmt"
	"os"

	"golang.org/x/crypto/ssh"

	"github.com/imamik/iapssh/internal/util/fault"
	"github.com/imamik/iapssh/internal/util/naming"
)

const (
	// DirMode restricts the keys directory to its owner.
	DirMode os.FileMode = 0o700
	// PrivateKeyMode allows owner read/write only.
	PrivateKeyMode os.FileMode = 0o600
	// PublicKeyMode allows owner write and world read.
	PublicKeyMode os.FileMode = 0o644
)

// Material describes key files written for one run.
type Material struct {
	// Dir is the directory holding both files.
	Dir string
	// PrivateKeyPath is passed to gcloud with --ssh-key-file.
	PrivateKeyPath string
	// PublicKeyPath is the derived authorized_keys line; gcloud expects it
	// next to the private key.
	PublicKeyPath string
	// Fingerprint is the SHA256 fingerprint of the public key. Safe to log.
	Fingerprint string
}

// DerivePublicKey parses privateKey and returns the authorized_keys line of
// its public half, with comment appended when non-empty.
func DerivePublicKey(privateKey []byte, comment string) ([]byte, ssh.PublicKey, error) {
	signer, err := ssh.ParsePrivateKey(privateKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	pub := signer.PublicKey()
	line := ssh.MarshalAuthorizedKey(pub)
	if comment != "" {
		line = append(bytes.TrimRight(line, "\n"), ' ')
		line = append(line, comment...)
		line = append(line, '\n')
	}

	return line, pub, nil
}

// Provision creates dir (and parents) if needed and writes the normalized
// private key and its derived public key into it. An empty comment falls back
// to the comment embedded in an unencrypted OpenSSH key, if any.
//
// The key is parsed before anything is written, so malformed input leaves no
// secret on disk. Existing key files are never overwritten.
func Provision(dir, privateKey, comment string) (*Material, error) {
	if err := os.MkdirAll(dir, DirMode); err != nil {
		return nil, fault.IO(fmt.Errorf("failed to create keys directory %s: %w", dir, err))
	}

	normalized := Normalize(privateKey)
	if comment == "" {
		comment = EmbeddedComment([]byte(normalized))
	}

	publicKey, pub, err := DerivePublicKey([]byte(normalized), comment)
	if err != nil {
		return nil, fault.KeyParse(err)
	}

	material := &Material{
		Dir:            dir,
		PrivateKeyPath: naming.PrivateKeyPath(dir),
		PublicKeyPath:  naming.PublicKeyPath(dir),
		Fingerprint:    ssh.FingerprintSHA256(pub),
	}

	if err := writeExclusive(material.PrivateKeyPath, []byte(normalized), PrivateKeyMode); err != nil {
		return nil, fault.IO(fmt.Errorf("failed to write private key: %w", err))
	}
	if err := writeExclusive(material.PublicKeyPath, publicKey, PublicKeyMode); err != nil {
		return nil, fault.IO(fmt.Errorf("failed to write public key: %w", err))
	}

	return material, nil
}

// writeExclusive creates path with the exact mode and fails if it exists.
func writeExclusive(path string, data []byte, mode os.FileMode) error {
	// #nosec G304 - path is built from the keys directory and a fixed file name
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
	if err != nil {
		return err
	}

	// The umask may have cleared bits from mode; chmod restores exactly mode.
	if err := f.Chmod(mode); err != nil {
		_ = f.Close()
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
