package testing

import (
	"context"
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
)

// PrivateKey is a generated private key and its signer.
type PrivateKey struct {
	// Name describes algorithm and encoding.
	Name string
	// PEM is the encoded key as ssh-keygen or openssl would write it.
	PEM    string
	Signer ssh.Signer
}

// PrivateKeys returns one key per supported algorithm and encoding.
func PrivateKeys(t *testing.T) []PrivateKey {
	t.Helper()

	_, edKey, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	edBlock, err := ssh.MarshalPrivateKey(edKey, "ci@example")
	require.NoError(t, err)

	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	ecDER, err := x509.MarshalECPrivateKey(ecKey)
	require.NoError(t, err)

	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	pkcs8DER, err := x509.MarshalPKCS8PrivateKey(rsaKey)
	require.NoError(t, err)

	keys := []struct {
		name  string
		block *pem.Block
		key   crypto.Signer
	}{
		{"ed25519 openssh", edBlock, edKey},
		{"ecdsa sec1", &pem.Block{Type: "EC PRIVATE KEY", Bytes: ecDER}, ecKey},
		{"rsa pkcs1", &pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(rsaKey)}, rsaKey},
		{"rsa pkcs8", &pem.Block{Type: "PRIVATE KEY", Bytes: pkcs8DER}, rsaKey},
	}

	out := make([]PrivateKey, 0, len(keys))
	for _, k := range keys {
		signer, err := ssh.NewSignerFromSigner(k.key)
		require.NoError(t, err)
		out = append(out, PrivateKey{
			Name:   k.name,
			PEM:    string(pem.EncodeToMemory(k.block)),
			Signer: signer,
		})
	}
	return out
}

// ED25519PrivateKey returns an OpenSSH encoded ed25519 private key.
func ED25519PrivateKey(t *testing.T) string {
	t.Helper()

	_, key, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	block, err := ssh.MarshalPrivateKey(key, "")
	require.NoError(t, err)
	return string(pem.EncodeToMemory(block))
}

// TestContext returns a context with a reasonable timeout for tests.
func TestContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}
