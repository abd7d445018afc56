package sshkey

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"encoding/pem"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"

	testutil "github.com/imamik/iapssh/internal/testing"
)

func marshalOpenSSH(t *testing.T, key crypto.PrivateKey, comment string) []byte {
	t.Helper()
	block, err := ssh.MarshalPrivateKey(key, comment)
	require.NoError(t, err)
	return pem.EncodeToMemory(block)
}

func TestEmbeddedComment(t *testing.T) {
	t.Parallel()

	_, edKey, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	ecKey, err := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
	require.NoError(t, err)
	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	encrypted, err := ssh.MarshalPrivateKeyWithPassphrase(edKey, "secret@example", []byte("hunter2"))
	require.NoError(t, err)

	tests := []struct {
		name string
		key  []byte
		want string
	}{
		{"ed25519", marshalOpenSSH(t, edKey, "deploy@ci"), "deploy@ci"},
		{"ecdsa", marshalOpenSSH(t, ecKey, "ecdsa@ci"), "ecdsa@ci"},
		{"rsa", marshalOpenSSH(t, rsaKey, "rsa@ci"), "rsa@ci"},
		{"no comment", marshalOpenSSH(t, edKey, ""), ""},
		{"multi-line comment", marshalOpenSSH(t, edKey, "a\nb"), ""},
		{"passphrase protected", pem.EncodeToMemory(encrypted), ""},
		{"not armored", []byte("garbage"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, EmbeddedComment(tt.key))
		})
	}
}

func TestEmbeddedComment_OtherEncodings(t *testing.T) {
	t.Parallel()

	for _, key := range testutil.PrivateKeys(t)[1:] {
		t.Run(key.Name, func(t *testing.T) {
			t.Parallel()
			assert.Empty(t, EmbeddedComment([]byte(key.PEM)))
		})
	}
}

func TestProvision_EmbeddedCommentFallback(t *testing.T) {
	t.Parallel()
	key := testutil.PrivateKeys(t)[0]

	material, err := Provision(t.TempDir(), key.PEM, "")
	require.NoError(t, err)

	pubText, err := os.ReadFile(material.PublicKeyPath)
	require.NoError(t, err)
	_, comment, _, _, err := ssh.ParseAuthorizedKey(pubText)
	require.NoError(t, err)
	assert.Equal(t, "ci@example", comment)
}
