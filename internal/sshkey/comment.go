package sshkey

import (
	"bytes"
	"encoding/pem"
	"math/big"
	"strings"

	"golang.org/x/crypto/ssh"
)

const openSSHMagic = "openssh-key-v1\x00"

type openSSHEnvelope struct {
	CipherName   string
	KdfName      string
	KdfOpts      string
	NumKeys      uint32
	PubKey       []byte
	PrivKeyBlock []byte
}

type openSSHPrivate struct {
	Check1  uint32
	Check2  uint32
	Keytype string
	Rest    []byte `ssh:"rest"`
}

type openSSHEd25519 struct {
	Pub     []byte
	Priv    []byte
	Comment string
	Pad     []byte `ssh:"rest"`
}

type openSSHRSA struct {
	N       *big.Int
	E       *big.Int
	D       *big.Int
	Iqmp    *big.Int
	P       *big.Int
	Q       *big.Int
	Comment string
	Pad     []byte `ssh:"rest"`
}

type openSSHECDSA struct {
	Curve   string
	Pub     []byte
	D       *big.Int
	Comment string
	Pad     []byte `ssh:"rest"`
}

// EmbeddedComment returns the comment stored inside an unencrypted OpenSSH
// private key, as written by ssh-keygen -C. Other encodings carry no comment,
// and encrypted keys cannot be read without the passphrase; both yield "".
func EmbeddedComment(privateKey []byte) string {
	block, _ := pem.Decode(privateKey)
	if block == nil || block.Type != "OPENSSH PRIVATE KEY" {
		return ""
	}
	if !bytes.HasPrefix(block.Bytes, []byte(openSSHMagic)) {
		return ""
	}

	var env openSSHEnvelope
	if err := ssh.Unmarshal(block.Bytes[len(openSSHMagic):], &env); err != nil {
		return ""
	}
	if env.CipherName != "none" || env.NumKeys != 1 {
		return ""
	}

	var priv openSSHPrivate
	if err := ssh.Unmarshal(env.PrivKeyBlock, &priv); err != nil || priv.Check1 != priv.Check2 {
		return ""
	}

	var comment string
	switch {
	case priv.Keytype == ssh.KeyAlgoED25519:
		var k openSSHEd25519
		if err := ssh.Unmarshal(priv.Rest, &k); err != nil {
			return ""
		}
		comment = k.Comment
	case priv.Keytype == ssh.KeyAlgoRSA:
		var k openSSHRSA
		if err := ssh.Unmarshal(priv.Rest, &k); err != nil {
			return ""
		}
		comment = k.Comment
	case strings.HasPrefix(priv.Keytype, "ecdsa-sha2-nistp"):
		var k openSSHECDSA
		if err := ssh.Unmarshal(priv.Rest, &k); err != nil {
			return ""
		}
		comment = k.Comment
	}

	// A comment spanning lines would break the authorized_keys line.
	if strings.ContainsAny(comment, "\r\n") {
		return ""
	}
	return strings.TrimSpace(comment)
}
