// Package sshkey places ephemeral SSH key material on disk.
//
// A private key supplied by the CI secret store is normalized, parsed with
// golang.org/x/crypto/ssh to derive its public half, and written together
// with the OpenSSH authorized_keys form of that public key into a
// permission-restricted directory. Supported inputs are the formats
// ssh.ParsePrivateKey understands: OpenSSH, PKCS#1, PKCS#8 and SEC 1 encoded
// RSA, ECDSA and Ed25519 keys. Passphrase-protected keys are rejected.
//
// Files are never overwritten. A second provisioning into the same directory
// fails, which surfaces two runs sharing a pinned directory.
package sshkey
