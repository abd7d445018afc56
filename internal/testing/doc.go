// Package testing provides fixtures shared by unit tests.
//
// Private keys are generated per test in the encodings common key tools
// produce, so tests never depend on checked-in secrets.
//
// Usage:
//
//	key := testing.ED25519PrivateKey(t)
//	for _, k := range testing.PrivateKeys(t) { ... }
package testing
