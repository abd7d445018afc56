// Package gcloud drives the Google Cloud SDK.
//
// It has two halves. [BuildSSHArgs] turns a validated configuration into the
// argument list of `gcloud compute ssh` for an Identity-Aware Proxy tunnel.
// [Provisioner] makes sure the requested SDK version is available in the
// local tool cache, resolving "latest" from the SDK release manifest and
// installing the release archive when needed, and installs an optional
// alpha or beta component.
package gcloud
