package gcloud

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// DefaultDownloadURL is the base URL of SDK release archives.
const DefaultDownloadURL = "https://dl.google.com/dl/cloudsdk/channels/rapid/downloads"

// archiveRoot is the top-level directory inside every SDK archive.
const archiveRoot = "google-cloud-sdk"

// ArchiveInstaller downloads a release archive and unpacks it.
type ArchiveInstaller struct {
	BaseURL string
	Client  *http.Client
	// Platform is the archive platform suffix, e.g. "linux-x86_64".
	Platform string
}

// NewArchiveInstaller returns an installer for the current platform.
func NewArchiveInstaller() *ArchiveInstaller {
	return &ArchiveInstaller{
		BaseURL:  DefaultDownloadURL,
		Client:   &http.Client{},
		Platform: archivePlatform(runtime.GOOS, runtime.GOARCH),
	}
}

// archivePlatform maps Go platform names to SDK archive names.
// Unsupported platforms yield "".
func archivePlatform(goos, goarch string) string {
	if goos != "linux" && goos != "darwin" {
		return ""
	}
	switch goarch {
	case "amd64":
		return goos + "-x86_64"
	case "arm64":
		return goos + "-arm"
	case "386":
		return goos + "-x86"
	default:
		return ""
	}
}

// ArchiveURL returns the download URL of the given SDK version.
func (i *ArchiveInstaller) ArchiveURL(version string) string {
	return fmt.Sprintf("%s/google-cloud-sdk-%s-%s.tar.gz", strings.TrimRight(i.BaseURL, "/"), version, i.Platform)
}

// Install downloads version and unpacks the SDK root into dest. dest must
// not exist; the archive is unpacked next to it and renamed into place so an
// interrupted install never looks complete.
func (i *ArchiveInstaller) Install(ctx context.Context, version, dest string) error {
	if i.Platform == "" {
		return fmt.Errorf("no Cloud SDK archive for %s/%s", runtime.GOOS, runtime.GOARCH)
	}

	url := i.ArchiveURL(version)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := i.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download %s: unexpected status %s", url, resp.Status)
	}

	parent := filepath.Dir(dest)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("failed to create tool cache directory: %w", err)
	}
	staging, err := os.MkdirTemp(parent, filepath.Base(dest)+".partial-")
	if err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(staging) }()

	if err := extractTarGz(resp.Body, staging); err != nil {
		return fmt.Errorf("failed to extract %s: %w", url, err)
	}

	if err := os.Rename(staging, dest); err != nil {
		return fmt.Errorf("failed to move SDK into tool cache: %w", err)
	}
	return nil
}

// extractTarGz unpacks a gzip-compressed tar stream into dest, stripping the
// archive root directory. Entries that would land outside dest are rejected.
func extractTarGz(r io.Reader, dest string) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return err
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		rel := stripArchiveRoot(hdr.Name)
		if rel == "" {
			continue
		}
		target, err := safeJoin(dest, rel)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := writeArchiveFile(target, tr, hdr.FileInfo().Mode().Perm()); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if filepath.IsAbs(hdr.Linkname) {
				return fmt.Errorf("archive entry %s links to absolute path %s", hdr.Name, hdr.Linkname)
			}
			if _, err := safeJoin(dest, filepath.Join(filepath.Dir(rel), hdr.Linkname)); err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return err
			}
		default:
			// Device nodes, fifos and hard links do not occur in SDK archives.
		}
	}
}

func stripArchiveRoot(name string) string {
	name = strings.TrimPrefix(filepath.ToSlash(name), "./")
	if name == archiveRoot || name == archiveRoot+"/" {
		return ""
	}
	return strings.TrimPrefix(name, archiveRoot+"/")
}

// safeJoin joins rel onto root and fails if the result escapes root.
func safeJoin(root, rel string) (string, error) {
	target := filepath.Join(root, filepath.FromSlash(rel))
	within, err := filepath.Rel(root, target)
	if err != nil || within == ".." || strings.HasPrefix(within, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("archive entry %s escapes destination", rel)
	}
	return target, nil
}

func writeArchiveFile(path string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	// #nosec G304 - path is validated by safeJoin
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	// #nosec G110 - archive comes from the official SDK download host
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
