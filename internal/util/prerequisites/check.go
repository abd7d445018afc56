// Package prerequisites locates the client tools a run depends on.
package prerequisites

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Tool represents a client tool that may be required.
type Tool struct {
	// Name is the binary name to look for.
	Name string

	// Required indicates if this tool is mandatory.
	Required bool

	// Description explains what the tool is used for.
	Description string

	// InstallURL provides a URL for installation instructions.
	InstallURL string
}

// SDKTools returns the tools the Cloud SDK installation must provide.
func SDKTools() []Tool {
	return []Tool{
		{
			Name:        "gcloud",
			Required:    true,
			Description: "Required for tunneling SSH through Identity-Aware Proxy",
			InstallURL:  "https://cloud.google.com/sdk/docs/install",
		},
	}
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool  Tool
	Found bool
	Path  string
}

// CheckResults contains the results of checking multiple tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// HasErrors returns true if any required tools are missing.
func (r *CheckResults) HasErrors() bool {
	for _, tool := range r.Missing {
		if tool.Required {
			return true
		}
	}
	return false
}

// Error returns an error if any required tools are missing.
func (r *CheckResults) Error() error {
	var missing []string
	for _, tool := range r.Missing {
		if tool.Required {
			missing = append(missing, fmt.Sprintf("%s (%s)", tool.Name, tool.InstallURL))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}

// Path returns the resolved path of the named tool, or "" if it was not found.
func (r *CheckResults) Path(name string) string {
	for _, result := range r.Results {
		if result.Tool.Name == name && result.Found {
			return result.Path
		}
	}
	return ""
}

// Check verifies that the specified tools are available.
//
// When searchPath is empty the process PATH is used. Otherwise only the
// directories in searchPath (a filepath.ListSeparator separated list) are
// searched, which lets callers resolve tools inside a cached installation
// without touching the process environment.
func Check(tools []Tool, searchPath string) *CheckResults {
	results := &CheckResults{}

	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := lookPath(tool.Name, searchPath)
		if err == nil {
			result.Found = true
			result.Path = path
		} else {
			results.Missing = append(results.Missing, tool)
		}

		results.Results = append(results.Results, result)
	}

	return results
}

func lookPath(name, searchPath string) (string, error) {
	if searchPath == "" {
		return exec.LookPath(name)
	}

	var lastErr error
	for _, dir := range filepath.SplitList(searchPath) {
		if dir == "" {
			continue
		}
		// LookPath on a path containing a separator checks that exact file,
		// trying PATHEXT suffixes on Windows.
		path, err := exec.LookPath(filepath.Join(dir, name))
		if err == nil {
			return path, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("%s: empty search path", name)
	}
	return "", lastErr
}
