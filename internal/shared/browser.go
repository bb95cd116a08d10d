package shared

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

var getRuntime = func() string { return runtime.GOOS }

// OpenBrowser opens the default system browser to the specified URL.
//
// Supports macOS, Linux, and Windows platforms.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd
	switch rt := getRuntime(); rt {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux", "freebsd", "openbsd":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", rt)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}

// JoinURL resolves an application-relative path (which may carry a query) against baseURL.
//
// A path naming its own scheme or host is rejected with [ErrInvalidInput], so requests never leave baseURL's host.
func JoinURL(baseURL, path string) (string, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		return "", fmt.Errorf("%w: base URL %q: %v", ErrInvalidConfig, baseURL, err)
	}

	ref, err := url.Parse(strings.TrimLeft(path, "/"))
	if err != nil {
		return "", fmt.Errorf("%w: path %q: %v", ErrInvalidInput, path, err)
	}
	if ref.IsAbs() || ref.Host != "" || ref.User != nil {
		return "", fmt.Errorf("%w: path %q is not application-relative", ErrInvalidInput, path)
	}

	resolved := base.ResolveReference(ref)
	if resolved.Host != base.Host {
		return "", fmt.Errorf("%w: path %q leaves %s", ErrInvalidInput, path, base.Host)
	}
	return resolved.String(), nil
}
