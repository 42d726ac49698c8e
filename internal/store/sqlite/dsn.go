package sqlite

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

const scheme = "sqlite://"

// parseDSN turns sqlite://path[?query] into a driver DSN. Relative paths are
// resolved against the working directory.
func parseDSN(dsn string) (string, error) {
	if !strings.HasPrefix(dsn, scheme) {
		return "", fmt.Errorf("invalid sqlite DSN scheme, expected %s", scheme)
	}

	rest := strings.TrimPrefix(dsn, scheme)
	path, query, _ := strings.Cut(rest, "?")
	if path == "" {
		return "", fmt.Errorf("sqlite DSN has no database path")
	}

	if path != ":memory:" {
		unescaped, err := url.PathUnescape(path)
		if err != nil {
			return "", fmt.Errorf("unescaping path: %w", err)
		}
		path = unescaped
		if !filepath.IsAbs(path) && !strings.HasPrefix(path, "./") {
			path = "./" + path
		}
	}

	if query != "" {
		return path + "?" + query, nil
	}
	return path, nil
}
