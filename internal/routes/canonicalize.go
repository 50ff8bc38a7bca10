package routes

import (
	"fmt"
	"net/url"
	"strings"
)

// Canonicalize normalises a requested path. It accepts plain paths as well as
// hash fragments ("#/mypage"), drops any query or fragment suffix, collapses
// repeated slashes, removes the trailing slash and percent-decodes segments.
// Dot segments and encoded slashes are rejected.
func Canonicalize(raw string) (string, error) {
	p := strings.TrimPrefix(strings.TrimSpace(raw), "#")
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if strings.ContainsAny(p, "\\\x00") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, raw)
	}

	segs, err := decodeSegments(p)
	if err != nil {
		return "", fmt.Errorf("%w: %q", err, raw)
	}
	return "/" + strings.Join(segs, "/"), nil
}

func decodeSegments(p string) ([]string, error) {
	var out []string
	for _, seg := range strings.Split(p, "/") {
		if seg == "" {
			continue
		}
		dec, err := url.PathUnescape(seg)
		if err != nil {
			return nil, ErrInvalidPath
		}
		if dec == "." || dec == ".." || strings.Contains(dec, "/") {
			return nil, ErrInvalidPath
		}
		out = append(out, dec)
	}
	return out, nil
}

// splitCanonical splits an already canonical path into its segments.
func splitCanonical(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
