// Package util provides content hashing and entity tag helpers.
package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

func ContentHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// ETag returns a weak entity tag for content. Responses may be sent
// compressed, so the tag only promises the same content, not the same bytes.
func ETag(content []byte) string {
	return WeakETag(`"` + ContentHash(content)[:16] + `"`)
}

// WeakETag marks a strong tag, such as one from S3, as weak.
func WeakETag(tag string) string {
	if tag == "" || strings.HasPrefix(tag, "W/") {
		return tag
	}
	return "W/" + tag
}

// ETagMatches reports whether an If-None-Match header value matches tag
// under weak comparison.
func ETagMatches(header, tag string) bool {
	if header == "" || tag == "" {
		return false
	}
	tag = strings.TrimPrefix(tag, "W/")
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == tag {
			return true
		}
	}
	return false
}
