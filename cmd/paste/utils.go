package main

import (
	"net/url"
	"path"
	"strings"
)

func lastPathSegment(raw string) string {
	raw = strings.TrimSpace(raw)
	if u, err := url.Parse(raw); err == nil && u.Scheme != "" && u.Host != "" {
		return path.Base(strings.TrimRight(u.Path, "/"))
	}
	return raw
}
