// Package session manages the captured browser session used to talk to
// the hotel portal: parsing a curl command copied from developer tools
// and persisting the extracted headers.
package session

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/bradfox2/aa-hotel-optimizer/internal/common"
)

var (
	urlSingleQuoted    = regexp.MustCompile(`curl\s+'([^']*)'`)
	urlDoubleQuoted    = regexp.MustCompile(`curl\s+"([^"]*)"`)
	headerFlag         = regexp.MustCompile(`-H\s+'([^']*)'`)
	cookieSingleQuoted = regexp.MustCompile(`(?:-b|--cookie)\s+'([^']*)'`)
	cookieDoubleQuoted = regexp.MustCompile(`(?:-b|--cookie)\s+"([^"]*)"`)
)

// ParseCurlCommand extracts the request URL and headers from a curl
// command string as copied from browser developer tools. A -b/--cookie
// flag becomes the Cookie header, overriding any -H cookie.
func ParseCurlCommand(raw string) (string, map[string]string, error) {
	rawURL := ""
	if m := urlSingleQuoted.FindStringSubmatch(raw); m != nil {
		rawURL = m[1]
	} else if m := urlDoubleQuoted.FindStringSubmatch(raw); m != nil {
		rawURL = m[1]
	}
	if rawURL == "" {
		return "", nil, common.ErrCurlNoURL
	}

	headers := make(map[string]string)
	for _, m := range headerFlag.FindAllStringSubmatch(raw, -1) {
		name, value, ok := strings.Cut(m[1], ":")
		if !ok {
			continue
		}
		headers[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}

	cookie := cookieSingleQuoted.FindStringSubmatch(raw)
	if cookie == nil {
		cookie = cookieDoubleQuoted.FindStringSubmatch(raw)
	}
	if cookie != nil {
		if _, exists := headers["Cookie"]; exists {
			slog.Warn("cookie header already present, -b flag overrides it")
		}
		headers["Cookie"] = strings.TrimSpace(cookie[1])
	}

	if len(headers) == 0 {
		return "", nil, fmt.Errorf("%w (is this a browser-copied curl command?)", common.ErrCurlNoHeaders)
	}

	return rawURL, headers, nil
}

// Sanity reports header names the portal usually requires that are
// missing from the capture. An empty slice means the capture looks
// complete.
func Sanity(headers map[string]string) []string {
	var missing []string
	for _, want := range []string{"Cookie", "X-Xsrf-Token"} {
		found := false
		for name := range headers {
			if strings.EqualFold(name, want) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, want)
		}
	}
	return missing
}
