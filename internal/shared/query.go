// Utilities for reading query-string parameters from URLs.
package shared

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// ParameterByName looks up the query parameter name in rawURL.
//
// ok is false when the parameter is absent. A parameter present without a value (`?a&b=1`, `?a=`) yields "" and ok.
// The value is percent-decoded with '+' read as a space.
func ParameterByName(name, rawURL string) (value string, ok bool, err error) {
	re, err := regexp.Compile(`[?&]` + regexp.QuoteMeta(name) + `(=([^&#]*)|&|#|$)`)
	if err != nil {
		return "", false, fmt.Errorf("%w: parameter name %q", ErrInvalidArgument, name)
	}

	m := re.FindStringSubmatch(rawURL)
	if m == nil {
		return "", false, nil
	}
	if m[2] == "" {
		return "", true, nil
	}

	decoded, err := url.PathUnescape(strings.ReplaceAll(m[2], "+", " "))
	if err != nil {
		return "", true, fmt.Errorf("%w: malformed value for %q: %v", ErrInvalidInput, name, err)
	}
	return decoded, true, nil
}
