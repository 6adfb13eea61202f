package textutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

var leadingIntRegex = regexp.MustCompile(`^[+-]?[0-9]+`)

// ParseLeadingInt parses the integer at the start of s, ignoring leading
// whitespace and anything after the digits. "1234abc" parses as 1234,
// "abc" fails.
func ParseLeadingInt(s string) (int, error) {
	trimmed := strings.TrimLeft(s, " \t\n\r\f\v")
	match := leadingIntRegex.FindString(trimmed)
	if match == "" {
		return 0, fmt.Errorf("no leading integer in %q", s)
	}
	return strconv.Atoi(match)
}

// StripFirstRune removes the first character of s, "#123" becomes "123".
func StripFirstRune(s string) string {
	for i := range s {
		if i > 0 {
			return s[i:]
		}
	}
	return ""
}
