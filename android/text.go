package android

import (
	"strconv"
	"strings"
)

// xmlReplacer escapes the five XML reserved characters. A Replacer never
// rescans its own output, so entities are not escaped twice.
var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&apos;",
	">", "&gt;",
	"<", "&lt;",
)

// Escape makes s safe for XML element text and attribute values.
func Escape(s string) string {
	return xmlReplacer.Replace(s)
}

// ParseParameters splits a comma-separated "parameters" list into trimmed
// variable names. Empty items are dropped.
func ParseParameters(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyParameters
	}
	var params []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			params = append(params, p)
		}
	}
	if len(params) == 0 {
		return nil, ErrEmptyParameters
	}
	return params, nil
}

// SubstituteParams rewrites every $name reference to the positional Android
// placeholder %N$s, N being the 1-based index of name in params.
//
// The text is scanned once from left to right. At each '$' the longest
// parameter name that follows wins, so "$foobar" is never split into "$foo"
// plus "bar" when both names are declared. Inserted placeholders are not
// scanned again. A '$' not followed by a declared name is kept as is.
func SubstituteParams(s string, params []string) string {
	if len(params) == 0 || !strings.Contains(s, "$") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] == '$' {
			if idx, n := matchParam(s[i+1:], params); n > 0 {
				b.WriteByte('%')
				b.WriteString(strconv.Itoa(idx + 1))
				b.WriteString("$s")
				i += 1 + n
				continue
			}
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// matchParam returns the index and length of the longest name in params that
// prefixes rest. On equal names the first declaration wins.
func matchParam(rest string, params []string) (idx, n int) {
	idx = -1
	for i, p := range params {
		if len(p) > n && strings.HasPrefix(rest, p) {
			idx, n = i, len(p)
		}
	}
	return idx, n
}
