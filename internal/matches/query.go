package matches

import (
	"net/url"
	"strings"
)

// CanonicalQuery re-encodes an inbound query string for the upstream request
// and the cache key. Keys keep the order of their first appearance and a
// repeated key takes its last value, so equal inputs always give equal keys.
// Text that fails to unescape is kept literally and escaped on the way out.
func CanonicalQuery(rawQuery string) string {
	var keys []string
	values := make(map[string]string)

	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		key := unescapeOrRaw(k)
		value := unescapeOrRaw(v)
		if _, seen := values[key]; !seen {
			keys = append(keys, key)
		}
		values[key] = value
	}

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(values[key]))
	}
	return b.String()
}

func unescapeOrRaw(s string) string {
	if u, err := url.QueryUnescape(s); err == nil {
		return u
	}
	return s
}
