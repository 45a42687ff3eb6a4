package allowlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Normalize maps one raw token to its canonical form before storage or lookup.
type Normalize func(string) string

// NormalizeMAC canonicalizes a device address (uppercase, trimmed).
func NormalizeMAC(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }

// NormalizeUUID canonicalizes a service UUID (lowercase, trimmed).
func NormalizeUUID(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// AllowList is an active filter over normalized tokens.
//
// A nil *AllowList means the filter was never configured: Allows reports true
// for everything. A non-nil list with zero entries is still an active filter
// and matches nothing. Collapsing those two states would be a correctness bug.
// Lists are loaded once at startup and never mutated, so they are safe for
// concurrent readers.
type AllowList struct {
	entries   map[string]struct{}
	normalize Normalize
}

// Load reads one token per line from path, discarding blank lines and
// normalizing the rest. Tokens are kept as opaque strings: a malformed MAC or
// UUID simply never matches a real value. A missing or unreadable file is an
// error; callers treat it as "filter disabled", not as fatal.
func Load(path string, normalize Normalize) (*AllowList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open allow-list: %w", err)
	}
	defer f.Close()

	l := &AllowList{
		entries:   make(map[string]struct{}),
		normalize: normalize,
	}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		tok := normalize(sc.Text())
		if tok == "" {
			continue
		}
		l.entries[tok] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read allow-list: %w", err)
	}
	return l, nil
}

// Allows reports whether v passes the filter. v is normalized before lookup.
func (l *AllowList) Allows(v string) bool {
	if l == nil {
		return true
	}
	_, ok := l.entries[l.normalize(v)]
	return ok
}

// Len reports the number of loaded entries, zero on a nil receiver.
func (l *AllowList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}
