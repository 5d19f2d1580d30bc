package fetch

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// IdentityLength is the length of every string returned by Identity.
const IdentityLength = sha256.Size * 2

type header struct {
	name  string
	value string
}

// Identity fingerprints an outbound request. Header names are lower-cased and sorted so
// the result does not depend on insertion order, the url is hashed verbatim.
func Identity(url string, headers map[string]string) string {
	sorted := make([]header, 0, len(headers))
	for name, value := range headers {
		sorted = append(sorted, header{name: strings.ToLower(name), value: value})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].name != sorted[j].name {
			return sorted[i].name < sorted[j].name
		}
		return sorted[i].value < sorted[j].value
	})

	hasher := sha256.New()
	hasher.Write([]byte(url))
	hasher.Write([]byte{0})
	for _, h := range sorted {
		hasher.Write([]byte(h.name))
		hasher.Write([]byte{':'})
		hasher.Write([]byte(h.value))
		hasher.Write([]byte{0})
	}
	return hex.EncodeToString(hasher.Sum(nil))
}
