package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Key joins prefix with the SHA-256 of the JSON encoding of parts, e.g.
// Key("render", "svg", h) = "render:<64 hex chars>".
func Key(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// Hash returns the hex-encoded SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
