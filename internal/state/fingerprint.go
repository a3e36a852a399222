package state

import (
	"encoding/hex"
	"encoding/json"

	"lukechampine.com/blake3"
)

// Fingerprint digests a snapshot. Two snapshots share a fingerprint exactly
// when their commits, branches, HEAD, id counter and selection match.
func Fingerprint(snap Snapshot) string {
	data, err := json.Marshal(snap)
	if err != nil {
		return ""
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
