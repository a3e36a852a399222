package git

import (
	"time"

	"github.com/go-git/go-git/v5/plumbing/object"
)

// mirrorEpoch anchors mirror timestamps so identical graphs hash identically.
var mirrorEpoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// GetDefaultSignature returns the author/committer signature for the mirror
// commit at timeIndex. Each step in the graph is one minute after the last.
func GetDefaultSignature(timeIndex int) object.Signature {
	return object.Signature{
		Name:  "gitviz",
		Email: "gitviz@localhost",
		When:  mirrorEpoch.Add(time.Duration(timeIndex) * time.Minute),
	}
}
