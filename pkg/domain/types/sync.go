package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

type (
	ResourceName string
	SyncID       string
	RequestID    string
)

// StagingDir is the directory under the content root used by the staged apply mode. It is not
// available as a resource name.
const StagingDir = ".docmirror-staging"

func NewSyncID() SyncID {
	return SyncID(uuid.NewString())
}

func NewRequestID() RequestID {
	return RequestID(uuid.NewString())
}

func (x ResourceName) String() string { return string(x) }
func (x SyncID) String() string       { return string(x) }
func (x RequestID) String() string    { return string(x) }

// SyncState is a state of one sync pass
type SyncState string

const (
	SyncStateValidating SyncState = "validating"
	SyncStateListing    SyncState = "listing"
	SyncStateProcessing SyncState = "processing"
	SyncStateDone       SyncState = "done"
	SyncStateFailed     SyncState = "failed"
)

// ApplyMode decides how downloaded files reach the mirror directory
type ApplyMode string

const (
	// ApplyModeDirect writes files into the mirror in place. A failed pass leaves files written before the failure.
	ApplyModeDirect ApplyMode = "direct"
	// ApplyModeStaged writes files into a staging directory and swaps it into place only after the pass succeeded.
	ApplyModeStaged ApplyMode = "staged"
)

func (x ApplyMode) Validate() error {
	switch x {
	case ApplyModeDirect, ApplyModeStaged:
		return nil
	default:
		return goerr.Wrap(ErrInvalidOption, "invalid apply mode, should be 'direct' or 'staged'", goerr.V("mode", x))
	}
}
