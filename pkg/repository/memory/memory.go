package memory

import (
	"github.com/m-mizutani/docmirror/pkg/domain/interfaces"
	"github.com/m-mizutani/docmirror/pkg/domain/model"
)

// New creates a new in-memory repository
func New() interfaces.SyncHistory {
	return &syncHistory{
		records: make(map[string][]*model.SyncRecord),
	}
}
