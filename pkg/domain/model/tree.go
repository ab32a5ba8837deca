package model

import "github.com/m-mizutani/docmirror/pkg/domain/types"

// TreeEntry is one row of a recursive tree listing. Path is relative to the repository root and
// separated by forward slashes.
type TreeEntry struct {
	Path string
	Kind types.EntryKind
}

func (x *TreeEntry) IsFile() bool {
	return x.Kind == types.EntryKindFile
}

func (x *TreeEntry) IsDirectory() bool {
	return x.Kind == types.EntryKindDirectory
}

// Tree is a recursive listing of a branch in the order returned by the remote
type Tree struct {
	Entries   []*TreeEntry
	Truncated bool
}
