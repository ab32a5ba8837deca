package types

import (
	"log/slog"
	"strings"
)

type (
	// RepositoryName is a GitHub repository identifier in "owner/name" form
	RepositoryName string
	BranchName     string
	GitHubToken    string
	GitHubAPIURL   string
)

// Split returns owner and name parts. ok is false if the identifier is not "owner/name".
func (x RepositoryName) Split() (owner, name string, ok bool) {
	parts := strings.Split(string(x), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func (x RepositoryName) String() string { return string(x) }
func (x BranchName) String() string     { return string(x) }

func (x GitHubToken) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubToken) String() string {
	return "***********"
}

// EntryKind is a kind of remote tree entry. GitHub calls them "blob" and "tree".
type EntryKind string

const (
	EntryKindFile      EntryKind = "blob"
	EntryKindDirectory EntryKind = "tree"
)
