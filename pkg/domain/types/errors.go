package types

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrUnknownResource is returned when a resource name is not registered
	ErrUnknownResource = goerr.New("unknown resource")
	// ErrIncompleteResource is returned when a registered resource lacks token, repository or branch
	ErrIncompleteResource = goerr.New("incomplete resource")
	// ErrRemoteUnavailable is returned when the tree listing call fails
	ErrRemoteUnavailable = goerr.New("remote unavailable")
	// ErrBlobDownloadFailed is returned when a single blob call fails or has no content
	ErrBlobDownloadFailed = goerr.New("blob download failed")
	// ErrFilesystem is returned when a directory or file can not be written
	ErrFilesystem = goerr.New("filesystem error")

	ErrInvalidOption    = goerr.New("invalid option")
	ErrValidationFailed = goerr.New("validation failed")
)
