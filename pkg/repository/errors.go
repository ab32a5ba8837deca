package repository

import "github.com/m-mizutani/goerr/v2"

var (
	ErrInvalidInput = goerr.New("invalid input")
	// ErrDuplicated is returned when a record with the same ID is already stored
	ErrDuplicated = goerr.New("duplicated record")
)
