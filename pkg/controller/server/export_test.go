package server

var ErrorStatus = errorStatus
