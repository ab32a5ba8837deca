package bq

var IsNotFound = isNotFound
