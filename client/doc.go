package client

// Package client provides a small REST client and ready-made model sources
// backed by it. Collection turns a paginated REST endpoint into a
// model.Source without further glue code.
