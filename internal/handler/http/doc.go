// Package http implements the REST API of the video ingestion server.
//
// It wires chi routes to the service layer. Request tracing, access
// logging, compression and authentication run as middleware before a
// request reaches a handler.
package http
