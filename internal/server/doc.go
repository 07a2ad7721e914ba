// Package server runs the HTTP API and the background job workers as one
// unit, including signal handling and graceful shutdown.
package server
