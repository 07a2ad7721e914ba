// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the `dvd` command-line client.
//
// Every invocation loads the client configuration, exchanges the API key for
// a bearer token and runs one command against the server through an
// [adapter.ServerAdapter].
package client
