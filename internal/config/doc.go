// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. .env file
//  2. Environment variables
//  3. Command-line flags
//  4. JSON config file
//
// The hosting platform's un-prefixed variables (PORT, API_KEY,
// VIDEO_DATABASE_FOLDER, YOUTUBE_COOKIES) fill whatever is still empty,
// then defaults are applied and the result is validated.
//
// The main entry points are [GetStructuredConfig] for the server and
// [GetClientConfig] for the CLI.
package config
