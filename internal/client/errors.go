package client

import "errors"

var (
	ErrNoAdapter         = errors.New("server adapter is not initialized")
	ErrWaitTimeout       = errors.New("video did not reach a terminal status in time")
	ErrVideoFailed       = errors.New("video processing failed")
	ErrOutputDirRequired = errors.New("output directory is required to download frames")
)
