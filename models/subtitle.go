package models

import "time"

// Cue is one numbered block of an SRT subtitle file.
type Cue struct {
	Index int           `json:"index"`
	Start time.Duration `json:"start"`
	End   time.Duration `json:"end"`
	Text  string        `json:"text"`
}
