package model

import "time"

type RequestRecord struct {
	ID     string     `json:"id"`
	URL    string     `json:"url"`
	Status string     `json:"status"`
	Start  time.Time  `json:"start"`
	Finish *time.Time `json:"finish"`
}

type LogRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Data      string    `json:"data"`
}

type BlueprintRecord struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Handle identifies one appended record. It is the only way to mutate a
// record after it has been stored.
type Handle struct {
	List  string `json:"list"`
	Index int    `json:"index"`
}

// Patches are shallow merges: zero-valued fields are left untouched.
type RequestPatch struct {
	Status string
	Finish *time.Time
}

type LogPatch struct {
	Data string
}

type BlueprintPatch struct {
	Data any
}
