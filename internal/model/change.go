package model

// Change is delivered to subscribers after every append or update. Records
// holds a copy of the whole list, typed as []RequestRecord, []LogRecord or
// []BlueprintRecord depending on List.
type Change struct {
	Seq     uint64 `json:"seq"`
	Event   string `json:"event"`
	List    string `json:"list"`
	Records any    `json:"records"`
}

type ChangeHandler func(Change)
