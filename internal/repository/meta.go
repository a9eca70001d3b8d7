package repository

import "mockui/internal/model"

// ChangeSource publishes change:<list> notifications.
type ChangeSource interface {
	Subscribe(list string, handler model.ChangeHandler) (func(), error)
}

type MetaStore interface {
	ChangeSource

	AppendRequest(record model.RequestRecord) model.Handle
	AppendLog(record model.LogRecord) model.Handle
	AppendBlueprint(record model.BlueprintRecord) model.Handle

	UpdateRequest(handle model.Handle, patch model.RequestPatch) error
	UpdateLog(handle model.Handle, patch model.LogPatch) error
	UpdateBlueprint(handle model.Handle, patch model.BlueprintPatch) error

	Requests() []model.RequestRecord
	Logs() []model.LogRecord
	Blueprint() []model.BlueprintRecord
	Snapshot(list string) (any, error)
	Current(list string) (model.Change, error)
}
