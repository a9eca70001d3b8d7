package memory

import (
	"mockui/internal/domain"
	"mockui/internal/model"
)

func (s *Store) AppendRequest(record model.RequestRecord) model.Handle {
	s.mu.Lock()
	s.requests = append(s.requests, record)
	handle := model.Handle{List: domain.ListRequests, Index: len(s.requests) - 1}
	s.queueLocked(domain.ListRequests)
	s.mu.Unlock()

	s.flush()
	return handle
}

func (s *Store) AppendLog(record model.LogRecord) model.Handle {
	s.mu.Lock()
	s.logs = append(s.logs, record)
	handle := model.Handle{List: domain.ListLogs, Index: len(s.logs) - 1}
	s.queueLocked(domain.ListLogs)
	s.mu.Unlock()

	s.flush()
	return handle
}

func (s *Store) AppendBlueprint(record model.BlueprintRecord) model.Handle {
	s.mu.Lock()
	s.blueprint = append(s.blueprint, record)
	handle := model.Handle{List: domain.ListBlueprint, Index: len(s.blueprint) - 1}
	s.queueLocked(domain.ListBlueprint)
	s.mu.Unlock()

	s.flush()
	return handle
}

func (s *Store) UpdateRequest(handle model.Handle, patch model.RequestPatch) error {
	s.mu.Lock()
	if err := checkHandle(handle, domain.ListRequests, len(s.requests)); err != nil {
		s.mu.Unlock()
		return err
	}
	record := &s.requests[handle.Index]
	if patch.Status != "" {
		record.Status = patch.Status
	}
	if patch.Finish != nil {
		finish := *patch.Finish
		record.Finish = &finish
	}
	s.queueLocked(domain.ListRequests)
	s.mu.Unlock()

	s.flush()
	return nil
}

func (s *Store) UpdateLog(handle model.Handle, patch model.LogPatch) error {
	s.mu.Lock()
	if err := checkHandle(handle, domain.ListLogs, len(s.logs)); err != nil {
		s.mu.Unlock()
		return err
	}
	if patch.Data != "" {
		s.logs[handle.Index].Data = patch.Data
	}
	s.queueLocked(domain.ListLogs)
	s.mu.Unlock()

	s.flush()
	return nil
}

func (s *Store) UpdateBlueprint(handle model.Handle, patch model.BlueprintPatch) error {
	s.mu.Lock()
	if err := checkHandle(handle, domain.ListBlueprint, len(s.blueprint)); err != nil {
		s.mu.Unlock()
		return err
	}
	if patch.Data != nil {
		s.blueprint[handle.Index].Data = patch.Data
	}
	s.queueLocked(domain.ListBlueprint)
	s.mu.Unlock()

	s.flush()
	return nil
}

func (s *Store) Requests() []model.RequestRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.RequestRecord(nil), s.requests...)
}

func (s *Store) Logs() []model.LogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.LogRecord(nil), s.logs...)
}

func (s *Store) Blueprint() []model.BlueprintRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.BlueprintRecord(nil), s.blueprint...)
}

func (s *Store) Snapshot(list string) (any, error) {
	if !domain.IsValidList(list) {
		return nil, domain.ErrUnknownList
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(list), nil
}

// Current returns the list together with the sequence number of the latest
// change made to the store. Deliveries with a Seq at or below it are already
// reflected in Records.
func (s *Store) Current(list string) (model.Change, error) {
	if !domain.IsValidList(list) {
		return model.Change{}, domain.ErrUnknownList
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.Change{
		Seq:     s.seq,
		Event:   domain.ChangeEvent(list),
		List:    list,
		Records: s.snapshotLocked(list),
	}, nil
}

func checkHandle(handle model.Handle, list string, size int) error {
	if handle.List != list {
		return domain.ErrHandleMismatch
	}
	if handle.Index < 0 || handle.Index >= size {
		return domain.ErrUnknownHandle
	}
	return nil
}
