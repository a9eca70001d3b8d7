package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"mockui/internal/domain"
	"mockui/internal/model"
)

func TestStoreAppend(t *testing.T) {
	t.Run("emits full list synchronously", func(t *testing.T) {
		store := New(zap.NewNop())
		var got []model.Change
		unsubscribe, err := store.Subscribe(domain.ListLogs, func(c model.Change) {
			got = append(got, c)
		})
		require.NoError(t, err)
		defer unsubscribe()

		first := store.AppendLog(model.LogRecord{Data: "one"})
		require.Len(t, got, 1)
		second := store.AppendLog(model.LogRecord{Data: "two"})
		require.Len(t, got, 2)

		require.Equal(t, model.Handle{List: domain.ListLogs, Index: 0}, first)
		require.Equal(t, model.Handle{List: domain.ListLogs, Index: 1}, second)

		require.Equal(t, "change:logs", got[1].Event)
		require.Equal(t, domain.ListLogs, got[1].List)
		records := got[1].Records.([]model.LogRecord)
		require.Len(t, records, 2)
		require.Equal(t, "one", records[0].Data)
		require.Equal(t, "two", records[1].Data)
		require.Greater(t, got[1].Seq, got[0].Seq)
	})

	t.Run("only notifies the changed list", func(t *testing.T) {
		store := New(zap.NewNop())
		calls := 0
		_, err := store.Subscribe(domain.ListRequests, func(model.Change) { calls++ })
		require.NoError(t, err)

		store.AppendBlueprint(model.BlueprintRecord{Type: domain.BlockTags, Data: "x"})
		store.AppendLog(model.LogRecord{Data: "x"})
		require.Zero(t, calls)
	})

	t.Run("snapshots are copies", func(t *testing.T) {
		store := New(zap.NewNop())
		var snapshot []model.LogRecord
		_, err := store.Subscribe(domain.ListLogs, func(c model.Change) {
			snapshot = c.Records.([]model.LogRecord)
		})
		require.NoError(t, err)

		store.AppendLog(model.LogRecord{Data: "original"})
		snapshot[0].Data = "tampered"
		require.Equal(t, "original", store.Logs()[0].Data)
	})
}

func TestStoreUpdate(t *testing.T) {
	t.Run("merges patch and emits", func(t *testing.T) {
		store := New(zap.NewNop())
		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		handle := store.AppendRequest(model.RequestRecord{
			URL:    "api/user",
			Status: domain.RequestStatusInProgress,
			Start:  start,
		})

		var got []model.Change
		_, err := store.Subscribe(domain.ListRequests, func(c model.Change) {
			got = append(got, c)
		})
		require.NoError(t, err)

		finish := start.Add(time.Second)
		require.NoError(t, store.UpdateRequest(handle, model.RequestPatch{
			Status: domain.RequestStatusSuccess,
			Finish: &finish,
		}))
		require.Len(t, got, 1)

		records := got[0].Records.([]model.RequestRecord)
		require.Len(t, records, 1)
		require.Equal(t, "api/user", records[0].URL)
		require.Equal(t, start, records[0].Start)
		require.Equal(t, domain.RequestStatusSuccess, records[0].Status)
		require.NotNil(t, records[0].Finish)
		require.Equal(t, finish, *records[0].Finish)
	})

	t.Run("empty patch keeps fields", func(t *testing.T) {
		store := New(zap.NewNop())
		handle := store.AppendRequest(model.RequestRecord{URL: "api/user", Status: domain.RequestStatusInProgress})
		require.NoError(t, store.UpdateRequest(handle, model.RequestPatch{}))

		records := store.Requests()
		require.Equal(t, domain.RequestStatusInProgress, records[0].Status)
		require.Nil(t, records[0].Finish)
	})

	t.Run("log and blueprint patches", func(t *testing.T) {
		store := New(zap.NewNop())
		logHandle := store.AppendLog(model.LogRecord{Data: "before"})
		bpHandle := store.AppendBlueprint(model.BlueprintRecord{Type: domain.BlockAvatar, Data: "a"})

		require.NoError(t, store.UpdateLog(logHandle, model.LogPatch{Data: "after"}))
		require.NoError(t, store.UpdateBlueprint(bpHandle, model.BlueprintPatch{Data: "b"}))
		require.Equal(t, "after", store.Logs()[0].Data)
		require.Equal(t, "b", store.Blueprint()[0].Data)
		require.Equal(t, domain.BlockAvatar, store.Blueprint()[0].Type)
	})

	t.Run("rejects foreign handle", func(t *testing.T) {
		store := New(zap.NewNop())
		handle := store.AppendLog(model.LogRecord{Data: "x"})
		err := store.UpdateRequest(handle, model.RequestPatch{Status: domain.RequestStatusError})
		require.ErrorIs(t, err, domain.ErrHandleMismatch)
	})

	t.Run("rejects unknown index", func(t *testing.T) {
		store := New(zap.NewNop())
		calls := 0
		_, err := store.Subscribe(domain.ListRequests, func(model.Change) { calls++ })
		require.NoError(t, err)

		err = store.UpdateRequest(model.Handle{List: domain.ListRequests, Index: 3}, model.RequestPatch{})
		require.ErrorIs(t, err, domain.ErrUnknownHandle)
		require.Zero(t, calls)
	})
}

func TestStoreSubscribe(t *testing.T) {
	t.Run("unknown list", func(t *testing.T) {
		store := New(zap.NewNop())
		_, err := store.Subscribe("users", func(model.Change) {})
		require.ErrorIs(t, err, domain.ErrUnknownList)

		_, err = store.Snapshot("users")
		require.ErrorIs(t, err, domain.ErrUnknownList)
	})

	t.Run("unsubscribe stops delivery", func(t *testing.T) {
		store := New(zap.NewNop())
		calls := 0
		unsubscribe, err := store.Subscribe(domain.ListBlueprint, func(model.Change) { calls++ })
		require.NoError(t, err)

		store.AppendBlueprint(model.BlueprintRecord{Type: domain.BlockTags, Data: 1})
		unsubscribe()
		unsubscribe()
		store.AppendBlueprint(model.BlueprintRecord{Type: domain.BlockTags, Data: 2})
		require.Equal(t, 1, calls)
	})

	t.Run("delivery follows subscription order", func(t *testing.T) {
		store := New(zap.NewNop())
		var order []string
		for _, name := range []string{"first", "second", "third"} {
			_, err := store.Subscribe(domain.ListRequests, func(model.Change) { order = append(order, name) })
			require.NoError(t, err)
		}

		store.AppendRequest(model.RequestRecord{URL: "api/user", Status: domain.RequestStatusInProgress})
		require.Equal(t, []string{"first", "second", "third"}, order)
	})

	t.Run("handler may write back", func(t *testing.T) {
		store := New(zap.NewNop())
		var logSeen []uint64
		nestedDeliveredEarly := false
		_, err := store.Subscribe(domain.ListRequests, func(model.Change) {
			store.AppendLog(model.LogRecord{Data: "request changed"})
			// The nested change waits until this one has reached everyone.
			nestedDeliveredEarly = len(logSeen) > 0
		})
		require.NoError(t, err)
		var requestSeen []uint64
		_, err = store.Subscribe(domain.ListRequests, func(c model.Change) {
			requestSeen = append(requestSeen, c.Seq)
		})
		require.NoError(t, err)
		_, err = store.Subscribe(domain.ListLogs, func(c model.Change) {
			logSeen = append(logSeen, c.Seq)
		})
		require.NoError(t, err)

		done := make(chan struct{})
		go func() {
			store.AppendRequest(model.RequestRecord{URL: "api/user", Status: domain.RequestStatusInProgress})
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("append blocked on a handler that writes back")
		}

		require.False(t, nestedDeliveredEarly)
		require.Equal(t, []uint64{1}, requestSeen)
		require.Equal(t, []uint64{2}, logSeen)
		require.Len(t, store.Logs(), 1)
	})

	t.Run("current carries the latest sequence", func(t *testing.T) {
		store := New(zap.NewNop())
		store.AppendLog(model.LogRecord{Data: "a"})
		store.AppendBlueprint(model.BlueprintRecord{Type: domain.BlockTags, Data: "x"})

		current, err := store.Current(domain.ListLogs)
		require.NoError(t, err)
		require.Equal(t, uint64(2), current.Seq)
		require.Equal(t, "change:logs", current.Event)
		require.Len(t, current.Records.([]model.LogRecord), 1)

		_, err = store.Current("users")
		require.ErrorIs(t, err, domain.ErrUnknownList)
	})

	t.Run("panicking handler does not break others", func(t *testing.T) {
		store := New(zap.NewNop())
		calls := 0
		_, err := store.Subscribe(domain.ListLogs, func(model.Change) { panic("boom") })
		require.NoError(t, err)
		_, err = store.Subscribe(domain.ListLogs, func(model.Change) { calls++ })
		require.NoError(t, err)

		require.NotPanics(t, func() {
			store.AppendLog(model.LogRecord{Data: "x"})
		})
		require.Equal(t, 1, calls)
		require.Len(t, store.Logs(), 1)
	})

	t.Run("snapshot by name", func(t *testing.T) {
		store := New(zap.NewNop())
		store.AppendBlueprint(model.BlueprintRecord{Type: domain.BlockArticle, Data: "a"})

		snapshot, err := store.Snapshot(domain.ListBlueprint)
		require.NoError(t, err)
		require.Len(t, snapshot.([]model.BlueprintRecord), 1)

		empty, err := store.Snapshot(domain.ListRequests)
		require.NoError(t, err)
		require.NotNil(t, empty)
		require.Empty(t, empty.([]model.RequestRecord))
	})
}
