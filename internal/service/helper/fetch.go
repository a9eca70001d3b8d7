package helper

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"mockui/internal/domain"
	"mockui/internal/model"
)

// Callback receives the outcome of a simulated fetch exactly once: a defined
// payload and nil error on success, nil payload and a *RequestFailedError on
// failure.
type Callback func(payload any, err error)

func (s *Service) Fetch(rawURL string, callback Callback) model.Handle {
	return s.FetchContext(context.Background(), rawURL, callback)
}

// FetchContext is Fetch with a parent for the fetch span. The context does not
// cancel the request; a scheduled fetch always completes.
func (s *Service) FetchContext(ctx context.Context, rawURL string, callback Callback) model.Handle {
	_, span := s.tracer.Start(ctx, "helper.fetch", trace.WithAttributes(
		attribute.String("mockui.url", rawURL),
	))

	handle := s.store.AppendRequest(model.RequestRecord{
		ID:     uuid.NewString(),
		URL:    rawURL,
		Status: domain.RequestStatusInProgress,
		Start:  s.now(),
	})

	delay := s.delay()
	span.SetAttributes(attribute.Int64("mockui.delay_ms", delay.Milliseconds()))
	s.metrics.FetchScheduled(delay)

	s.inflight.Add(1)
	s.scheduler.AfterFunc(delay, func() {
		defer s.inflight.Done()
		defer span.End()
		defer func() {
			if r := recover(); r != nil {
				s.log.Error("fetch callback panicked", zap.String("url", rawURL), zap.Any("panic", r))
			}
		}()
		s.complete(span, handle, rawURL, callback)
	})
	return handle
}

func (s *Service) delay() time.Duration {
	spread := int64(s.spread / time.Millisecond)
	if spread <= 0 {
		return s.minDelay
	}
	return s.minDelay + time.Duration(s.random.Int63n(spread))*time.Millisecond
}

func (s *Service) complete(span trace.Span, handle model.Handle, rawURL string, callback Callback) {
	rate, err := domain.FailRate(rawURL)
	if err != nil {
		s.finish(span, handle, nil, &domain.RequestFailedError{URL: rawURL, Err: err}, callback)
		return
	}
	if domain.ShouldFail(s.random.Float64(), rate) {
		s.finish(span, handle, nil, &domain.RequestFailedError{URL: rawURL}, callback)
		return
	}
	s.finish(span, handle, s.fixtures.Lookup(rawURL), nil, callback)
}

func (s *Service) finish(span trace.Span, handle model.Handle, payload any, err error, callback Callback) {
	status := domain.RequestStatusSuccess
	if err != nil {
		status = domain.RequestStatusError
	}
	finished := s.now()
	if updateErr := s.store.UpdateRequest(handle, model.RequestPatch{Status: status, Finish: &finished}); updateErr != nil {
		s.log.Error("request record update failed",
			zap.String("list", handle.List),
			zap.Int("index", handle.Index),
			zap.Error(updateErr),
		)
	}
	s.metrics.FetchCompleted(status)

	span.SetAttributes(attribute.String("mockui.status", status))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "simulated request failed")
		s.log.Debug("simulated request failed", zap.Error(err))
	}

	if callback != nil {
		callback(payload, err)
	}
}
