package telemetry

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/photobook/photobook/pkg/photobook"
)

const tracerName = "github.com/photobook/photobook/pkg/photobook"

// tracedService wraps a photobook.Service with a span per operation
type tracedService struct {
	inner  photobook.Service
	tracer trace.Tracer
}

// NewService decorates svc so every operation runs inside a span carrying
// the photo id and outcome.
func NewService(svc photobook.Service) photobook.Service {
	return &tracedService{
		inner:  svc,
		tracer: otel.Tracer(tracerName),
	}
}

func (s *tracedService) Upload(ctx context.Context, req photobook.UploadRequest) (*photobook.Photo, error) {
	ctx, span := s.tracer.Start(ctx, "photobook.Upload",
		trace.WithAttributes(attribute.String("photo.file_name", req.FileName)))
	defer span.End()

	photo, err := s.inner.Upload(ctx, req)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.String("photo.id", photo.ID.String()))
	return photo, nil
}

func (s *tracedService) Get(ctx context.Context, id uuid.UUID) (*photobook.Photo, error) {
	ctx, span := s.tracer.Start(ctx, "photobook.Get",
		trace.WithAttributes(attribute.String("photo.id", id.String())))
	defer span.End()

	photo, err := s.inner.Get(ctx, id)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	return photo, nil
}

func (s *tracedService) Download(ctx context.Context, id uuid.UUID) (*photobook.DownloadResult, error) {
	ctx, span := s.tracer.Start(ctx, "photobook.Download",
		trace.WithAttributes(attribute.String("photo.id", id.String())))
	defer span.End()

	result, err := s.inner.Download(ctx, id)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	return result, nil
}

func (s *tracedService) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := s.tracer.Start(ctx, "photobook.Delete",
		trace.WithAttributes(attribute.String("photo.id", id.String())))
	defer span.End()

	if err := s.inner.Delete(ctx, id); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

func (s *tracedService) List(ctx context.Context) ([]*photobook.Photo, error) {
	ctx, span := s.tracer.Start(ctx, "photobook.List")
	defer span.End()

	photos, err := s.inner.List(ctx)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("photo.count", len(photos)))
	return photos, nil
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
