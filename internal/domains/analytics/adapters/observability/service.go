package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/laundromart/admin-api/internal/domains/analytics/ports"
)

const tracerName = "github.com/laundromart/admin-api/internal/domains/analytics/adapters/observability/service"

// Service decorates the analytics service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core analytics service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) Overview(ctx context.Context) (*ports.Overview, error) {
	ctx, span := s.tracer.Start(ctx, "AnalyticsService.Overview")
	defer span.End()

	result, err := s.inner.Overview(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to build dashboard overview")
	}
	s.metrics.recordOverview(ctx)
	span.SetAttributes(
		attribute.Int64("dashboard.total_orders", result.TotalOrders),
		attribute.Int64("dashboard.active_orders", result.ActiveOrders),
	)
	s.logInfo(ctx, "dashboard overview built",
		slog.Int64("total_orders", result.TotalOrders),
		slog.Int64("total_laundries", result.TotalLaundries))
	return result, nil
}

func (s *Service) Performance(ctx context.Context, laundryID string) (*ports.Performance, error) {
	ctx, span := s.tracer.Start(ctx, "AnalyticsService.Performance",
		trace.WithAttributes(attribute.String("laundry.id", laundryID)))
	defer span.End()

	result, err := s.inner.Performance(ctx, laundryID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to build performance report", slog.String("laundry.id", laundryID))
	}
	s.metrics.recordPerformance(ctx)
	span.SetAttributes(attribute.Int("performance.months", len(result.MonthlyData)))
	s.logInfo(ctx, "performance report built",
		slog.String("laundry.id", laundryID),
		slog.Int64("total_orders", result.Overview.TotalOrders))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	overviews    metric.Int64Counter
	performances metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	overviews, _ := m.Int64Counter("analytics.service.overviews", metric.WithDescription("Number of dashboard overviews built"))
	performances, _ := m.Int64Counter("analytics.service.performance_reports", metric.WithDescription("Number of laundry performance reports built"))
	return serviceMetrics{overviews: overviews, performances: performances}
}

func (m serviceMetrics) recordOverview(ctx context.Context) {
	if m.overviews != nil {
		m.overviews.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordPerformance(ctx context.Context) {
	if m.performances != nil {
		m.performances.Add(ctx, 1)
	}
}

var _ ports.Service = (*Service)(nil)
