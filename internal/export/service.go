package export

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/baharkarakas/library-admin/internal/apperr"
	"github.com/baharkarakas/library-admin/internal/audit"
	"github.com/baharkarakas/library-admin/internal/metrics"
	"github.com/baharkarakas/library-admin/internal/models"
)

type Request struct {
	Type    string         `json:"type"`
	Filters map[string]any `json:"filters"`
}

type Result struct {
	Data     []byte
	Filename string
}

type Service struct {
	table  Table
	audit  *audit.Recorder
	tracer trace.Tracer
	now    func() time.Time
}

func NewService(table Table, rec *audit.Recorder) *Service {
	return &Service{
		table:  table,
		audit:  rec,
		tracer: otel.Tracer("github.com/baharkarakas/library-admin/internal/export"),
		now:    time.Now,
	}
}

// Export runs the query registered for req.Type with all=true and encodes the result
// as CSV. Unknown types fail before anything is audited; every other attempt leaves
// one EXPORT entry.
func (s *Service) Export(ctx context.Context, req Request, actor *int64) (Result, error) {
	query, ok := s.table.Resolve(req.Type)
	if !ok {
		return Result{}, apperr.BadRequest("invalid export type: " + req.Type)
	}

	ctx, span := s.tracer.Start(ctx, "export.Run", trace.WithAttributes(attribute.String("export.type", req.Type)))
	defer span.End()

	res, n, err := s.run(ctx, query, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		metrics.ExportsTotal.WithLabelValues(req.Type, string(models.OutcomeError)).Inc()
		s.audit.Record(ctx, models.AuditLog{
			ActorID:    actor,
			EntityName: req.Type,
			Action:     models.ActionExport,
			StateAfter: map[string]any{"filters": req.Filters},
			Outcome:    models.OutcomeError,
			Note:       fmt.Sprintf("export of %s failed: %v", req.Type, err),
		})
		kind := apperr.KindOf(err)
		return Result{}, apperr.New(kind, fmt.Sprintf("could not export %s: %s", req.Type, causeText(err)), err)
	}

	span.SetAttributes(attribute.Int("export.rows", n))
	metrics.ExportsTotal.WithLabelValues(req.Type, string(models.OutcomeSuccess)).Inc()
	s.audit.Record(ctx, models.AuditLog{
		ActorID:    actor,
		EntityName: req.Type,
		Action:     models.ActionExport,
		StateAfter: map[string]any{"filters": req.Filters},
		Outcome:    models.OutcomeSuccess,
		Note:       fmt.Sprintf("exported %d %s rows with filters %s", n, req.Type, filtersText(req.Filters)),
	})
	return res, nil
}

func (s *Service) run(ctx context.Context, query QueryFunc, req Request) (Result, int, error) {
	data, err := query(ctx, req.Filters)
	if err != nil {
		return Result{}, 0, err
	}
	rows := make([]Row, 0, len(data))
	for _, v := range data {
		r, err := ToRow(v)
		if err != nil {
			return Result{}, 0, err
		}
		rows = append(rows, r)
	}
	b, err := Encode(rows)
	if err != nil {
		return Result{}, 0, err
	}
	return Result{Data: b, Filename: Filename(req.Type, s.now())}, len(rows), nil
}

// causeText prefers the caller-facing message of a classified error.
func causeText(err error) string {
	if apperr.KindOf(err) != apperr.KindInternal {
		return apperr.Message(err)
	}
	return err.Error()
}

func filtersText(f map[string]any) string {
	if len(f) == 0 {
		return "{}"
	}
	b, err := json.Marshal(f)
	if err != nil {
		return fmt.Sprint(f)
	}
	return string(b)
}
