package services

import (
	"context"
	"strings"
	"time"

	"github.com/baharkarakas/library-admin/internal/apperr"
	"github.com/baharkarakas/library-admin/internal/models"
	repo "github.com/baharkarakas/library-admin/internal/repository"
)

type LogFilter struct {
	UserID    *int64 `json:"userId,omitempty"`
	TableName string `json:"tableName,omitempty"`
	Action    string `json:"action,omitempty"`
	FromDate  string `json:"fromDate,omitempty"`
	ToDate    string `json:"toDate,omitempty"`
	Page      int    `json:"page,omitempty"`
	Limit     int    `json:"limit,omitempty"`
	All       bool   `json:"all,omitempty"`
}

// toRepo validates the filter. A bare date in ToDate covers the whole day.
func (f LogFilter) toRepo() (repo.LogFilter, error) {
	out := repo.LogFilter{
		ActorID:    f.UserID,
		EntityName: strings.TrimSpace(f.TableName),
		Page:       f.Page,
		Limit:      f.Limit,
		All:        f.All,
	}
	if f.Action != "" {
		a := models.Action(strings.ToUpper(f.Action))
		if !a.Valid() {
			return out, apperr.BadRequest("invalid action " + f.Action)
		}
		out.Action = a
	}
	if f.FromDate != "" {
		t, _, err := parseDate(f.FromDate)
		if err != nil {
			return out, apperr.BadRequest("invalid fromDate")
		}
		out.From = &t
	}
	if f.ToDate != "" {
		t, dateOnly, err := parseDate(f.ToDate)
		if err != nil {
			return out, apperr.BadRequest("invalid toDate")
		}
		if dateOnly {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		out.To = &t
	}
	return out, nil
}

func parseDate(s string) (time.Time, bool, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	return t, false, err
}

// LogService reads the audit trail. Writing goes through audit.Recorder only.
type LogService struct {
	r repo.AuditLogs
}

func NewLogService(r repo.AuditLogs) *LogService { return &LogService{r: r} }

func (s *LogService) List(ctx context.Context, f LogFilter) (Page[models.AuditLog], error) {
	rf, err := f.toRepo()
	if err != nil {
		return Page[models.AuditLog]{}, err
	}
	rows, total, err := s.r.List(ctx, rf)
	if err != nil {
		return Page[models.AuditLog]{}, apperr.Internal("could not list logs", err)
	}
	if rows == nil {
		rows = []models.AuditLog{}
	}
	return Page[models.AuditLog]{Data: rows, Total: total}, nil
}
