package audit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/baharkarakas/library-admin/internal/audit/mocks"
	"github.com/baharkarakas/library-admin/internal/metrics"
	"github.com/baharkarakas/library-admin/internal/models"
)

type RecorderSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	store    *mocks.MockStore
	recorder *Recorder
}

func TestRecorderSuite(t *testing.T) {
	suite.Run(t, new(RecorderSuite))
}

func (s *RecorderSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = mocks.NewMockStore(s.ctrl)
	s.recorder = NewRecorder(s.store, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func (s *RecorderSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *RecorderSuite) TestRecordPersistsOnce() {
	entry := models.AuditLog{
		ActorID:    ID(1),
		EntityName: "authors",
		EntityID:   ID(7),
		Action:     models.ActionCreate,
		StateAfter: map[string]any{"name": "Italo Calvino"},
	}
	before := testutil.ToFloat64(metrics.AuditEntriesTotal.WithLabelValues("authors", "CREATE", "success"))

	s.store.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, l models.AuditLog) (models.AuditLog, error) {
			s.Equal(models.OutcomeSuccess, l.Outcome)
			s.Equal(int64(1), *l.ActorID)
			s.Equal("Italo Calvino", l.StateAfter["name"])
			l.ID = 1
			l.OccurredAt = time.Now()
			return l, nil
		}).
		Times(1)

	s.recorder.Record(context.Background(), entry)

	after := testutil.ToFloat64(metrics.AuditEntriesTotal.WithLabelValues("authors", "CREATE", "success"))
	s.Equal(before+1, after)
}

func (s *RecorderSuite) TestRecordSwallowsStoreError() {
	before := testutil.ToFloat64(metrics.AuditWriteFailures.WithLabelValues("books", "UPDATE"))
	s.store.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(models.AuditLog{}, errors.New("audit_logs: connection refused")).
		Times(1)

	s.NotPanics(func() {
		s.recorder.Record(context.Background(), models.AuditLog{EntityName: "books", Action: models.ActionUpdate})
	})
	s.Equal(before+1, testutil.ToFloat64(metrics.AuditWriteFailures.WithLabelValues("books", "UPDATE")))
}

func (s *RecorderSuite) TestRecordSwallowsPanic() {
	s.store.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, models.AuditLog) (models.AuditLog, error) {
			panic("driver exploded")
		}).
		Times(1)

	s.NotPanics(func() {
		s.recorder.Record(context.Background(), models.AuditLog{EntityName: "users", Action: models.ActionDelete})
	})
}

func (s *RecorderSuite) TestSnapshotHidesPasswordHash() {
	u := models.User{Email: "admin@example.com", PasswordHash: "$2a$10$secret", Role: models.RoleAdmin}
	u.ID = 3
	u.Status = true

	snap := Snapshot(u)

	s.Equal("admin@example.com", snap["email"])
	s.Equal(float64(3), snap["id"])
	s.Equal(true, snap["status"])
	s.NotContains(snap, "PasswordHash")
	s.NotContains(snap, "passwordHash")
}

func (s *RecorderSuite) TestSnapshotDropsBookRelations() {
	b := models.Book{Title: "Pedro Páramo", AuthorID: 4, Author: &models.Author{Name: "Juan Rulfo"}}

	snap := Snapshot(b)

	s.Equal(float64(4), snap["authorId"])
	s.NotContains(snap, "author")
	s.NotContains(snap, "genre")
}
