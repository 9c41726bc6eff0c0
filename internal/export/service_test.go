package export

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/baharkarakas/library-admin/internal/apperr"
	"github.com/baharkarakas/library-admin/internal/audit"
	"github.com/baharkarakas/library-admin/internal/audit/mocks"
	"github.com/baharkarakas/library-admin/internal/models"
	"github.com/baharkarakas/library-admin/internal/repository/memory"
	"github.com/baharkarakas/library-admin/internal/services"
)

var filenameRe = regexp.MustCompile(`^books-\d{4}-\d{2}-\d{2}T\d{2}-\d{2}-\d{2}-\d{3}Z\.csv$`)

type ExportSuite struct {
	suite.Suite
	ctx   context.Context
	logs  *memory.AuditLogs
	books   *services.BookService
	authors *services.AuthorService
	table   Table
	svc     *Service
	actor *int64
}

func TestExportSuite(t *testing.T) {
	suite.Run(t, new(ExportSuite))
}

func (s *ExportSuite) SetupTest() {
	s.ctx = context.Background()
	s.logs = memory.NewAuditLogs()
	rec := audit.NewRecorder(s.logs, audit.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	repos := memory.NewRepositories()

	s.books = services.NewBookService(repos.Books, rec)
	s.authors = services.NewAuthorService(repos.Authors, rec)
	s.table = NewTable(Sources{
		Books:      s.books,
		Authors:    s.authors,
		Genres:     services.NewGenreService(repos.Genres, rec),
		Publishers: services.NewPublisherService(repos.Publishers, rec),
		Users:      services.NewUserService(repos.Users, rec),
		Logs:       services.NewLogService(s.logs),
	})
	s.svc = NewService(s.table, rec)
	s.actor = audit.ID(1)
}

func (s *ExportSuite) addBook(title, isbn string) {
	_, err := s.books.Create(s.ctx, services.BookInput{
		Title: title, AuthorID: 1, GenreID: 1, PublisherID: 1,
		Description: "d", ISBN: isbn, Price: 100, Stock: 1, PublishedAt: "2001-01-01",
	}, s.actor)
	s.Require().NoError(err)
}

func (s *ExportSuite) exportEntries() []models.AuditLog {
	var out []models.AuditLog
	for _, l := range s.logs.All() {
		if l.Action == models.ActionExport {
			out = append(out, l)
		}
	}
	return out
}

func (s *ExportSuite) TestExportBooks() {
	s.addBook("Pedro Páramo", "9780802133908")
	s.addBook("El llano en llamas", "9780292701328")

	res, err := s.svc.Export(s.ctx, Request{Type: "books", Filters: map[string]any{"status": true}}, s.actor)
	s.Require().NoError(err)
	s.Regexp(filenameRe, res.Filename)

	lines := strings.Split(strings.TrimSpace(string(res.Data)), "\n")
	s.Require().Len(lines, 3)
	header := strings.Split(lines[0], ";")
	for _, col := range []string{"id", "status", "title", "isbn", "imageUrl", "createdAt"} {
		s.Contains(header, col)
	}
	s.Contains(string(res.Data), "Pedro Páramo")

	entries := s.exportEntries()
	s.Require().Len(entries, 1)
	s.Equal(models.OutcomeSuccess, entries[0].Outcome)
	s.Equal("books", entries[0].EntityName)
	s.Contains(entries[0].Note, `"status":true`)
}

func (s *ExportSuite) TestExportIgnoresPaging() {
	for i, isbn := range []string{"1000000000001", "1000000000002", "1000000000003"} {
		s.addBook("Book "+string(rune('A'+i)), isbn)
	}
	res, err := s.svc.Export(s.ctx, Request{Type: "books", Filters: map[string]any{"limit": 1}}, s.actor)
	s.Require().NoError(err)
	s.Len(strings.Split(strings.TrimSpace(string(res.Data)), "\n"), 4)
}

func (s *ExportSuite) TestExportEmptyIsError() {
	_, err := s.svc.Export(s.ctx, Request{Type: "books", Filters: map[string]any{}}, s.actor)
	s.Require().Error(err)
	s.ErrorIs(err, ErrEmpty)
	s.Contains(err.Error(), "books")

	entries := s.exportEntries()
	s.Require().Len(entries, 1)
	s.Equal(models.OutcomeError, entries[0].Outcome)
	s.NotEmpty(entries[0].Note)
}

func (s *ExportSuite) TestExportUnknownType() {
	_, err := s.svc.Export(s.ctx, Request{Type: "not-a-type"}, s.actor)
	s.Require().Error(err)
	s.Equal(apperr.KindBadRequest, apperr.KindOf(err))
	s.Empty(s.logs.All())
}

func (s *ExportSuite) TestExportQueryFailure() {
	boom := errors.New("query timed out")
	table := Table{KindBooks: func(context.Context, map[string]any) ([]any, error) { return nil, boom }}
	rec := audit.NewRecorder(s.logs, audit.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	svc := NewService(table, rec)

	_, err := svc.Export(s.ctx, Request{Type: "books"}, s.actor)
	s.ErrorIs(err, boom)
	s.Equal("could not export books: query timed out", apperr.Message(err))

	entries := s.exportEntries()
	s.Require().Len(entries, 1)
	s.Equal(models.OutcomeError, entries[0].Outcome)
	s.Contains(entries[0].Note, "query timed out")
}

func (s *ExportSuite) TestExportLogs() {
	s.addBook("Pedro Páramo", "9780802133908")

	res, err := s.svc.Export(s.ctx, Request{Type: "logs", Filters: map[string]any{"tableName": "books"}}, s.actor)
	s.Require().NoError(err)
	header := strings.Split(strings.SplitN(string(res.Data), "\n", 2)[0], ";")
	s.Equal([]string{"id", "userId", "tableName", "recordId", "action", "dataBefore", "dataAfter", "status", "description", "createdAt", "updatedAt"}, header)
}

func (s *ExportSuite) TestExportBooksCarriesAuthor() {
	a, err := s.authors.Create(s.ctx, services.NameInput{Name: "Juan Rulfo"}, s.actor)
	s.Require().NoError(err)
	s.addBook("Pedro Páramo", "9780802133908")
	s.Require().Equal(int64(1), a.ID)

	res, err := s.svc.Export(s.ctx, Request{Type: "books", Filters: map[string]any{}}, s.actor)
	s.Require().NoError(err)
	header := strings.Split(strings.SplitN(string(res.Data), "\n", 2)[0], ";")
	s.Contains(header, "author")
	s.Contains(string(res.Data), "Juan Rulfo")
}

func (s *ExportSuite) TestAuditFailureLeavesExportIntact() {
	s.addBook("Pedro Páramo", "9780802133908")

	ctrl := gomock.NewController(s.T())
	store := mocks.NewMockStore(ctrl)
	store.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(models.AuditLog{}, errors.New("audit store down")).
		Times(2)
	failing := NewService(s.table, audit.NewRecorder(store, audit.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))))

	req := Request{Type: "books", Filters: map[string]any{"status": true}}
	want, err := s.svc.Export(s.ctx, req, s.actor)
	s.Require().NoError(err)
	got, err := failing.Export(s.ctx, req, s.actor)
	s.Require().NoError(err)
	s.Equal(want.Data, got.Data)
	s.Regexp(filenameRe, got.Filename)

	_, wantErr := s.svc.Export(s.ctx, Request{Type: "books", Filters: map[string]any{"isbn": "0000000000000"}}, s.actor)
	_, gotErr := failing.Export(s.ctx, Request{Type: "books", Filters: map[string]any{"isbn": "0000000000000"}}, s.actor)
	s.Equal(wantErr.Error(), gotErr.Error())
	s.ErrorIs(gotErr, ErrEmpty)

	_, gotErr = failing.Export(s.ctx, Request{Type: "not-a-type"}, s.actor)
	s.Equal(apperr.KindBadRequest, apperr.KindOf(gotErr))
}
