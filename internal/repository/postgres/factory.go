package postgres

import (
	repo "github.com/baharkarakas/library-admin/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositories(pool *pgxpool.Pool) repo.Repositories {
	return repo.Repositories{
		Books:      NewBooks(pool),
		Authors:    NewAuthors(pool),
		Genres:     NewGenres(pool),
		Publishers: NewPublishers(pool),
		Users:      NewUsers(pool),
		AuditLogs:  NewAuditLogs(pool),
	}
}
