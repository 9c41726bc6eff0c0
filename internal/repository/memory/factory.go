package memory

import repo "github.com/baharkarakas/library-admin/internal/repository"

func NewRepositories() repo.Repositories {
	authors, genres, publishers := NewAuthors(), NewGenres(), NewPublishers()
	users := NewUsers()
	return repo.Repositories{
		Books:      NewBooks(authors, genres, publishers),
		Authors:    authors,
		Genres:     genres,
		Publishers: publishers,
		Users:      users,
		AuditLogs:  NewAuditLogs().WithUsers(users),
	}
}
