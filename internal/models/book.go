package models

// DefaultBookImage is stored when a book is saved without a cover.
const DefaultBookImage = "/uploads/default.jpg"

type Book struct {
	Record
	Title       string `json:"title"`
	AuthorID    int64  `json:"authorId"`
	GenreID     int64  `json:"genreId"`
	PublisherID int64  `json:"publisherId"`
	Description string `json:"description"`
	ISBN        string `json:"isbn"`
	Price       int64  `json:"price"`
	Stock       int64  `json:"stock"`
	PublishedAt string `json:"publishedAt"` // YYYY-MM-DD
	ImageURL    string `json:"imageUrl"`
	CreatedBy   *int64 `json:"createdBy,omitempty"`
	UpdatedBy   *int64 `json:"updatedBy,omitempty"`

	// Read-side relations, filled by the stores on Get and List.
	Author    *Author    `json:"author,omitempty"`
	Genre     *Genre     `json:"genre,omitempty"`
	Publisher *Publisher `json:"publisher,omitempty"`
}

// Detached returns b without its loaded relations.
func (b Book) Detached() Book {
	b.Author, b.Genre, b.Publisher = nil, nil, nil
	return b
}

// AuditState keeps relations out of audit snapshots; only the foreign keys are recorded.
func (b Book) AuditState() any { return b.Detached() }
