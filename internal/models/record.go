package models

import "time"

// Record holds the columns every catalog table shares. Status false means the row
// was soft deleted.
type Record struct {
	ID        int64     `json:"id"`
	Status    bool      `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *Record) Rec() *Record { return r }

// Entity is implemented by a pointer to any model that embeds Record.
type Entity[T any] interface {
	*T
	Rec() *Record
}
