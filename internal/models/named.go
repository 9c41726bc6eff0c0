package models

// Named is implemented by a pointer to a model whose only own column is a name.
type Named[T any] interface {
	Entity[T]
	NameRef() *string
}
