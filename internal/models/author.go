package models

type Author struct {
	Record
	Name string `json:"name"`
}

func (a *Author) NameRef() *string { return &a.Name }
