package models

type Genre struct {
	Record
	Name string `json:"name"`
}

func (g *Genre) NameRef() *string { return &g.Name }
