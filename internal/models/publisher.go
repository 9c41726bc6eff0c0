package models

type Publisher struct {
	Record
	Name string `json:"name"`
}

func (p *Publisher) NameRef() *string { return &p.Name }
