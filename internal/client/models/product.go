package models

import "fmt"

type Product struct {
	ID    string  `json:"_id,omitempty"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock float64 `json:"stock"`
}

// DefaultProducts is what a fresh local products collection contains.
func DefaultProducts() []Product {
	return []Product{
		{ID: "1", Name: "Product 1", Price: 10},
		{ID: "2", Name: "Product 2", Price: 20},
		{ID: "3", Name: "Product 3", Price: 30},
	}
}

func (p Product) GetID() string { return p.ID }

func (p Product) Validate() error {
	f := fieldErrors{}
	f.required("name", p.Name)
	if f.number("price", p.Price) && p.Price <= 0 {
		f["price"] = "must be positive"
	}
	if f.number("stock", p.Stock) && p.Stock < 0 {
		f["stock"] = "must not be negative"
	}
	return f.err("product.validate")
}

func (p Product) String() string {
	return fmt.Sprintf("%s  %-20s price=%-10.2f stock=%g", p.ID, p.Name, p.Price, p.Stock)
}
