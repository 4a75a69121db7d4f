package models

// Product represents a product in the catalogue.
// Rows are hard-deleted, so there is no gorm.Model embedding.
type Product struct {
	ID          uint    `gorm:"primaryKey;autoIncrement"`
	Name        string  `gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string  `gorm:"type:varchar(200);not null"`
	Price       float64 `gorm:"not null"`
	Qty         int     `gorm:"not null"`
}

// TableName returns the table name for Product.
func (Product) TableName() string {
	return "products"
}

// Apply overwrites all business fields of p with the values from input.
func (p *Product) Apply(input ProductInput) {
	p.Name = input.Name
	p.Description = input.Description
	p.Price = input.Price
	p.Qty = input.Qty
}

// ProductInput is the validated field set accepted by create and replace.
type ProductInput struct {
	Name        string  `validate:"required,max=100"`
	Description string  `validate:"max=200"`
	Price       float64 `validate:"-"`
	Qty         int     `validate:"-"`
}

// ProductRecord is the wire representation of a product.
type ProductRecord struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Qty         int     `json:"qty"`
}

// ToRecord converts a stored product to its wire representation.
func ToRecord(p Product) ProductRecord {
	return ProductRecord{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Qty:         p.Qty,
	}
}

// ToRecords converts a list of products, preserving order.
func ToRecords(products []Product) []ProductRecord {
	records := make([]ProductRecord, 0, len(products))
	for _, p := range products {
		records = append(records, ToRecord(p))
	}
	return records
}

// Schema lists the models the database bootstrap creates tables for.
func Schema() []any {
	return []any{&Product{}}
}
