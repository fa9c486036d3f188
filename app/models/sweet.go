package models

// Sweet is one catalogue item. Quantity is the current stock and must never
// go negative; the purchase path enforces that inside a transaction.
type Sweet struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Name     string  `gorm:"size:255;not null;index" json:"name"`
	Category string  `gorm:"size:255" json:"category"`
	Price    float64 `gorm:"not null;default:0" json:"price"`
	Quantity int     `gorm:"not null;default:0" json:"quantity"`
}
