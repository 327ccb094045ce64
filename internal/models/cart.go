// internal/models/cart.go
package models

// CartItem is one (user, product) line of a cart. Qty is always positive;
// removing a product deletes the row.
type CartItem struct {
	UserID    int64 `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	ProductID int64 `json:"product_id" gorm:"primaryKey;autoIncrement:false"`
	Qty       int   `json:"qty" gorm:"not null;check:qty > 0"`
	Timestamps

	Product Product `json:"-" gorm:"foreignKey:ProductID"`
}

// CartLine is a cart row joined with current catalog data.
type CartLine struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Qty       int    `json:"qty"`
}

func (l CartLine) Subtotal() int64 {
	return l.Price * int64(l.Qty)
}

type Cart struct {
	UserID int64      `json:"user_id"`
	Lines  []CartLine `json:"lines"`
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func (c *Cart) Total() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.Subtotal()
	}
	return total
}
