// internal/models/order.go
package models

type Order struct {
	ID       int64       `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID   int64       `json:"user_id" gorm:"not null;index"`
	FullName string      `json:"full_name" gorm:"not null"`
	Phone    string      `json:"phone" gorm:"not null"`
	Address  string      `json:"address" gorm:"not null"`
	Status   OrderStatus `json:"status" gorm:"type:varchar(20);not null;default:'NEW';index"`
	Timestamps

	// Relationships
	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (o *Order) Total() int64 {
	var total int64
	for _, it := range o.Items {
		total += it.Subtotal()
	}
	return total
}

// OrderItem snapshots name and price at checkout so later catalog edits do
// not change historical orders.
type OrderItem struct {
	ID        int64  `json:"-" gorm:"primaryKey;autoIncrement"`
	OrderID   int64  `json:"order_id" gorm:"not null;index"`
	ProductID int64  `json:"product_id" gorm:"not null"`
	Name      string `json:"name" gorm:"not null"`
	Price     int64  `json:"price" gorm:"not null"`
	Qty       int    `json:"qty" gorm:"not null"`
}

func (i OrderItem) Subtotal() int64 {
	return i.Price * int64(i.Qty)
}
