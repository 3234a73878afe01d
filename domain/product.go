package domain

// Product is a catalog row owned by the POS backend. The analytics service
// only ever reads snapshots of it.
type Product struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Category  string `db:"category" json:"category"`
	Price     int64  `db:"price" json:"price"`
	Stock     int64  `db:"stock" json:"stock"`
	CreatedAt string `db:"createdAt" json:"createdAt"`
	UpdatedAt string `db:"updatedAt" json:"updatedAt"`
}
