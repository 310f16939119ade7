package models

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null;default:user"    json:"role"`
}

type Product struct {
	ID          uint    `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name        string  `gorm:"not null"                  json:"name"`
	Description string  `json:"description"`
	Price       float64 `gorm:"not null"                  json:"price"`
	Category    string  `gorm:"index"                     json:"category"`
	Image       string  `json:"image"`
}

// CartItem holds one (user, product) row of the cart ledger. The composite
// unique index backs the merge-on-repeat-add invariant: a user never owns
// two rows for the same product.
type CartItem struct {
	ID        uint `gorm:"primaryKey;autoIncrement"                         json:"id"`
	UserID    uint `gorm:"uniqueIndex:idx_cart_user_product;index;not null" json:"user_id"`
	ProductID uint `gorm:"uniqueIndex:idx_cart_user_product;not null"       json:"product_id"`
	Quantity  uint `gorm:"default:1;check:quantity>0"                       json:"quantity"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// FavoriteItem has no quantity: the favorites ledger is a set, duplicates
// are rejected rather than merged.
type FavoriteItem struct {
	ID        uint `gorm:"primaryKey;autoIncrement"                        json:"id"`
	UserID    uint `gorm:"uniqueIndex:idx_fav_user_product;index;not null" json:"user_id"`
	ProductID uint `gorm:"uniqueIndex:idx_fav_user_product;not null"       json:"product_id"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (FavoriteItem) TableName() string {
	return "favorite_items"
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	UserID    uint   `gorm:"index;not null"  json:"user_id"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
}
