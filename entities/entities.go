package entities

import "time"

type Product struct {
	Id                 int      `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description,omitempty"`
	Price              float64  `json:"price"`
	Rating             float64  `json:"rating"`
	DiscountPercentage float64  `json:"discountPercentage,omitempty"`
	Category           string   `json:"category"`
	Tags               []string `json:"tags,omitempty"`
	Thumbnail          string   `json:"thumbnail,omitempty"`
	Images             []string `json:"images,omitempty"`
	Stock              int      `json:"stock"`
}

// Image returns the display image of a product: the thumbnail when set,
// otherwise the first gallery image.
func (p Product) Image() string {
	if p.Thumbnail != "" {
		return p.Thumbnail
	}
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}

// CartLine snapshots title/price/image at the moment of add-to-cart.
// Later catalog edits do not touch existing lines.
type CartLine struct {
	Id       int     `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Image    string  `json:"image,omitempty"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

type CartTotals struct {
	ItemsCount int     `json:"itemsCount"`
	Subtotal   float64 `json:"subtotal"`
	Discount   float64 `json:"discount"`
	Delivery   float64 `json:"delivery"`
	GrandTotal float64 `json:"grandTotal"`
}

type CartResponse struct {
	Items  []CartLine `json:"items"`
	Totals CartTotals `json:"totals"`
}

type WishlistEntry struct {
	Id      int       `json:"id"`
	Title   string    `json:"title"`
	Price   float64   `json:"price"`
	Image   string    `json:"image,omitempty"`
	Rating  float64   `json:"rating"`
	AddedAt time.Time `json:"addedAt"`
}

type WishlistResponse struct {
	Items []WishlistEntry `json:"items"`
	Count int             `json:"count"`
}

type FilterState struct {
	Search   string
	SortBy   string
	Order    string
	Tag      string
	Category string
}

type User struct {
	Id           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Password     string    `json:"password,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	Avatar       string    `json:"avatar,omitempty"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	OrderHistory []Order   `json:"orderHistory"`
}

// Public strips the stored password hash before the record leaves the server.
func (u User) Public() User {
	u.Password = ""
	return u
}

type ShippingAddress struct {
	Address string `json:"address"`
	City    string `json:"city"`
	ZipCode string `json:"zipCode"`
}

// Order is immutable once created. It is prepended to the owning user's
// order history and never edited or removed.
type Order struct {
	Id              int64           `json:"id"`
	Date            time.Time       `json:"date"`
	Items           []CartLine      `json:"items"`
	Totals          CartTotals      `json:"totals"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
}

type OrderConfirmation struct {
	OrderId    int64   `json:"orderId"`
	Total      float64 `json:"total"`
	ItemsCount int     `json:"itemsCount"`
}

type RecentlyViewedEntry struct {
	Id       int       `json:"id"`
	Title    string    `json:"title"`
	Price    float64   `json:"price"`
	Image    string    `json:"image,omitempty"`
	Rating   float64   `json:"rating"`
	ViewedAt time.Time `json:"viewedAt"`
}
