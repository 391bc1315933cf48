package models

// Product is a marketplace item.
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Brand       string  `json:"brand"`
	Rating      float64 `json:"rating"`
	InStock     bool    `json:"inStock"`
}

// LineItem is a product in the cart together with its quantity (always >= 1).
type LineItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal returns price × quantity for the line.
func (l LineItem) Subtotal() float64 {
	return l.Product.Price * float64(l.Quantity)
}

// Doctor is an entry of the static doctor catalog.
type Doctor struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	Specialty      string   `json:"specialty"`
	AvailableTimes []string `json:"availableTimes"`
}

// AppointmentType is a bookable kind of visit.
type AppointmentType struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Duration string `json:"duration"`
	Price    string `json:"price"`
}
