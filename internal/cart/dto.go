package cart

// QuoteRequest carries the customer's measurements for one product. This is
// the wire form of the engine's entry point.
type QuoteRequest struct {
	ProductID int64   `json:"product_id" validate:"required,gt=0"`
	WidthCm   float64 `json:"width_cm" validate:"required,gt=0"`
	HeightCm  float64 `json:"height_cm" validate:"required,gt=0"`
	Quantity  int     `json:"quantity" validate:"gte=1"`
}
