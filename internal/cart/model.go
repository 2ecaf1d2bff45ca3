package cart

import "ecomarket/internal/product"

// Line is one product's requested quantity in the active cart. Display
// fields are snapshotted from the catalog at add time and refreshed by
// reconciliation, so an admin edit propagates to an open cart.
type Line struct {
	ProductCode string  `json:"codigo"`
	Quantity    int     `json:"cantidad"`
	UnitPrice   float64 `json:"precio"`
	Name        string  `json:"nombre"`
	ImageRef    string  `json:"imagen"`
	UnitLabel   string  `json:"unidadMedida"`
}

func newLine(p product.Product, quantity int) Line {
	return Line{
		ProductCode: p.Code,
		Quantity:    quantity,
		UnitPrice:   p.UnitPrice,
		Name:        p.Name,
		ImageRef:    p.ImageRef,
		UnitLabel:   p.UnitLabel,
	}
}

// refreshSnapshot updates the display fields from a refreshed catalog
// product without touching the quantity.
func (l Line) refreshSnapshot(p product.Product) Line {
	l.UnitPrice = p.UnitPrice
	l.Name = p.Name
	l.ImageRef = p.ImageRef
	l.UnitLabel = p.UnitLabel
	return l
}
