package product

// Seed is the default catalog used when the remote inventory service has no
// products yet. Mirrors the storefront's launch assortment.
func Seed() []Product {
	return []Product{
		{
			Code:          "P001",
			Name:          "Manzana Orgánica Certificada",
			Description:   "Manzanas cultivadas sin pesticidas ni fertilizantes químicos. Certificación orgánica SAG.",
			Category:      "Frutas Orgánicas",
			UnitPrice:     1500,
			UnitLabel:     "kg",
			StockQuantity: 50,
			ImageRef:      "/images/manzana.png",
			ExpiryDate:    "2024-12-15",
			SupplierName:  "EcoFrutas Orgánicas Chile",
			SupplierCode:  101,
		},
		{
			Code:          "P002",
			Name:          "Palta Hass Biodinámica",
			Description:   "Paltas cultivadas con agricultura biodinámica, sin químicos sintéticos. Certificación Demeter.",
			Category:      "Frutas Orgánicas",
			UnitPrice:     2500,
			UnitLabel:     "kg",
			StockQuantity: 45,
			ImageRef:      "/images/palta.png",
			ExpiryDate:    "2024-09-20",
			SupplierName:  "Biodinámica Verde Ltda",
			SupplierCode:  102,
		},
		{
			Code:          "P003",
			Name:          "Espinaca Baby Hidropónica Ecológica",
			Description:   "Espinacas baby cultivadas en sistema hidropónico cerrado, sin pesticidas. Agua reciclada 100%.",
			Category:      "Verduras Ecológicas",
			UnitPrice:     1800,
			UnitLabel:     "bolsa 250g",
			StockQuantity: 35,
			ImageRef:      "/images/espinaca.png",
			ExpiryDate:    "2024-09-15",
			SupplierName:  "Hidroponia Sustentable",
			SupplierCode:  103,
		},
	}
}
