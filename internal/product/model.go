package product

import "encoding/json"

// Product is one catalog entry as served by the remote inventory API.
// Wire names follow the service's Spanish field naming.
type Product struct {
	Code          string  `json:"codigo"`
	Name          string  `json:"nombre"`
	Description   string  `json:"descripcion"`
	Category      string  `json:"categoria"`
	UnitPrice     float64 `json:"precio"`
	UnitLabel     string  `json:"unidadMedida"`
	StockQuantity int     `json:"cantidad"`
	ImageRef      string  `json:"imagen"`
	ExpiryDate    string  `json:"fechaVencimiento"`
	SupplierName  string  `json:"nombreProveedor"`
	SupplierCode  int     `json:"codigoProveedor"`
}

// supplier is the nested form some deployments of the inventory service
// return instead of the flat nombreProveedor/codigoProveedor pair.
type supplier struct {
	Name string `json:"nombreProveedor"`
	Code int    `json:"codigoProveedor"`
}

// UnmarshalJSON accepts both wire shapes for the supplier: flat fields on
// the product object, or a nested "proveedor" object. The nested form wins
// when both are present since it is what the service actually persisted.
func (p *Product) UnmarshalJSON(data []byte) error {
	type alias Product
	aux := struct {
		*alias
		Supplier *supplier `json:"proveedor"`
	}{alias: (*alias)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Supplier != nil {
		p.SupplierName = aux.Supplier.Name
		p.SupplierCode = aux.Supplier.Code
	}
	return nil
}

// Validate reports whether the product satisfies the catalog constraints.
func (p Product) Validate() error {
	if p.Code == "" {
		return ErrMissingCode
	}
	if p.UnitPrice <= 0 {
		return ErrInvalidPrice
	}
	if p.StockQuantity < 0 {
		return ErrNegativeStock
	}
	return nil
}
