package domain

// ShopAddress is the physical address of a vendor's shop.
type ShopAddress struct {
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
}

// Complete reports whether every mandatory address field is set.
func (a ShopAddress) Complete() bool {
	return a.AddressLine1 != "" && a.City != "" && a.State != "" && a.ZipCode != ""
}

// VendorUser is the account embedded in a vendor record.
type VendorUser struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Vendor is a service provider profile attached to a Vendor-role user.
type Vendor struct {
	ID               string        `json:"_id"`
	User             *VendorUser   `json:"user,omitempty"`
	ServicesProvided []string      `json:"servicesProvided"`
	ShopAddress      []ShopAddress `json:"shopAddress"`
}
