package dto

type CreateSupplierRequest struct {
	Name  string  `json:"name"  validate:"required,min=2,max=120"`
	Email *string `json:"email" validate:"omitempty,email"`
	Phone *string `json:"phone"`
	TaxID *string `json:"tax_id"`
	Notes *string `json:"notes"`
}

type UpdateSupplierRequest struct {
	Name  *string `json:"name"  validate:"omitempty,min=2,max=120"`
	Email *string `json:"email" validate:"omitempty,email"`
	Phone *string `json:"phone"`
	TaxID *string `json:"tax_id"`
	Notes *string `json:"notes"`
}

type SupplierResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	TaxID     *string `json:"tax_id"`
	Notes     *string `json:"notes"`
	CreatedAt string  `json:"created_at"`
}
