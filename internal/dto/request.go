package dto

type AddressInput struct {
	Line1   string `json:"line1"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
	Country string `json:"country,omitempty"`
}

type NextOfKinInput struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

type CreateBookingRequest struct {
	CustomerName  string          `json:"customer_name" validate:"required"`
	CustomerEmail string          `json:"customer_email" validate:"omitempty,email"`
	CustomerPhone string          `json:"customer_phone"`
	PropertyID    uint            `json:"property_id" validate:"required"`
	PropertyName  string          `json:"property_name"`
	StartDate     string          `json:"start_date" validate:"required"`
	EndDate       string          `json:"end_date" validate:"required"`
	Amount        int64           `json:"amount" validate:"gte=0"`
	DepositAmount int64           `json:"deposit_amount" validate:"gte=0"`
	Notes         string          `json:"notes"`
	Address       *AddressInput   `json:"address"`
	NextOfKin     *NextOfKinInput `json:"next_of_kin"`
	Status        string          `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
}

type UpdateBookingRequest struct {
	CustomerName  *string         `json:"customer_name" validate:"omitempty,min=1"`
	CustomerEmail *string         `json:"customer_email" validate:"omitempty,email"`
	CustomerPhone *string         `json:"customer_phone"`
	PropertyID    *uint           `json:"property_id"`
	PropertyName  *string         `json:"property_name"`
	StartDate     *string         `json:"start_date"`
	EndDate       *string         `json:"end_date"`
	Amount        *int64          `json:"amount" validate:"omitempty,gte=0"`
	DepositAmount *int64          `json:"deposit_amount" validate:"omitempty,gte=0"`
	Notes         *string         `json:"notes"`
	Address       *AddressInput   `json:"address"`
	NextOfKin     *NextOfKinInput `json:"next_of_kin"`
	Status        *string         `json:"status" validate:"omitempty,oneof=pending confirmed cancelled completed"`
}

type CreatePropertyRequest struct {
	Name         string `json:"name" validate:"required"`
	Type         string `json:"type"`
	Floor        string `json:"floor"`
	Address      string `json:"address"`
	DailyPrice   int64  `json:"daily_price" validate:"gte=0"`
	MonthlyPrice int64  `json:"monthly_price" validate:"gte=0"`
	Available    *bool  `json:"available"`
}
