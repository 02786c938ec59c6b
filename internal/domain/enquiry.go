package domain

import "time"

// Enquiry - заявка с публичной формы (только вставка)
type Enquiry struct {
	ID            int64     `json:"id" db:"id" csv:"id"`
	StartLocation string    `json:"start_location" db:"start_location" csv:"start_location"`
	EndLocation   string    `json:"end_location" db:"end_location" csv:"end_location"`
	Email         string    `json:"email" db:"email" csv:"email"`
	Phone         string    `json:"phone" db:"phone" csv:"phone"`
	Height        string    `json:"height" db:"height" csv:"height"`
	Length        string    `json:"length" db:"length" csv:"length"`
	Width         string    `json:"width" db:"width" csv:"width"`
	Weight        string    `json:"weight" db:"weight" csv:"weight"`
	CreatedAt     time.Time `json:"created_at" db:"created_at" csv:"created_at"`
}

// EnquiryFilter narrows the admin list. Empty fields are ignored; Date limits
// results to one calendar day (UTC).
type EnquiryFilter struct {
	Email string
	Start string
	End   string
	Date  *time.Time
}
