package domain

import (
	"encoding/json"
	"fmt"
)

// Stream names
const (
	StreamEnquiryCreated = "stream:enquiry:created"
)

// PlaceSummary - краткое описание места из формы заявки
type PlaceSummary struct {
	Label   string   `json:"label"`
	City    string   `json:"city"`
	State   string   `json:"state"`
	Country string   `json:"country"`
	PlaceID string   `json:"place_id"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

// EnquiryCreatedEvent is published after an enquiry is stored; the notification
// worker turns it into an e-mail.
type EnquiryCreatedEvent struct {
	Enquiry    Enquiry       `json:"enquiry"`
	From       *PlaceSummary `json:"from,omitempty"`
	To         *PlaceSummary `json:"to,omitempty"`
	VolumeM3   *float64      `json:"volume_m3,omitempty"`
	TruckClass string        `json:"truck_class,omitempty"`
}

// EnquiryDelivery - событие заявки, полученное из очереди.
// Err заполнен, когда тело сообщения не разобрано: такое сообщение подтверждают и пропускают.
type EnquiryDelivery struct {
	ID    string
	Event EnquiryCreatedEvent
	Err   error
}

// DecodeEnquiryDelivery разбирает тело сообщения очереди в событие заявки
func DecodeEnquiryDelivery(id string, data []byte) EnquiryDelivery {
	d := EnquiryDelivery{ID: id}
	if err := json.Unmarshal(data, &d.Event); err != nil {
		d.Err = fmt.Errorf("decode enquiry event %s: %w", id, err)
	}
	return d
}
