// Package models holds the wire-level types shared by the client and the
// server. Field names follow the JSON contract of the records API.
package models

import (
	"strings"
	"time"

	"fintrack/internal/common"
)

// Record is a single financial entry owned by a user.
//
// ID is assigned by the server; a record that has not been persisted yet
// carries an empty ID and is serialized without the _id field.
type Record struct {
	ID            string    `json:"_id,omitempty"`
	UserID        string    `json:"userId"`
	Date          time.Time `json:"date"`
	Description   string    `json:"description"`
	Amount        float64   `json:"amount"`
	Category      string    `json:"category"`
	PaymentMethod string    `json:"paymentMethod"`
}

// Validate checks the fields a draft must carry before it is sent to the
// server. The server performs the same checks on its side.
func (r Record) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return common.ErrorNoUserID
	}
	if strings.TrimSpace(r.Description) == "" {
		return common.ErrorEmptyDescription
	}
	return nil
}
