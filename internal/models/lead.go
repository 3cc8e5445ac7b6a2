package models

import "fmt"

// InquiryLead is a general contact request about a vehicle. Leads are not
// persisted; they are logged and optionally forwarded as events.
type InquiryLead struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,min=10"`
	Vehicle string `json:"vehicle" validate:"required"`
}

// PrebookingLead is a reservation request for a vehicle pickup slot.
type PrebookingLead struct {
	InGameName   string `json:"inGameName" validate:"required,min=2"`
	DiscordID    string `json:"discordId" validate:"required,min=2"`
	InGameNumber string `json:"inGameNumber"`
	PickupTime   string `json:"pickupTime" validate:"required,pickupslot"`
	Vehicle      string `json:"vehicle" validate:"required"`
}

// LeadResult is returned to the submitter after a lead is captured.
type LeadResult struct {
	Reference string `json:"reference"`
	Message   string `json:"message"`
}

// pickupSlots holds the 48 half-hour pickup labels covering a full day,
// "00:00" through "23:30".
var pickupSlots = buildPickupSlots()

func buildPickupSlots() []string {
	slots := make([]string, 0, 48)
	for h := 0; h < 24; h++ {
		slots = append(slots, fmt.Sprintf("%02d:00", h), fmt.Sprintf("%02d:30", h))
	}
	return slots
}

// PickupSlots returns a copy of the enumerated pickup time labels.
func PickupSlots() []string {
	out := make([]string, len(pickupSlots))
	copy(out, pickupSlots)
	return out
}

// IsPickupSlot reports whether s is one of the enumerated pickup labels.
func IsPickupSlot(s string) bool {
	for _, slot := range pickupSlots {
		if s == slot {
			return true
		}
	}
	return false
}
