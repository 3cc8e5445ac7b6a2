package services

import (
	"context"
	"fmt"
	"log"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"lmcmotors/internal/models"
	"lmcmotors/pkg/discord"
	"lmcmotors/pkg/rabbitmq"
)

// prebookingColor is the embed accent used for pre-booking notifications.
const prebookingColor = 5814783

// LeadService validates and records inquiry and pre-booking submissions.
// Leads are not persisted: a captured lead is logged, published as a
// best-effort queue event, and (for pre-bookings) forwarded to the
// notification webhook. Validation failures never apply any side effect.
type LeadService struct {
	validate *validator.Validate
	notifier *discord.Notifier
	mqClient *rabbitmq.Client // may be nil when messaging is disabled
}

// NewLeadService creates a new LeadService. notifier must be non-nil;
// mqClient may be nil.
func NewLeadService(notifier *discord.Notifier, mqClient *rabbitmq.Client) *LeadService {
	validate := validator.New()

	// Key validation errors by the JSON field names the forms submit.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterValidation("pickupslot", func(fl validator.FieldLevel) bool {
		return models.IsPickupSlot(fl.Field().String())
	})

	return &LeadService{
		validate: validate,
		notifier: notifier,
		mqClient: mqClient,
	}
}

// fieldErrors maps a validation failure to field-name → first-violation
// message, mirroring the public forms' copy.
func fieldErrors(err error) map[string]string {
	messages := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		messages["_"] = err.Error()
		return messages
	}
	for _, e := range validationErrors {
		if _, seen := messages[e.Field()]; seen {
			continue
		}
		messages[e.Field()] = leadFieldMessage(e)
	}
	return messages
}

func leadFieldMessage(e validator.FieldError) string {
	switch e.Field() {
	case "name":
		return "Name must be at least 2 characters."
	case "email":
		return "Please enter a valid email address."
	case "message":
		return "Message must be at least 10 characters."
	case "inGameName":
		return "In-game name must be at least 2 characters."
	case "discordId":
		return "Discord ID must be at least 2 characters."
	case "pickupTime":
		return "Please select a pickup time."
	case "vehicle":
		return "A vehicle must be specified."
	default:
		return fmt.Sprintf("Field '%s' failed on the '%s' rule", e.Field(), e.Tag())
	}
}

// publishLeadEvent forwards the captured lead to the lead queue. Delivery is
// best-effort and never affects the submission result.
func (s *LeadService) publishLeadEvent(kind, reference, vehicle string) {
	if s.mqClient == nil {
		log.Println("RabbitMQ client is not initialized. Skipping lead event publication.")
		return
	}
	event := map[string]interface{}{
		"kind":       kind,
		"reference":  reference,
		"vehicle":    vehicle,
		"capturedAt": time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.mqClient.PublishLeadCaptured(event); err != nil {
		log.Printf("Warning: Failed to publish %s lead event %s: %v", kind, reference, err)
	}
}

// SubmitInquiry validates and records a general inquiry. On validation
// failure it returns the field-error map and no result; no side effect is
// applied. Inquiries trigger no external notification.
func (s *LeadService) SubmitInquiry(lead models.InquiryLead) (*models.LeadResult, map[string]string, error) {
	if err := s.validate.Struct(lead); err != nil {
		return nil, fieldErrors(err), nil
	}

	reference := uuid.New().String()
	log.Printf("New inquiry received (ref %s): name=%q email=%q vehicle=%q", reference, lead.Name, lead.Email, lead.Vehicle)

	s.publishLeadEvent("inquiry", reference, lead.Vehicle)

	return &models.LeadResult{
		Reference: reference,
		Message:   "Success! Your inquiry has been sent.",
	}, nil, nil
}

// SubmitPrebooking validates and records a pre-booking, then attempts a
// best-effort webhook notification. Webhook failures (network error, non-2xx
// response, missing configuration) are logged and never surface to the
// caller: the lead is captured regardless.
func (s *LeadService) SubmitPrebooking(ctx context.Context, lead models.PrebookingLead) (*models.LeadResult, map[string]string, error) {
	if err := s.validate.Struct(lead); err != nil {
		return nil, fieldErrors(err), nil
	}

	reference := uuid.New().String()
	log.Printf("New pre-booking received (ref %s): inGameName=%q discordId=%q vehicle=%q pickup=%s",
		reference, lead.InGameName, lead.DiscordID, lead.Vehicle, lead.PickupTime)

	s.publishLeadEvent("prebooking", reference, lead.Vehicle)

	if err := s.notifier.Send(ctx, prebookingMessage(lead)); err != nil {
		log.Printf("Warning: Failed to send pre-booking notification for %s: %v", reference, err)
	}

	return &models.LeadResult{
		Reference: reference,
		Message:   fmt.Sprintf("Success! You've pre-booked the %s. We will contact you shortly.", lead.Vehicle),
	}, nil, nil
}

// prebookingMessage builds the webhook embed for a captured pre-booking.
func prebookingMessage(lead models.PrebookingLead) discord.Message {
	inGameNumber := lead.InGameNumber
	if inGameNumber == "" {
		inGameNumber = "Not Provided"
	}

	return discord.Message{
		Embeds: []discord.Embed{{
			Title: "New Vehicle Pre-booking! 🚗",
			Color: prebookingColor,
			Fields: []discord.EmbedField{
				{Name: "Vehicle", Value: lead.Vehicle, Inline: false},
				{Name: "In-Game Name", Value: lead.InGameName, Inline: true},
				{Name: "Discord ID", Value: lead.DiscordID, Inline: true},
				{Name: "In-Game Number", Value: inGameNumber, Inline: true},
				{Name: "Pickup Time", Value: fmt.Sprintf("%s (approx. 20 min window)", lead.PickupTime), Inline: false},
			},
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Footer: &discord.EmbedFooter{
				Text: "LMC Motors Pre-booking System",
			},
		}},
	}
}
