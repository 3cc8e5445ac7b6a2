package services_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"lmcmotors/internal/models"
	"lmcmotors/internal/services"
	"lmcmotors/pkg/discord"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInquiry() models.InquiryLead {
	return models.InquiryLead{
		Name:    "Jordan",
		Email:   "jordan@example.com",
		Message: "I'm interested in a test drive this weekend.",
		Vehicle: "2021 Toyota Camry",
	}
}

func validPrebooking() models.PrebookingLead {
	return models.PrebookingLead{
		InGameName: "Jordan",
		DiscordID:  "jordan#1234",
		PickupTime: "14:30",
		Vehicle:    "2020 Ford F-150",
	}
}

func TestLeadService_SubmitInquiry(t *testing.T) {
	service := services.NewLeadService(discord.NewNotifier(""), nil)

	result, errs, err := service.SubmitInquiry(validInquiry())
	assert.NoError(t, err)
	assert.Empty(t, errs)
	require.NotNil(t, result)
	assert.NotEmpty(t, result.Reference)
	assert.Equal(t, "Success! Your inquiry has been sent.", result.Message)
}

func TestLeadService_SubmitInquiryFieldErrors(t *testing.T) {
	service := services.NewLeadService(discord.NewNotifier(""), nil)

	cases := []struct {
		name    string
		mutate  func(*models.InquiryLead)
		field   string
		message string
	}{
		{"short name", func(l *models.InquiryLead) { l.Name = "J" }, "name", "Name must be at least 2 characters."},
		{"bad email", func(l *models.InquiryLead) { l.Email = "not-an-email" }, "email", "Please enter a valid email address."},
		{"short message", func(l *models.InquiryLead) { l.Message = "hi" }, "message", "Message must be at least 10 characters."},
		{"missing vehicle", func(l *models.InquiryLead) { l.Vehicle = "" }, "vehicle", "A vehicle must be specified."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lead := validInquiry()
			tc.mutate(&lead)

			result, errs, err := service.SubmitInquiry(lead)
			assert.NoError(t, err)
			assert.Nil(t, result)
			require.Contains(t, errs, tc.field)
			assert.Equal(t, tc.message, errs[tc.field])
		})
	}
}

func TestLeadService_SubmitPrebooking(t *testing.T) {
	service := services.NewLeadService(discord.NewNotifier(""), nil)

	result, errs, err := service.SubmitPrebooking(context.Background(), validPrebooking())
	assert.NoError(t, err)
	assert.Empty(t, errs)
	require.NotNil(t, result)
	assert.Contains(t, result.Message, "2020 Ford F-150")
}

func TestLeadService_SubmitPrebookingFieldErrors(t *testing.T) {
	service := services.NewLeadService(discord.NewNotifier(""), nil)

	cases := []struct {
		name   string
		mutate func(*models.PrebookingLead)
		field  string
	}{
		{"short in-game name", func(l *models.PrebookingLead) { l.InGameName = "x" }, "inGameName"},
		{"short discord id", func(l *models.PrebookingLead) { l.DiscordID = "x" }, "discordId"},
		{"missing pickup time", func(l *models.PrebookingLead) { l.PickupTime = "" }, "pickupTime"},
		{"off-grid pickup time", func(l *models.PrebookingLead) { l.PickupTime = "14:45" }, "pickupTime"},
		{"missing vehicle", func(l *models.PrebookingLead) { l.Vehicle = "" }, "vehicle"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lead := validPrebooking()
			tc.mutate(&lead)

			result, errs, err := service.SubmitPrebooking(context.Background(), lead)
			assert.NoError(t, err)
			assert.Nil(t, result)
			assert.Contains(t, errs, tc.field)
		})
	}
}

func TestLeadService_PrebookingSucceedsWhenWebhookUnreachable(t *testing.T) {
	// A closed server yields a connection error on delivery.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	service := services.NewLeadService(discord.NewNotifier(url), nil)

	result, errs, err := service.SubmitPrebooking(context.Background(), validPrebooking())
	assert.NoError(t, err)
	assert.Empty(t, errs)
	assert.NotNil(t, result)
}

func TestLeadService_PrebookingSucceedsOnWebhookServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	service := services.NewLeadService(discord.NewNotifier(server.URL), nil)

	result, errs, err := service.SubmitPrebooking(context.Background(), validPrebooking())
	assert.NoError(t, err)
	assert.Empty(t, errs)
	assert.NotNil(t, result)
}

func TestLeadService_PrebookingWebhookPayload(t *testing.T) {
	var captured discord.Message
	delivered := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		delivered = true
	}))
	defer server.Close()

	service := services.NewLeadService(discord.NewNotifier(server.URL), nil)

	_, errs, err := service.SubmitPrebooking(context.Background(), validPrebooking())
	require.NoError(t, err)
	require.Empty(t, errs)
	require.True(t, delivered)

	require.Len(t, captured.Embeds, 1)
	embed := captured.Embeds[0]
	assert.Equal(t, "New Vehicle Pre-booking! 🚗", embed.Title)
	assert.Equal(t, 5814783, embed.Color)
	require.Len(t, embed.Fields, 5)
	assert.Equal(t, "Vehicle", embed.Fields[0].Name)
	assert.Equal(t, "2020 Ford F-150", embed.Fields[0].Value)
	// Optional in-game number falls back to a placeholder.
	assert.Equal(t, "Not Provided", embed.Fields[3].Value)
	assert.Contains(t, embed.Fields[4].Value, "14:30")
	require.NotNil(t, embed.Footer)
	assert.Equal(t, "LMC Motors Pre-booking System", embed.Footer.Text)
	assert.NotEmpty(t, embed.Timestamp)
}

func TestPickupSlots(t *testing.T) {
	slots := models.PickupSlots()
	assert.Len(t, slots, 48)
	assert.Equal(t, "00:00", slots[0])
	assert.Equal(t, "23:30", slots[47])
	assert.True(t, models.IsPickupSlot("14:30"))
	assert.False(t, models.IsPickupSlot("14:45"))
}
