package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"lmcmotors/internal/models"
	"lmcmotors/pkg/genai"
)

// RecommendationError reports a failed recommendation run. Stage is one of
// "model" (invocation failure), "tool" (inventory lookup failure) or
// "schema" (output failed validation). A legitimate empty recommendation
// list is not an error.
type RecommendationError struct {
	Stage string
	Err   error
}

func (e *RecommendationError) Error() string {
	return fmt.Sprintf("recommendation %s failure: %v", e.Stage, e.Err)
}

func (e *RecommendationError) Unwrap() error {
	return e.Err
}

const recommendationPrompt = `You are an expert vehicle recommendation system for LMC Motors. Based on the user's specified budget and vehicle type, recommend the most suitable vehicles.
Use the getVehicleInventory tool to get the list of available vehicles of the requested type.
Then, filter those results by the user's budget.
From the filtered list, select up to 3 of the best matches and provide a compelling, short description for each, highlighting why it's a great fit for the user.

Budget: %.0f
Vehicle Type: %s

Respond with a JSON object of the form {"recommendations": [{"model": string, "year": number, "mileage": number, "price": number, "description": string}]}. If no vehicles match the criteria, return an empty recommendations array.`

// maxRecommendations caps how many entries a single run may return.
const maxRecommendations = 3

// RecommendationService orchestrates the AI-assisted vehicle finder: it
// declares the inventory lookup as a callable tool, prompts the model with
// the user's budget and type, and validates the structured output. The
// budget filter is deliberately left to the model; results are best-effort.
type RecommendationService struct {
	catalog *CatalogService
	model   *genai.Client
}

// NewRecommendationService creates a new RecommendationService.
func NewRecommendationService(catalog *CatalogService, model *genai.Client) *RecommendationService {
	return &RecommendationService{
		catalog: catalog,
		model:   model,
	}
}

// inventoryTool declares the getVehicleInventory capability backed by the
// catalog service. Input and output schemas match the published contract:
// {type} in, an array of constrained vehicle projections out.
func (s *RecommendationService) inventoryTool() genai.Tool {
	return genai.Tool{
		Name:        "getVehicleInventory",
		Description: "Returns the current vehicle inventory based on type.",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"type": map[string]interface{}{
					"type":        "string",
					"description": "The type of vehicle to filter by (e.g., sedan, truck, SUV).",
				},
			},
			"required": []string{"type"},
		},
		Handler: func(ctx context.Context, arguments json.RawMessage) (interface{}, error) {
			var input struct {
				Type string `json:"type"`
			}
			if err := json.Unmarshal(arguments, &input); err != nil {
				return nil, fmt.Errorf("invalid tool arguments: %w", err)
			}
			return s.catalog.Inventory(input.Type)
		},
	}
}

// recommendationPayload is the strict output schema. Pointer fields make
// missing keys distinguishable from zero values during validation.
type recommendationPayload struct {
	Recommendations []struct {
		Model       *string  `json:"model"`
		Year        *int     `json:"year"`
		Mileage     *int     `json:"mileage"`
		Price       *float64 `json:"price"`
		Description *string  `json:"description"`
	} `json:"recommendations"`
}

// Recommend returns up to three schema-validated vehicle recommendations for
// the given budget and type.
func (s *RecommendationService) Recommend(ctx context.Context, budget float64, vehicleType string) ([]models.Recommendation, error) {
	if budget <= 0 {
		return nil, fmt.Errorf("budget must be positive, got %v", budget)
	}

	prompt := fmt.Sprintf(recommendationPrompt, budget, vehicleType)

	output, err := s.model.GenerateJSON(ctx, prompt, []genai.Tool{s.inventoryTool()})
	if err != nil {
		var toolErr *genai.ToolError
		if errors.As(err, &toolErr) {
			return nil, &RecommendationError{Stage: "tool", Err: err}
		}
		return nil, &RecommendationError{Stage: "model", Err: err}
	}

	var payload recommendationPayload
	if err := json.Unmarshal([]byte(output), &payload); err != nil {
		return nil, &RecommendationError{Stage: "schema", Err: fmt.Errorf("output is not valid JSON: %w", err)}
	}
	if payload.Recommendations == nil {
		return nil, &RecommendationError{Stage: "schema", Err: errors.New("output is missing the recommendations array")}
	}

	recommendations := make([]models.Recommendation, 0, len(payload.Recommendations))
	for i, entry := range payload.Recommendations {
		if entry.Model == nil || entry.Year == nil || entry.Mileage == nil || entry.Price == nil || entry.Description == nil {
			return nil, &RecommendationError{Stage: "schema", Err: fmt.Errorf("recommendation %d is missing required fields", i)}
		}
		recommendations = append(recommendations, models.Recommendation{
			Model:       *entry.Model,
			Year:        *entry.Year,
			Mileage:     *entry.Mileage,
			Price:       *entry.Price,
			Description: *entry.Description,
		})
	}

	// The prompt asks for at most three; trim any overrun rather than
	// failing the whole run.
	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}
	return recommendations, nil
}
