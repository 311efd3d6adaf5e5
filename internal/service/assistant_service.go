package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"

	"tripflux/internal/llm"
)

// AssistantService construye prompts de viaje y delega en el LLM.
type AssistantService struct {
	client llm.Client
}

var ErrUnknownRequestType = errors.New("unknown request type")

// Tipos de sugerencia soportados.
const (
	RequestItinerary      = "itinerary"
	RequestPackingList    = "packing-list"
	RequestBudgetEstimate = "budget-estimate"
)

type AssistantRequest struct {
	Type        string  `json:"type"`
	Destination string  `json:"destination"`
	Days        FlexInt `json:"days"`
	Duration    FlexInt `json:"duration"`
	Interests   string  `json:"interests"`
	Season      string  `json:"season"`
}

// FlexInt acepta números JSON o strings numéricos; el frontend manda los
// días como string.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		*f = 0
		return nil
	}
	*f = FlexInt(n)
	return nil
}

func NewAssistantService(client llm.Client) *AssistantService {
	return &AssistantService{client: client}
}

// Suggest genera la respuesta del asistente para una solicitud.
func (s *AssistantService) Suggest(ctx context.Context, req AssistantRequest) (string, error) {
	prompt, err := BuildPrompt(req)
	if err != nil {
		return "", err
	}
	return s.client.Generate(ctx, prompt)
}

// BuildPrompt arma el prompt según el tipo de solicitud.
func BuildPrompt(req AssistantRequest) (string, error) {
	switch req.Type {
	case RequestItinerary:
		days := int(req.Days)
		if days <= 0 {
			days = 2
		}
		return fmt.Sprintf(
			"Please make a %d-day travel plan for %s. "+
				"The user like %s. "+
				"Add places to visit, timings and some activities. "+
				"Keep it short (around 15-20 lines).",
			days, req.Destination, req.Interests,
		), nil
	case RequestPackingList:
		duration := int(req.Days)
		if duration <= 0 {
			duration = int(req.Duration)
		}
		if duration <= 0 {
			duration = 3
		}
		return fmt.Sprintf(
			"Make a packing list for %s. "+
				"Trip is for %d days in %s. "+
				"Think about the weather and possible activities. "+
				"Keep it simple (about 15-20 lines).",
			req.Destination, duration, req.Season,
		), nil
	case RequestBudgetEstimate:
		days := int(req.Days)
		if days <= 0 {
			days = int(req.Duration)
		}
		return fmt.Sprintf(
			"Give a rough travel budget for %s. Trip lasts %d days. "+
				"Add cost ideas like hotel, food, travel and activities. "+
				"Keep it easy to read (15-20 lines).",
			req.Destination, days,
		), nil
	default:
		return "", ErrUnknownRequestType
	}
}
