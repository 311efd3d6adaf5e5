package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"tripflux/internal/llm"
)

func TestBuildPromptItinerary(t *testing.T) {
	prompt, err := BuildPrompt(AssistantRequest{
		Type:        RequestItinerary,
		Destination: "Kyoto",
		Days:        4,
		Interests:   "temples and food",
	})
	if err != nil {
		t.Fatalf("build prompt failed: %v", err)
	}
	if !strings.Contains(prompt, "4-day travel plan for Kyoto") {
		t.Fatalf("unexpected prompt: %q", prompt)
	}
	if !strings.Contains(prompt, "temples and food") {
		t.Fatalf("interests missing from prompt: %q", prompt)
	}
}

func TestBuildPromptItineraryDefaultDays(t *testing.T) {
	prompt, err := BuildPrompt(AssistantRequest{Type: RequestItinerary, Destination: "Goa"})
	if err != nil {
		t.Fatalf("build prompt failed: %v", err)
	}
	if !strings.Contains(prompt, "2-day travel plan") {
		t.Fatalf("expected default of 2 days: %q", prompt)
	}
}

func TestBuildPromptPackingListDurationFallback(t *testing.T) {
	prompt, err := BuildPrompt(AssistantRequest{
		Type:        RequestPackingList,
		Destination: "Oslo",
		Duration:    7,
		Season:      "winter",
	})
	if err != nil {
		t.Fatalf("build prompt failed: %v", err)
	}
	if !strings.Contains(prompt, "7 days in winter") {
		t.Fatalf("expected duration fallback: %q", prompt)
	}
}

func TestBuildPromptUnknownType(t *testing.T) {
	if _, err := BuildPrompt(AssistantRequest{Type: "horoscope"}); !errors.Is(err, ErrUnknownRequestType) {
		t.Fatalf("expected ErrUnknownRequestType, got %v", err)
	}
}

func TestSuggestForwardsPrompt(t *testing.T) {
	mock := &llm.MockClient{Response: "day 1: arrive"}
	svc := NewAssistantService(mock)

	text, err := svc.Suggest(context.Background(), AssistantRequest{
		Type:        RequestBudgetEstimate,
		Destination: "Lima",
		Days:        5,
	})
	if err != nil {
		t.Fatalf("suggest failed: %v", err)
	}
	if text != "day 1: arrive" {
		t.Fatalf("unexpected response: %q", text)
	}
	if len(mock.Prompts) != 1 || !strings.Contains(mock.Prompts[0], "travel budget for Lima") {
		t.Fatalf("prompt not forwarded: %v", mock.Prompts)
	}
}

func TestFlexIntAcceptsNumberAndString(t *testing.T) {
	var req AssistantRequest
	if err := json.Unmarshal([]byte(`{"type":"itinerary","days":3}`), &req); err != nil {
		t.Fatalf("unmarshal number failed: %v", err)
	}
	if req.Days != 3 {
		t.Fatalf("expected days=3, got %d", req.Days)
	}

	if err := json.Unmarshal([]byte(`{"type":"itinerary","days":"5"}`), &req); err != nil {
		t.Fatalf("unmarshal string failed: %v", err)
	}
	if req.Days != 5 {
		t.Fatalf("expected days=5, got %d", req.Days)
	}

	if err := json.Unmarshal([]byte(`{"type":"itinerary","days":""}`), &req); err != nil {
		t.Fatalf("unmarshal empty failed: %v", err)
	}
	if req.Days != 0 {
		t.Fatalf("expected days=0 for empty string, got %d", req.Days)
	}
}
