package vapi

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestBuildAssistantConfigIsDeterministic(t *testing.T) {
	questions := []string{"What is a goroutine?", "Explain channels."}

	first := BuildAssistantConfig(questions, "Alice")
	second := BuildAssistantConfig(questions, "Alice")

	if !reflect.DeepEqual(first, second) {
		t.Fatal("Identical inputs must produce identical configurations")
	}

	firstJSON, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}
	secondJSON, _ := json.Marshal(second)
	if string(firstJSON) != string(secondJSON) {
		t.Error("Serialized configurations differ between identical calls")
	}
}

func TestSystemPromptEmbedsQuestionsInOrder(t *testing.T) {
	questions := []string{
		"What is the difference between a slice and an array?",
		"How does the garbage collector work?",
		"When would you use a buffered channel?",
	}

	config := BuildAssistantConfig(questions, "Bob")
	if len(config.Model.Messages) != 1 {
		t.Fatalf("Expected a single system message, got %d", len(config.Model.Messages))
	}
	prompt := config.Model.Messages[0].Content

	lastIndex := -1
	for i, q := range questions {
		numbered := fmt.Sprintf("%d. %s", i+1, q)
		if strings.Count(prompt, numbered) != 1 {
			t.Errorf("Expected question %d to appear exactly once with its position: %q", i+1, numbered)
		}
		index := strings.Index(prompt, numbered)
		if index <= lastIndex {
			t.Errorf("Question %d appears out of order", i+1)
		}
		lastIndex = index
	}
}

func TestGreetingIsPersonalized(t *testing.T) {
	config := BuildAssistantConfig([]string{"Q1"}, "Charlie")
	if !strings.Contains(config.FirstMessage, "Charlie") {
		t.Errorf("Expected greeting to contain the candidate name, got %q", config.FirstMessage)
	}
}

func TestFixedProviderSelection(t *testing.T) {
	config := BuildAssistantConfig([]string{"Q1"}, "Dana")

	if config.Transcriber.Provider != "deepgram" || config.Transcriber.Model != "nova-2" {
		t.Errorf("Unexpected transcriber selection: %+v", config.Transcriber)
	}
	if config.Voice.Provider != "11labs" || config.Voice.VoiceID != "sarah" {
		t.Errorf("Unexpected voice selection: %+v", config.Voice)
	}
	if !config.Voice.UseSpeakerBoost {
		t.Error("Expected speaker boost enabled")
	}
	if config.Model.Provider != "openai" || config.Model.Model != "gpt-4" {
		t.Errorf("Unexpected model selection: %+v", config.Model)
	}
}
