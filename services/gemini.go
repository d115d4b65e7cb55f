package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"mockmate/config"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash-001"

// Shared Gemini client instance
var geminiClient *genai.Client

// InitAIService initializes the Gemini client using the API key from the
// config. A missing key is not fatal: question generation falls back to the
// static bank, and feedback generation reports the error per request.
func InitAIService(cfg *config.Config) {
	if cfg.Gemini.ApiKey == "" {
		log.Println("Gemini API key not configured; question generation will use the static bank")
		return
	}

	client, err := initGemini(cfg.Gemini.ApiKey)
	if err != nil {
		log.Printf("Failed to initialize Gemini client: %v", err)
		return
	}
	geminiClient = client
}

func initGemini(apiKey string) (*genai.Client, error) {
	clientConfig := &genai.ClientConfig{}
	if apiKey != "" {
		clientConfig.APIKey = apiKey
	}
	return genai.NewClient(context.Background(), clientConfig)
}

func generateModelText(ctx context.Context, modelName, prompt string) (string, error) {
	if geminiClient == nil {
		return "", errors.New("gemini client not initialized")
	}
	resp, err := geminiClient.Models.GenerateContent(ctx, modelName, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	return cleanModelOutput(resp.Text()), nil
}

func cleanModelOutput(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

func generateDefaultModelText(ctx context.Context, prompt string) (string, error) {
	return generateModelText(ctx, defaultGeminiModel, prompt)
}
