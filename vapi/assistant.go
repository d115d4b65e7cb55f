package vapi

import (
	"fmt"
	"strings"
)

// TranscriberConfig selects the speech-recognition provider for a session
type TranscriberConfig struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Language string `json:"language"`
}

// VoiceConfig selects the synthesis voice and its prosody parameters
type VoiceConfig struct {
	Provider        string  `json:"provider"`
	VoiceID         string  `json:"voiceId"`
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarityBoost"`
	Speed           float64 `json:"speed"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"useSpeakerBoost"`
}

// ModelMessage is one instruction message for the session's language model
type ModelMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ModelConfig selects the language model driving the conversation
type ModelConfig struct {
	Provider string         `json:"provider"`
	Model    string         `json:"model"`
	Messages []ModelMessage `json:"messages"`
}

// AssistantConfig is the parameter bundle that customizes one voice session
type AssistantConfig struct {
	Name         string            `json:"name"`
	FirstMessage string            `json:"firstMessage"`
	Transcriber  TranscriberConfig `json:"transcriber"`
	Voice        VoiceConfig       `json:"voice"`
	Model        ModelConfig       `json:"model"`
}

// BuildAssistantConfig renders the interview assistant configuration for a
// question list and candidate name. Pure and deterministic: identical inputs
// always produce identical configurations.
func BuildAssistantConfig(questions []string, userName string) AssistantConfig {
	numbered := make([]string, len(questions))
	for i, q := range questions {
		numbered[i] = fmt.Sprintf("%d. %s", i+1, q)
	}
	questionsFormatted := strings.Join(numbered, "\n")

	return AssistantConfig{
		Name: "MockMate Interview Assistant",
		FirstMessage: fmt.Sprintf("Hello %s! Welcome to your mock interview. I'll be asking you a series of interview questions. "+
			"Please answer thoughtfully and in detail. Let's get started!", userName),
		Transcriber: TranscriberConfig{
			Provider: "deepgram",
			Model:    "nova-2",
			Language: "en",
		},
		Voice: VoiceConfig{
			Provider:        "11labs",
			VoiceID:         "sarah",
			Stability:       0.4,
			SimilarityBoost: 0.8,
			Speed:           0.9,
			Style:           0.5,
			UseSpeakerBoost: true,
		},
		Model: ModelConfig{
			Provider: "openai",
			Model:    "gpt-4",
			Messages: []ModelMessage{
				{
					Role:    "system",
					Content: buildSystemPrompt(questionsFormatted),
				},
			},
		},
	}
}

func buildSystemPrompt(questionsFormatted string) string {
	return fmt.Sprintf(`You are a professional mock interview assistant. Your role is to conduct a realistic job interview with the candidate using the provided questions.

## Interview Instructions:
Ask the following questions in order. Wait for complete answers before moving to the next question.

INTERVIEW QUESTIONS:
%s

## How to Conduct the Interview:

1. **Question Flow**: Ask questions one at a time from the list above.
2. **Active Listening**: After each answer:
   - Acknowledge the candidate's response briefly
   - Ask 1-2 follow-up questions if the answer lacks depth
   - Move to the next question after adequate response

3. **Professional Tone**:
   - Be warm, professional, and encouraging
   - Use natural language (avoid robotic speech)
   - Keep responses concise and conversational

4. **Handle Off-Topic Questions**:
   - If asked about salary, benefits, or company details: "Those are great questions for HR. Let's continue with the interview."
   - If asked for clarification on a question: Rephrase it more clearly
   - Stay focused on the interview flow

5. **Interview Conclusion**:
   - After all questions are answered, say: "Thank you for the thorough answers. This concludes our interview. You'll receive feedback within 24 hours. Have a great day!"
   - Be positive and professional

## Important:
- Track which questions have been asked to maintain order
- Keep the interview flowing naturally
- Be empathetic but maintain professionalism
- Never skip or reorder questions`, questionsFormatted)
}
