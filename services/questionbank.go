package services

import "strings"

// Static question bank used when the Gemini call fails for any reason
// (quota, network, malformed output). Keyed by interview type.
var mockQuestions = map[string][]string{
	"technical": {
		"What is the difference between let, const, and var in JavaScript?",
		"Explain the concept of closures in programming.",
		"What are the key differences between SQL and NoSQL databases?",
		"How does async/await work in JavaScript?",
		"What is the difference between synchronous and asynchronous code?",
		"Explain the concept of promises and how they work.",
		"What is REST API and how does it differ from GraphQL?",
		"How do you optimize the performance of a web application?",
		"What is the purpose of middleware in web development?",
		"Explain the MVC architecture pattern.",
	},
	"behavioral": {
		"Tell me about a challenging project you worked on and how you overcame the challenges.",
		"Describe a situation where you had to work with a difficult team member.",
		"How do you prioritize tasks when you have multiple deadlines?",
		"Give an example of when you had to learn something new quickly.",
		"Describe a time when you made a mistake and how you handled it.",
		"How do you handle feedback and criticism from your team?",
		"Tell me about a time you took initiative beyond your job responsibilities.",
		"Describe your approach to debugging and problem-solving.",
		"How do you stay updated with new technologies and trends?",
		"Tell me about a project you are most proud of.",
	},
	"mixed": {
		"What is the difference between let, const, and var in JavaScript?",
		"Tell me about a challenging project you worked on.",
		"How does async/await work in JavaScript?",
		"Describe a situation where you had to work with a difficult team member.",
		"What are the key differences between SQL and NoSQL databases?",
		"How do you prioritize tasks when you have multiple deadlines?",
		"Explain the concept of closures in programming.",
		"Give an example of when you had to learn something new quickly.",
		"What is REST API and how does it differ from GraphQL?",
		"How do you handle feedback and criticism from your team?",
	},
}

// MockQuestionsForType returns at most amount questions from the static bank.
// Unknown types fall back to the mixed set, so the result is never empty for
// a positive amount.
func MockQuestionsForType(interviewType string, amount int) []string {
	typeKey := "mixed"
	switch strings.ToLower(interviewType) {
	case "technical":
		typeKey = "technical"
	case "behavioral":
		typeKey = "behavioral"
	}

	pool := mockQuestions[typeKey]
	if amount > len(pool) {
		amount = len(pool)
	}
	if amount < 0 {
		amount = 0
	}

	questions := make([]string, amount)
	copy(questions, pool[:amount])
	return questions
}
