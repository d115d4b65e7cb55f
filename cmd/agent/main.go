package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mockmate/agent"
	"mockmate/client"
	"mockmate/config"
	"mockmate/vapi"

	"github.com/joho/godotenv"
)

// Terminal runner for a voice session: takes an interview by id, or runs the
// pre-registered assistant to collect interview parameters by voice.
func main() {
	var (
		serverURL   = flag.String("server", "http://localhost:8080", "backend base URL")
		interviewID = flag.String("interview", "", "interview id to take; empty runs a generate session")
		userID      = flag.String("user", "", "user id the feedback is recorded under")
		userName    = flag.String("name", "there", "name the assistant greets you with")
		feedbackID  = flag.String("feedback", "", "existing feedback id to overwrite on resubmission")
	)
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as-is")
	}
	cfg, err := config.LoadConfig("./config/config.yml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	api := client.New(*serverURL)

	opts := agent.Options{
		UserName:    *userName,
		UserID:      *userID,
		AssistantID: cfg.Vapi.AssistantId,
	}
	if *interviewID != "" {
		interview, err := api.GetInterview(context.Background(), *interviewID)
		if err != nil {
			log.Fatalf("Failed to load interview: %v", err)
		}
		opts.Type = agent.TypeInterview
		opts.InterviewID = *interviewID
		opts.FeedbackID = *feedbackID
		opts.Questions = interview.Questions
		log.Printf("Taking %s %s interview (%d questions)", interview.Level, interview.Role, len(interview.Questions))
	} else {
		opts.Type = agent.TypeGenerate
	}

	sdk, err := vapi.NewWSClient(cfg.Vapi.URL, cfg.Vapi.PublicKey)
	if err != nil {
		log.Fatalf("Failed to create voice client: %v", err)
	}

	session, err := agent.New(sdk, api, opts)
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}

	ctx := context.Background()
	if err := session.Start(ctx); err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}
	log.Printf("Session %s started, press Ctrl+C to end the call", session.SessionID())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	lastCaption := ""
	for {
		select {
		case <-sigs:
			log.Println("Ending call")
			if err := session.Stop(ctx); err != nil {
				log.Printf("Stop error: %v", err)
			}
			return
		case <-ticker.C:
			if caption := session.LastCaption(); caption != "" && caption != lastCaption {
				lastCaption = caption
				log.Printf("[caption] %s", caption)
			}
			if session.Status() == agent.StatusFinished {
				if err := session.Stop(ctx); err != nil {
					log.Printf("Stop error: %v", err)
				}
				log.Println("Call finished")
				return
			}
		}
	}
}
