package main

import (
	"context"
	"log"

	"github.com/bitcoinrandomizer-ship-it/weight-tracker-bot/internal/bot"
	"github.com/bitcoinrandomizer-ship-it/weight-tracker-bot/internal/config"
	"github.com/bitcoinrandomizer-ship-it/weight-tracker-bot/internal/repository"
	"github.com/bitcoinrandomizer-ship-it/weight-tracker-bot/internal/service"
)

// Request is the incoming API-gateway request.
type Request struct {
	Body string `json:"body"`
}

// Response is the API-gateway response.
type Response struct {
	StatusCode int               `json:"statusCode"`
	Body       string            `json:"body"`
	Headers    map[string]string `json:"headers,omitempty"`
}

// Handler processes one Telegram webhook update per invocation.
func Handler(ctx context.Context, request Request) (*Response, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return errorResponse(err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return errorResponse(err)
	}

	repo, err := repository.NewSupabaseRepository(cfg.SupabaseURL, cfg.SupabaseKey)
	if err != nil {
		return errorResponse(err)
	}

	tracker := service.NewWeightTracker(repo, loc)

	b, err := bot.NewBot(cfg.TelegramToken, tracker)
	if err != nil {
		return errorResponse(err)
	}

	if err := b.HandleWebhook([]byte(request.Body)); err != nil {
		return errorResponse(err)
	}

	return &Response{
		StatusCode: 200,
		Body:       "",
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func errorResponse(err error) (*Response, error) {
	log.Printf("webhook handler failed: %v", err)
	return &Response{
		StatusCode: 500,
		Body:       err.Error(),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func main() {
	// Entry point for local testing only; the platform invokes Handler.
}
