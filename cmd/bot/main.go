package main

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/bitcoinrandomizer-ship-it/weight-tracker-bot/internal/bot"
	"github.com/bitcoinrandomizer-ship-it/weight-tracker-bot/internal/config"
	"github.com/bitcoinrandomizer-ship-it/weight-tracker-bot/internal/repository"
	"github.com/bitcoinrandomizer-ship-it/weight-tracker-bot/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal(err)
	}

	var repo service.Repository
	if cfg.SupabaseURL != "" {
		repo, err = repository.NewSupabaseRepository(cfg.SupabaseURL, cfg.SupabaseKey)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		log.Println("SUPABASE_URL not set, using in-memory store (data is lost on restart)")
		repo = repository.NewRowStore(repository.NewMemoryRows(), repository.NewMemoryRows())
	}

	tracker := service.NewWeightTracker(repo, loc)

	b, err := bot.NewBot(cfg.TelegramToken, tracker)
	if err != nil {
		log.Fatal(err)
	}

	notifier := service.NewNotifier(repo, b)

	// Daily reminder at 08:00 in the configured timezone.
	c := cron.New(cron.WithLocation(loc))
	if _, err := c.AddFunc("0 8 * * *", func() {
		count, err := notifier.RunDailyReminder(context.Background())
		if err != nil {
			log.Printf("daily reminder finished with errors: %v", err)
		}
		log.Printf("daily reminder sent to %d users", count)
	}); err != nil {
		log.Fatal(err)
	}
	c.Start()

	log.Println("bot started")
	if err := b.Start(); err != nil {
		log.Fatal(err)
	}
}
