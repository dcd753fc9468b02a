package scheduler

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/example/flashquiz/internal/database"
	"github.com/go-co-op/gocron"
)

// Notifier delivers a review reminder to one chat.
type Notifier interface {
	SendReminder(chatID int64, count int) error
}

// SubscriberSource lists the chats that asked for daily reminders.
type SubscriberSource interface {
	Subscribers() []int64
}

// Scheduler runs the daily review reminder job.
type Scheduler struct {
	scheduler   *gocron.Scheduler
	cards       *database.CardRepository
	notifier    Notifier
	subscribers SubscriberSource
	hour        int
	threshold   int
}

// New creates a scheduler that, once a day at the given hour, counts
// cards scored below threshold and pings every subscribed chat.
func New(store *database.Store, notifier Notifier, subscribers SubscriberSource, hour, threshold int) *Scheduler {
	return &Scheduler{
		scheduler:   gocron.NewScheduler(time.Local),
		cards:       database.NewCardRepository(store),
		notifier:    notifier,
		subscribers: subscribers,
		hour:        hour,
		threshold:   threshold,
	}
}

// Start begins running the reminder job in the background.
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Day().At(fmt.Sprintf("%02d:00", s.hour)).Do(s.sendReminders)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// sendReminders counts struggling cards and notifies each subscriber.
func (s *Scheduler) sendReminders() {
	count, err := s.cards.CountScoredBelow(s.threshold)
	if err != nil {
		slog.Error("failed to count cards for reminders", "error", err)
		return
	}
	if count == 0 {
		slog.Debug("no cards below threshold, skipping reminders")
		return
	}

	for _, chatID := range s.subscribers.Subscribers() {
		if err := s.notifier.SendReminder(chatID, count); err != nil {
			slog.Warn("failed to send reminder", "chat", chatID, "error", err)
		}
	}
}
