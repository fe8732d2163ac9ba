package notifier

import (
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// ReminderText is the static daily reminder message.
const ReminderText = "Не забудьте поучить английский язык сегодня! 📚"

// Sender delivers outbound messages to a chat.
type Sender interface {
	SendText(chatID int64, text string) error
}

// Scheduler fires the daily reminder job at a fixed wall-clock time.
// Failed sends are logged, not retried.
type Scheduler struct {
	scheduler *gocron.Scheduler
	subs      *Subscribers
	sender    Sender
	at        string
}

// New creates a scheduler that reminds the given subscribers via the
// sender every day at the given "HH:MM" time.
func New(subs *Subscribers, sender Sender, at string) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.Local),
		subs:      subs,
		sender:    sender,
		at:        at,
	}
}

// Start registers the daily job and runs the scheduler in the
// background.
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(1).Day().At(s.at).Do(s.job); err != nil {
		return fmt.Errorf("failed to schedule reminders at %s: %w", s.at, err)
	}
	s.scheduler.StartAsync()
	return nil
}

// Stop terminates the scheduler.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// job sends the reminder to every currently-subscribed user.
func (s *Scheduler) job() {
	for _, userID := range s.subs.IDs() {
		if err := s.sender.SendText(userID, ReminderText); err != nil {
			log.Printf("Error sending reminder to user %d: %v", userID, err)
		}
	}
}
