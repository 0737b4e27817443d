package notifier

import (
	"fmt"
	"log"
)

// Notifier is the ops-facing channel; swap the implementation for
// Slack/LINE/webhooks without touching the worker.
type Notifier interface {
	Notify(subject, message string) error
}

type ConsoleNotifier struct{}

func NewConsole() *ConsoleNotifier {
	return &ConsoleNotifier{}
}

func (c *ConsoleNotifier) Notify(subject, message string) error {
	log.Printf("[notify] %s :: %s\n", subject, message)
	return nil
}

// HumanSlot renders a reservation slot for ops messages.
func HumanSlot(courtID, date, startTime string) string {
	return fmt.Sprintf("%s %s %s", courtID, date, startTime)
}
