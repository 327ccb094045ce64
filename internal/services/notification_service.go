// internal/services/notification_service.go
package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker/v2"

	"github.com/javajoker/shopbot/internal/chat"
)

type NotificationService struct {
	messenger chat.Messenger
	adminID   int64
	timeout   time.Duration
	breaker   *gobreaker.CircuitBreaker[struct{}]
	wg        sync.WaitGroup
}

type NotificationOptions struct {
	// Timeout bounds a single asynchronous push.
	Timeout time.Duration
	// BreakerTimeout is how long the breaker stays open before probing again.
	BreakerTimeout time.Duration
	// MaxFailures consecutive push failures open the breaker.
	MaxFailures uint32
}

func NewNotificationService(messenger chat.Messenger, adminID int64, opts NotificationOptions) *NotificationService {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.BreakerTimeout <= 0 {
		opts.BreakerTimeout = 30 * time.Second
	}
	if opts.MaxFailures == 0 {
		opts.MaxFailures = 5
	}

	breaker := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "chat-push",
		MaxRequests: 1,
		Timeout:     opts.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= opts.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logrus.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Circuit breaker state changed")
		},
	})

	return &NotificationService{
		messenger: messenger,
		adminID:   adminID,
		timeout:   opts.Timeout,
		breaker:   breaker,
	}
}

func (s *NotificationService) AdminID() int64 {
	return s.adminID
}

func (s *NotificationService) IsAdmin(userID int64) bool {
	return userID == s.adminID
}

// Reply sends synchronously to the user who triggered the current event.
func (s *NotificationService) Reply(ctx context.Context, reply chat.Reply) error {
	if err := s.messenger.Send(ctx, reply); err != nil {
		logrus.WithError(err).WithField("chat_id", reply.ChatID).Error("Failed to send reply")
		return err
	}
	return nil
}

// Answer acknowledges a callback query. Failures are logged and swallowed.
func (s *NotificationService) Answer(ctx context.Context, callbackID, text string, alert bool) {
	if callbackID == "" {
		return
	}
	if err := s.messenger.AnswerCallback(ctx, callbackID, text, alert); err != nil {
		logrus.WithError(err).Warn("Failed to answer callback")
	}
}

// Push delivers a message to a user other than the current one. It never
// blocks the caller; a failing transport trips the breaker and later pushes
// are dropped until it recovers.
func (s *NotificationService) Push(reply chat.Reply) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		_, err := s.breaker.Execute(func() (struct{}, error) {
			return struct{}{}, s.messenger.Send(ctx, reply)
		})
		if err != nil {
			entry := logrus.WithError(err).WithField("chat_id", reply.ChatID)
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				entry.Warn("Push dropped, circuit open")
				return
			}
			entry.Error("Failed to push notification")
		}
	}()
}

func (s *NotificationService) NotifyAdmin(reply chat.Reply) {
	reply.ChatID = s.adminID
	s.Push(reply)
}

// Wait blocks until in-flight pushes finish. Used on shutdown and in tests.
func (s *NotificationService) Wait() {
	s.wg.Wait()
}

func (s *NotificationService) BreakerState() gobreaker.State {
	return s.breaker.State()
}
