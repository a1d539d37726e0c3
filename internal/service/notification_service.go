package service

import (
	"sync"

	"github.com/quizdesk/classroom/internal/model"
	"github.com/quizdesk/classroom/internal/repository"
	"github.com/rs/zerolog/log"
)

// NotificationDispatcher is the fire-and-forget collaborator used after
// side-effecting events like a successful payment. Delivery is queued;
// callers never block on it.
type NotificationDispatcher interface {
	Send(userIDs []uint, title, body, notifType string, actionID *string)
}

type notificationBatch struct {
	userIDs  []uint
	title    string
	body     string
	notif    string
	actionID *string
}

type QueuedDispatcher struct {
	repo  repository.NotificationRepository
	queue chan notificationBatch
	done  chan struct{}

	// fx stops the workers before the HTTP server drains, so a request may
	// still call Send during shutdown. The closed flag keeps that send from
	// hitting a closed channel.
	mu     sync.Mutex
	closed bool
}

func NewQueuedDispatcher(repo repository.NotificationRepository) *QueuedDispatcher {
	return &QueuedDispatcher{
		repo:  repo,
		queue: make(chan notificationBatch, 256),
		done:  make(chan struct{}),
	}
}

func (d *QueuedDispatcher) Send(userIDs []uint, title, body, notifType string, actionID *string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		log.Warn().Str("type", notifType).Msg("Notification queue closed, dropping batch")
		return
	}

	batch := notificationBatch{userIDs: userIDs, title: title, body: body, notif: notifType, actionID: actionID}
	select {
	case d.queue <- batch:
	default:
		log.Warn().Str("type", notifType).Msg("Notification queue full, dropping batch")
	}
}

// Start runs the worker loop. Invoked from the fx OnStart hook.
func (d *QueuedDispatcher) Start() {
	go func() {
		defer close(d.done)
		for batch := range d.queue {
			for _, userID := range batch.userIDs {
				n := model.Notification{
					UserID:   userID,
					Title:    batch.title,
					Body:     batch.body,
					Type:     batch.notif,
					ActionID: batch.actionID,
				}
				if err := d.repo.Create(&n); err != nil {
					log.Error().Err(err).Uint("userID", userID).Str("type", batch.notif).Msg("Failed to persist notification")
					continue
				}
				log.Info().Uint("userID", userID).Str("type", batch.notif).Msg("Notification dispatched")
			}
		}
	}()
}

// Stop drains the queue and waits for the worker to exit. Sends arriving
// after Stop are dropped.
func (d *QueuedDispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	<-d.done
}
