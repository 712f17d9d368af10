package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"edify-backend/internal/models"
	"edify-backend/internal/repository"
	"edify-backend/internal/services"
)

const (
	queueConversationLog     = "queue:conversation-log"
	queueContactNotification = "queue:contact-notification"
)

// Pool drains the async CRM queues: conversation logs written by the chat
// relay and contact-notification emails. Nothing here is on a request path.
type Pool struct {
	redis       *redis.Client
	email       *services.EmailService
	convRepo    *repository.ConversationRepo
	workerCount int
	stopChan    chan struct{}
}

func NewPool(
	redisClient *redis.Client,
	email *services.EmailService,
	convRepo *repository.ConversationRepo,
	workerCount int,
) *Pool {
	return &Pool{
		redis:       redisClient,
		email:       email,
		convRepo:    convRepo,
		workerCount: workerCount,
		stopChan:    make(chan struct{}),
	}
}

func (p *Pool) Start() {
	queues := []string{queueConversationLog, queueContactNotification}

	for i := 0; i < p.workerCount; i++ {
		go p.worker(i, queues)
	}

	log.Printf("Started %d worker goroutines", p.workerCount)
}

func (p *Pool) Stop() {
	close(p.stopChan)
}

func (p *Pool) worker(id int, queues []string) {
	for {
		select {
		case <-p.stopChan:
			log.Printf("Worker %d shutting down", id)
			return
		default:
		}

		ctx := context.Background()

		// BLPOP with 30s timeout
		result, err := p.redis.BLPop(ctx, 30*time.Second, queues...).Result()
		if err != nil {
			continue // Timeout or error, retry
		}

		if len(result) < 2 {
			continue
		}

		queue, payload := result[0], result[1]

		var processErr error
		switch queue {
		case queueConversationLog:
			processErr = p.processConversationLog(ctx, payload)
		case queueContactNotification:
			processErr = p.processContactNotification(payload)
		default:
			processErr = fmt.Errorf("unknown queue: %s", queue)
		}

		if processErr != nil {
			log.Printf("Worker %d: %s job failed: %v", id, queue, processErr)
		}
	}
}

func (p *Pool) processConversationLog(ctx context.Context, payload string) error {
	var conversation models.ChatConversation
	if err := json.Unmarshal([]byte(payload), &conversation); err != nil {
		return fmt.Errorf("failed to parse conversation log: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := p.convRepo.Create(ctx, &conversation); err != nil {
		return fmt.Errorf("failed to persist conversation: %w", err)
	}
	return nil
}

func (p *Pool) processContactNotification(payload string) error {
	var submission models.ContactSubmission
	if err := json.Unmarshal([]byte(payload), &submission); err != nil {
		return fmt.Errorf("failed to parse contact submission: %w", err)
	}

	return p.email.SendContactNotification(&submission)
}
