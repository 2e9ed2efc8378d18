package worker

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"picboard/internal/queue"
)

const (
	// DefaultWorkerCount is the default number of worker goroutines
	DefaultWorkerCount = 2

	// DefaultBatchSize is the number of messages to read per batch
	DefaultBatchSize = 10

	// DefaultBlockTimeout is how long to block waiting for new messages
	DefaultBlockTimeout = 5 * time.Second

	// DefaultPromoteInterval is how often due retries are moved onto the stream
	DefaultPromoteInterval = time.Second
)

// Manager orchestrates worker goroutines that consume from Redis Streams.
type Manager struct {
	consumer        queue.Consumer
	scheduler       queue.Scheduler
	handler         *Handler
	workerCount     int
	batchSize       int64
	blockTime       time.Duration
	promoteInterval time.Duration

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// ManagerConfig holds configuration for the worker manager.
type ManagerConfig struct {
	WorkerCount     int           // Number of worker goroutines
	BatchSize       int64         // Messages per read
	BlockTimeout    time.Duration // Block time for XREADGROUP
	PromoteInterval time.Duration // Tick of the delayed retry promoter
}

// DefaultManagerConfig returns sensible defaults.
func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		WorkerCount:     DefaultWorkerCount,
		BatchSize:       DefaultBatchSize,
		BlockTimeout:    DefaultBlockTimeout,
		PromoteInterval: DefaultPromoteInterval,
	}
}

// NewManager creates a new worker manager. Retries held by scheduler are
// promoted to the stream every cfg.PromoteInterval.
func NewManager(consumer queue.Consumer, scheduler queue.Scheduler, handler *Handler, cfg ManagerConfig) *Manager {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = DefaultWorkerCount
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.BlockTimeout <= 0 {
		cfg.BlockTimeout = DefaultBlockTimeout
	}
	if cfg.PromoteInterval <= 0 {
		cfg.PromoteInterval = DefaultPromoteInterval
	}

	return &Manager{
		consumer:        consumer,
		scheduler:       scheduler,
		handler:         handler,
		workerCount:     cfg.WorkerCount,
		batchSize:       cfg.BatchSize,
		blockTime:       cfg.BlockTimeout,
		promoteInterval: cfg.PromoteInterval,
	}
}

// Start ensures the consumer group exists and begins the worker goroutines.
// Call Stop() to gracefully shut down.
func (m *Manager) Start(ctx context.Context) error {
	m.ctx, m.cancel = context.WithCancel(ctx)

	if err := m.consumer.EnsureGroup(m.ctx, queue.StreamImages, queue.ConsumerGroupImages); err != nil {
		m.cancel()
		return err
	}

	pending, err := m.consumer.Pending(m.ctx, queue.StreamImages, queue.ConsumerGroupImages)
	if err != nil {
		log.Printf("[Manager] Pending count failed: %v", err)
	} else if pending > 0 {
		log.Printf("[Manager] %d unacknowledged messages from a previous run", pending)
	}

	m.wg.Add(1)
	go m.runPromoter()

	for i := 0; i < m.workerCount; i++ {
		workerID := i + 1
		m.wg.Add(1)
		go m.runWorker(workerID, consumerNameForWorker(workerID))
	}

	log.Printf("[Manager] Started %d workers for stream=%s group=%s",
		m.workerCount, queue.StreamImages, queue.ConsumerGroupImages)
	return nil
}

// Stop gracefully shuts down all workers.
// Blocks until all workers have finished.
func (m *Manager) Stop() {
	log.Printf("[Manager] Stopping workers...")
	m.cancel()
	m.wg.Wait()
	log.Printf("[Manager] All workers stopped")
}

// runPromoter moves due retries from the scheduler onto the stream until shutdown.
func (m *Manager) runPromoter() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.promoteInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case now := <-ticker.C:
			n, err := m.scheduler.PromoteDue(m.ctx, now, m.batchSize)
			if err != nil && m.ctx.Err() == nil {
				log.Printf("[Promoter] PromoteDue failed: %v", err)
			}
			if n > 0 {
				log.Printf("[Promoter] Promoted %d due retries", n)
			}
		}
	}
}

// runWorker is the main loop for a single worker goroutine.
func (m *Manager) runWorker(workerID int, consumerName string) {
	defer m.wg.Done()

	// Messages left unacknowledged by a previous run come first.
	m.processPending(workerID, consumerName)

	for {
		select {
		case <-m.ctx.Done():
			log.Printf("[Worker-%d] Shutting down", workerID)
			return
		default:
			m.processMessages(workerID, consumerName)
		}
	}
}

// processPending handles messages that were delivered but not acknowledged.
func (m *Manager) processPending(workerID int, consumerName string) {
	for m.ctx.Err() == nil {
		messages, err := m.consumer.ReadPending(m.ctx, queue.StreamImages, queue.ConsumerGroupImages, consumerName, m.batchSize)
		if err != nil {
			log.Printf("[Worker-%d] Error reading pending: %v", workerID, err)
			return
		}
		if len(messages) == 0 {
			return
		}

		log.Printf("[Worker-%d] Processing %d pending messages", workerID, len(messages))
		m.handleMessages(workerID, messages)
	}
}

// processMessages reads and handles a batch of messages.
func (m *Manager) processMessages(workerID int, consumerName string) {
	messages, err := m.consumer.Read(
		m.ctx,
		queue.StreamImages,
		queue.ConsumerGroupImages,
		consumerName,
		m.batchSize,
		m.blockTime,
	)
	if err != nil {
		if m.ctx.Err() != nil {
			return
		}
		log.Printf("[Worker-%d] Error reading: %v", workerID, err)
		select {
		case <-m.ctx.Done():
		case <-time.After(time.Second): // Back off on error
		}
		return
	}

	if len(messages) == 0 {
		return // Timeout, no messages
	}
	m.handleMessages(workerID, messages)
}

// handleMessages processes a batch of messages and acknowledges them.
// Messages interrupted by shutdown stay pending and are picked up on the next start.
func (m *Manager) handleMessages(workerID int, messages []queue.Message) {
	for _, msg := range messages {
		err := m.handler.HandleEvent(m.ctx, msg.Event)
		if m.ctx.Err() != nil {
			return
		}
		if err != nil {
			// Still ACK to prevent infinite retry loops; the handler re-queues what it can.
			log.Printf("[Worker-%d] Handler error msgID=%s: %v", workerID, msg.ID, err)
		}

		if err := m.consumer.Ack(m.ctx, queue.StreamImages, queue.ConsumerGroupImages, msg.ID); err != nil {
			log.Printf("[Worker-%d] ACK error msgID=%s: %v", workerID, msg.ID, err)
		}
	}
}

// consumerNameForWorker generates a unique consumer name for each worker.
func consumerNameForWorker(workerID int) string {
	return fmt.Sprintf("worker-%d", workerID)
}
