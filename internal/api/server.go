package api

import (
	"context"
	"log"
	"time"

	"kasjer/internal/config"
	"kasjer/internal/database"
	"kasjer/internal/models"
	"kasjer/internal/websocket"
)

// Store is the Record Store as the handlers see it. *database.Store
// satisfies it.
type Store interface {
	Available() bool
	Ping(ctx context.Context) error

	CreateUser(ctx context.Context, arg database.CreateUserParams) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByCredentials(ctx context.Context, email, password string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)

	CreateDeposit(ctx context.Context, arg database.CreateDepositParams) (*models.Deposit, error)
	ListDeposits(ctx context.Context) ([]models.Deposit, error)
	CreateWithdrawal(ctx context.Context, arg database.CreateWithdrawalParams) (*models.Withdrawal, error)
	ListWithdrawals(ctx context.Context) ([]models.Withdrawal, error)

	CreateMessage(ctx context.Context, arg database.CreateMessageParams) (*models.Message, error)
	CreateBroadcast(ctx context.Context, arg database.BroadcastParams) ([]models.Message, error)
	ListMessagesByUser(ctx context.Context, userID string) ([]models.Message, error)
	CountUnreadMessages(ctx context.Context, userID string) (int64, error)
	MarkMessageRead(ctx context.Context, messageID, userID string) (*models.Message, error)
}

// EventPublisher hands cashier events to the back office.
type EventPublisher interface {
	PublishEvent(ctx context.Context, eventType string, payload any) error
}

type Server struct {
	config *config.Config
	store  Store
	events EventPublisher
	wsHub  *websocket.Hub
	now    func() time.Time
}

// NewServer wires the handlers. events and wsHub may be nil.
func NewServer(cfg *config.Config, store Store, events EventPublisher, wsHub *websocket.Hub) *Server {
	return &Server{
		config: cfg,
		store:  store,
		events: events,
		wsHub:  wsHub,
		now:    time.Now,
	}
}

// requestTime prefers the server clock; the client's timestamp is only used
// when no server time is available.
func (s *Server) requestTime(clientTimestamp string) time.Time {
	if s.now != nil {
		if t := s.now(); !t.IsZero() {
			return t.UTC()
		}
	}
	if parsed, err := time.Parse(time.RFC3339, clientTimestamp); err == nil {
		return parsed.UTC()
	}
	return time.Now().UTC()
}

// publish never fails the request: by the time it runs the record is stored.
func (s *Server) publish(ctx context.Context, eventType string, payload any) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishEvent(ctx, eventType, payload); err != nil {
		log.Printf("WARN: could not publish %s: %v", eventType, err)
		queuePublishFailures.WithLabelValues(eventType).Inc()
	}
}

func (s *Server) notify(userID, eventType string, data any) {
	if s.wsHub == nil {
		return
	}
	s.wsHub.Notify(userID, eventType, data)
}
