package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pedebot/internal/bot"
	"pedebot/internal/monitoring"
	"pedebot/internal/redis"
	"pedebot/internal/repository"
	"pedebot/pkg/orders"
)

// ChatService resolves one conversation turn end to end: session load,
// engine run, optional assistant fallback, order submission, session save.
type ChatService interface {
	ProcessTurn(ctx context.Context, conversationID, message string) (string, bot.Reply, error)
	ResetSession(ctx context.Context, conversationID string) error
}

type chatService struct {
	sessions    *redis.Client
	catalogRepo repository.CatalogRepository
	storeRepo   repository.StoreRepository
	orderClient *orders.Client
	assistant   Assistant
	storeSlug   string
	sessionTTL  time.Duration
	logger      *zap.Logger
}

func NewChatService(
	sessions *redis.Client,
	catalogRepo repository.CatalogRepository,
	storeRepo repository.StoreRepository,
	orderClient *orders.Client,
	assistant Assistant,
	storeSlug string,
	sessionTTL time.Duration,
	logger *zap.Logger,
) ChatService {
	return &chatService{
		sessions:    sessions,
		catalogRepo: catalogRepo,
		storeRepo:   storeRepo,
		orderClient: orderClient,
		assistant:   assistant,
		storeSlug:   storeSlug,
		sessionTTL:  sessionTTL,
		logger:      logger,
	}
}

func (s *chatService) ProcessTurn(ctx context.Context, conversationID, message string) (string, bot.Reply, error) {
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	session, err := s.sessions.GetSession(ctx, conversationID)
	if err != nil {
		if err != redis.ErrSessionNotFound {
			s.logger.Warn("session load failed, starting fresh",
				zap.String("conversation_id", conversationID), zap.Error(err))
		}
		session = bot.NewSession()
	}

	catalog, err := s.catalogRepo.Snapshot()
	if err != nil {
		return conversationID, bot.Reply{}, fmt.Errorf("failed to load catalog: %w", err)
	}
	store, err := s.storeRepo.Snapshot(s.storeSlug)
	if err != nil {
		return conversationID, bot.Reply{}, fmt.Errorf("failed to load store settings: %w", err)
	}

	fee := func(neighborhood string) float64 {
		f, err := s.storeRepo.DeliveryFee(neighborhood)
		if err != nil {
			return store.DeliveryFeeFlat
		}
		return f
	}

	engine := bot.NewEngine(catalog, store, fee)
	result := engine.HandleTurn(session, message)
	reply := result.Reply

	switch {
	case result.Submit != nil:
		resp, err := s.orderClient.CreateOrder(ctx, result.Submit)
		if err != nil {
			// Session stays at the confirm step; the customer can retry.
			monitoring.OrdersSubmitted.WithLabelValues("error").Inc()
			s.logger.Error("order submission failed",
				zap.String("conversation_id", conversationID),
				zap.String("order_code", result.Submit.OrderCode),
				zap.Error(err))
			reply = bot.SubmitFailureReply(err.Error())
		} else {
			monitoring.OrdersSubmitted.WithLabelValues("success").Inc()
			s.logger.Info("order submitted",
				zap.String("conversation_id", conversationID),
				zap.String("order_code", result.Submit.OrderCode),
				zap.String("order_id", resp.Data.OrderID),
				zap.Float64("total", result.Submit.Total))
			session.Reset()
			reply = bot.SubmitSuccessReply(result.Submit.OrderCode)
		}
	case !result.Handled:
		// The engine already filled Reply with the canonical redirect; the
		// assistant only upgrades it when available and successful.
		if s.assistant != nil && s.assistant.Enabled() {
			text, err := s.assistant.Reply(ctx, message, storeContext(store))
			if err != nil || text == "" {
				monitoring.AssistantCalls.WithLabelValues("error").Inc()
				s.logger.Debug("assistant fallback failed", zap.Error(err))
			} else {
				monitoring.AssistantCalls.WithLabelValues("success").Inc()
				reply = bot.Reply{Text: text}
			}
		}
	}

	if err := s.sessions.SetSession(ctx, conversationID, session, s.sessionTTL); err != nil {
		return conversationID, bot.Reply{}, fmt.Errorf("failed to persist session: %w", err)
	}

	return conversationID, reply, nil
}

func (s *chatService) ResetSession(ctx context.Context, conversationID string) error {
	return s.sessions.DeleteSession(ctx, conversationID)
}

func storeContext(store bot.Store) string {
	return fmt.Sprintf("Nome: %s\nEndereço: %s\nTelefone: %s\nHorário: %s",
		store.Name, store.Address, store.Phone, store.OpeningHours)
}
