package service

import (
	"context"
	"strings"
	"time"

	"estudio/internal/domain"
	"estudio/internal/events"
	"estudio/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type MessageService struct {
	messages domain.MessageRepository
	profiles domain.ProfileRepository
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewMessageService(messages domain.MessageRepository, profiles domain.ProfileRepository, eventBus domain.EventPublisher, logger *zerolog.Logger) *MessageService {
	return &MessageService{
		messages: messages,
		profiles: profiles,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Send delivers a message. Members write to the studio, not to a person:
// when no recipient is set the message routes to the first admin on file.
// Admin messages require an explicit recipient.
func (s *MessageService) Send(ctx context.Context, senderID, senderRole, recipientID, subject, content string) (*models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyMessage
	}

	isAdmin := senderRole == models.RoleAdmin
	if recipientID == "" {
		if isAdmin {
			return nil, ErrNoRecipient
		}
		admins, err := s.profiles.ListAdminIDs(ctx)
		if err != nil {
			return nil, err
		}
		if len(admins) == 0 {
			return nil, ErrNoRecipient
		}
		recipientID = admins[0]
	}

	message := &models.Message{
		ID:             uuid.NewString(),
		SenderID:       senderID,
		RecipientID:    recipientID,
		Subject:        subject,
		Content:        content,
		IsAdminMessage: isAdmin,
		CreatedAt:      time.Now(),
	}

	if err := s.messages.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	if s.eventBus != nil {
		payload := events.MessageEventPayload{
			MessageID:   message.ID,
			SenderID:    message.SenderID,
			RecipientID: message.RecipientID,
			Subject:     message.Subject,
			CreatedAt:   message.CreatedAt,
		}
		if err := s.eventBus.PublishJSON(events.EventMessageCreated, payload); err != nil {
			s.logger.Error().Err(err).Str("message_id", message.ID).Msg("publish event error")
		}
	}

	return message, nil
}

// ListForUser merges sent and received messages, newest first.
func (s *MessageService) ListForUser(ctx context.Context, userID string, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = models.DefaultMessagesLimit
	}
	return s.messages.ListMessagesForUser(ctx, userID, limit)
}

// MarkRead flips the read flag; only the recipient may do it.
func (s *MessageService) MarkRead(ctx context.Context, userID, messageID string) error {
	message, err := s.messages.GetMessage(ctx, messageID)
	if err != nil {
		return err
	}
	if message == nil {
		return ErrMessageNotFound
	}
	if message.RecipientID != userID {
		return ErrNotRecipient
	}

	return s.messages.MarkMessageRead(ctx, messageID)
}

func (s *MessageService) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.messages.CountUnread(ctx, userID)
}
