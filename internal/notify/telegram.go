// Package notify pushes studio events to the staff Telegram channel.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"estudio/internal/config"
	"estudio/internal/domain"
	"estudio/internal/events"
	"estudio/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// botSender is the subset of tgbotapi.BotAPI that the notifier uses.
type botSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type TelegramNotifier struct {
	bot    botSender
	chatID int64
	logger *zerolog.Logger
}

func NewTelegramNotifier(cfg config.TelegramConfig, logger *zerolog.Logger) (*TelegramNotifier, error) {
	botAPI, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	botAPI.Debug = cfg.Debug

	logger.Info().Str("bot", botAPI.Self.UserName).Msg("telegram notifier authorized")
	return &TelegramNotifier{bot: botAPI, chatID: cfg.AdminChatID, logger: logger}, nil
}

func (n *TelegramNotifier) NotifyBookingCreated(_ context.Context, booking models.Booking, memberName string) error {
	text := fmt.Sprintf("*New booking*\n%s\n%s, %02d:00-%02d:00\nMember: %s",
		booking.Title,
		booking.StartTime.Format("02.01.2006"),
		booking.StartTime.Hour(), booking.EndTime.Hour(),
		memberName)

	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = "Markdown"

	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram notification: %w", err)
	}
	return nil
}

// AttachBookingNotifications forwards booking_created events from the bus to
// the staff channel. Handler failures are logged, never propagated: a
// Telegram outage must not affect booking writes.
func AttachBookingNotifications(bus *events.EventBus, notifier domain.Notifier, profiles domain.ProfileRepository, logger *zerolog.Logger) {
	bus.Subscribe(events.EventBookingCreated, func(event *events.Event) error {
		var payload events.BookingEventPayload
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			logger.Error().Err(err).Msg("malformed booking event payload")
			return nil
		}

		ctx := context.Background()
		memberName := payload.UserID
		if profile, err := profiles.GetProfile(ctx, payload.UserID); err == nil && profile != nil && profile.FullName != "" {
			memberName = profile.FullName
		}

		booking := models.Booking{
			ID:        payload.BookingID,
			UserID:    payload.UserID,
			Title:     payload.Title,
			StartTime: payload.StartTime,
			EndTime:   payload.EndTime,
		}
		if err := notifier.NotifyBookingCreated(ctx, booking, memberName); err != nil {
			logger.Warn().Err(err).Str("booking_id", payload.BookingID).Msg("failed to notify about booking")
		}
		return nil
	})
}
