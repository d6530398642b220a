package notify

import (
	"context"
	"fmt"

	"atelier/internal/orders"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Sender is the part of *tgbotapi.BotAPI the notifier needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier posts new orders to the workshop's admin channel.
type TelegramNotifier struct {
	bot       Sender
	channelID int64
	logger    *zap.Logger
}

func NewTelegramNotifier(token string, channelID int64, logger *zap.Logger) (*TelegramNotifier, error) {
	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	logger.Info("Bot authorized",
		zap.String("username", botAPI.Self.UserName),
		zap.Int64("id", botAPI.Self.ID))

	return NewTelegramNotifierWithSender(botAPI, channelID, logger), nil
}

func NewTelegramNotifierWithSender(bot Sender, channelID int64, logger *zap.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		bot:       bot,
		channelID: channelID,
		logger:    logger,
	}
}

func (n *TelegramNotifier) NotifyNewOrder(ctx context.Context, order orders.Order) error {
	if n.channelID == 0 {
		n.logger.Warn("Channel notifications disabled - no channel ID configured")
		return nil
	}

	msg := tgbotapi.NewMessage(n.channelID, orders.FormatNotification(order))
	msg.DisableWebPagePreview = true

	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("send channel notification: %w", err)
	}

	n.logger.Debug("Order notification sent",
		zap.String("order_id", order.ID),
		zap.Int64("channel_id", n.channelID))
	return nil
}

// NopNotifier is used when no bot token is configured.
type NopNotifier struct{}

func (NopNotifier) NotifyNewOrder(context.Context, orders.Order) error {
	return nil
}
