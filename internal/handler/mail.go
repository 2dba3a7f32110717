package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/parlour-hub/parlour/backend/internal/domain"
)

// queueMail 把邮件投递到消息队列，由独立的邮件服务消费后发送。
// 投递是尽力而为的：任何失败只记录日志，不会影响触发它的请求
func (h *Handler) queueMail(msg domain.MailMessage) {
	if h.mailChannel == nil {
		return
	}

	body, err := json.Marshal(msg)
	if err != nil {
		slog.Error("邮件序列化失败", "type", msg.Type, "to", msg.To, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.mailChannel.PublishWithContext(
		ctx,
		"",
		"mail_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	); err != nil {
		slog.Error("邮件入队失败", "type", msg.Type, "to", msg.To, "error", err)
	}
}
