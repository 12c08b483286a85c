package rabbitmq

import (
	"github.com/asppibra-dao/core-api/internal/models"
)

// AuditPublisher публикует аудит-события шлюза через канал RabbitMQ.
type AuditPublisher struct {
	ch Channel
}

// NewAuditPublisher создает публикатор поверх открытого канала.
func NewAuditPublisher(ch Channel) *AuditPublisher {
	return &AuditPublisher{ch: ch}
}

// Publish отправляет событие в очередь аудита.
func (p *AuditPublisher) Publish(event models.AuditEvent) error {
	return PublishMessage(p.ch, event)
}
