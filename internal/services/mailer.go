package services

import (
	"encoding/json"
	"fmt"
	"log"

	"sneakstore/pkg/rabbitmq"
)

// Email template identifiers understood by the mail worker.
const (
	TemplateAccountLocked     = "account-locked"
	TemplateEmailVerification = "email-verification"
	TemplatePasswordReset     = "password-reset"
)

// Mailer sends a templated email to an address. Delivery is asynchronous;
// implementations only guarantee the job was handed off.
type Mailer interface {
	SendEmail(to string, templateID string, variables map[string]any) error
}

// EmailJob is the payload published to the email queue.
type EmailJob struct {
	To         string         `json:"to"`
	TemplateID string         `json:"template_id"`
	Variables  map[string]any `json:"variables"`
}

// QueueMailer publishes email jobs to RabbitMQ for the mail worker to
// deliver.
type QueueMailer struct {
	mqClient *rabbitmq.Client
}

// NewQueueMailer creates a new QueueMailer.
func NewQueueMailer(mqClient *rabbitmq.Client) *QueueMailer {
	return &QueueMailer{mqClient: mqClient}
}

// SendEmail enqueues an email job. With no broker configured the job is
// logged and dropped, so auth flows keep working in local setups.
func (m *QueueMailer) SendEmail(to string, templateID string, variables map[string]any) error {
	if m.mqClient == nil {
		log.Printf("RabbitMQ client is not initialized. Skipping email %s to %s.", templateID, to)
		return nil
	}

	body, err := json.Marshal(EmailJob{To: to, TemplateID: templateID, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to marshal email job: %w", err)
	}
	if err := m.mqClient.PublishEmailRequested(body); err != nil {
		return fmt.Errorf("failed to enqueue email %s to %s: %w", templateID, to, err)
	}
	return nil
}
