// Package notify implementa los canales salientes de la orden de compra:
// correo (SendGrid, con el PDF adjunto) y WhatsApp (gateway HTTP).
package notify

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/andilac/lacteos-api/internal/application/purchasing"
	"github.com/andilac/lacteos-api/internal/domain/entity"
	"github.com/andilac/lacteos-api/pkg/config"
)

var _ purchasing.EmailSender = (*SendGridEmailSender)(nil)

// SendGridEmailSender envía la orden de compra por correo con el PDF adjunto.
type SendGridEmailSender struct {
	cfg config.MailConfig
	log zerolog.Logger
}

// NewSendGridEmailSender construye el remitente de correo.
func NewSendGridEmailSender(cfg config.MailConfig, log zerolog.Logger) *SendGridEmailSender {
	return &SendGridEmailSender{cfg: cfg, log: log}
}

// SendPurchaseOrder envía la orden al proveedor con el PDF adjunto.
func (s *SendGridEmailSender) SendPurchaseOrder(ctx context.Context, to string, order *entity.PurchaseOrder, pdf []byte) error {
	if s.cfg.SendGridAPIKey == "" {
		return fmt.Errorf("sendgrid: api key no configurada")
	}
	if to == "" {
		return fmt.Errorf("sendgrid: destinatario vacío")
	}

	subject := fmt.Sprintf("Orden de Compra %s — %s", order.Number, s.cfg.FromName)
	body := fmt.Sprintf(
		"Estimado proveedor:\n\nAdjuntamos la orden de compra %s por un total de $%s.\n"+
			"Fecha esperada de entrega: %s.\n\nSaludos cordiales,\n%s",
		order.Number, order.Total.StringFixed(2),
		order.ExpectedDate.Format("02/01/2006"), s.cfg.FromName,
	)

	message := mail.NewSingleEmail(
		mail.NewEmail(s.cfg.FromName, s.cfg.FromEmail),
		subject,
		mail.NewEmail("", to),
		body,
		fmt.Sprintf("<pre>%s</pre>", body),
	)

	attachment := mail.NewAttachment()
	attachment.SetContent(base64.StdEncoding.EncodeToString(pdf))
	attachment.SetType("application/pdf")
	attachment.SetFilename(order.Number + ".pdf")
	attachment.SetDisposition("attachment")
	message.AddAttachment(attachment)

	client := sendgrid.NewSendClient(s.cfg.SendGridAPIKey)
	resp, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid: enviar correo: %w", err)
	}
	if resp.StatusCode >= 400 {
		s.log.Error().
			Int("status", resp.StatusCode).
			Str("order", order.Number).
			Str("to", to).
			Msg("sendgrid rechazó el envío")
		return fmt.Errorf("sendgrid: envío rechazado, status %d", resp.StatusCode)
	}

	s.log.Info().
		Str("order", order.Number).
		Str("to", to).
		Int("status", resp.StatusCode).
		Msg("orden enviada por correo")
	return nil
}
