package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/andilac/lacteos-api/internal/application/purchasing"
	"github.com/andilac/lacteos-api/internal/domain/entity"
	"github.com/andilac/lacteos-api/pkg/config"
)

var _ purchasing.WhatsAppSender = (*WhatsAppSender)(nil)

// WhatsAppSender envía el resumen de la orden por un gateway HTTP de WhatsApp.
// Con APIURL vacío opera en modo simulado: solo registra el mensaje en el log.
type WhatsAppSender struct {
	cfg    config.WhatsAppConfig
	client *http.Client
	log    zerolog.Logger
}

// NewWhatsAppSender construye el remitente de WhatsApp.
func NewWhatsAppSender(cfg config.WhatsAppConfig, log zerolog.Logger) *WhatsAppSender {
	return &WhatsAppSender{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log,
	}
}

type whatsAppMessage struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

// SendPurchaseOrder envía el resumen de la orden al teléfono del proveedor.
func (s *WhatsAppSender) SendPurchaseOrder(ctx context.Context, phone string, order *entity.PurchaseOrder) error {
	if phone == "" {
		return fmt.Errorf("whatsapp: teléfono vacío")
	}

	body := fmt.Sprintf(
		"Orden de compra %s emitida por $%s. Fecha esperada de entrega: %s.",
		order.Number, order.Total.StringFixed(2), order.ExpectedDate.Format("02/01/2006"),
	)

	if s.cfg.APIURL == "" {
		s.log.Info().
			Str("order", order.Number).
			Str("phone", phone).
			Str("body", body).
			Msg("whatsapp en modo simulado: mensaje no enviado")
		return nil
	}

	payload, err := json.Marshal(whatsAppMessage{To: phone, Body: body})
	if err != nil {
		return fmt.Errorf("whatsapp: serializar mensaje: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.APIURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("whatsapp: armar request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.Token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp: enviar mensaje: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		s.log.Error().
			Int("status", resp.StatusCode).
			Str("order", order.Number).
			Str("phone", phone).
			Msg("gateway whatsapp rechazó el envío")
		return fmt.Errorf("whatsapp: envío rechazado, status %d", resp.StatusCode)
	}

	s.log.Info().
		Str("order", order.Number).
		Str("phone", phone).
		Msg("orden enviada por whatsapp")
	return nil
}
