package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nightly-app/nightly-admin-api/internal/application/ports"
	"github.com/nightly-app/nightly-admin-api/pkg/config"
)

// Verificar en tiempo de compilación que NotificadorClient implementa Notificador.
var _ ports.Notificador = (*NotificadorClient)(nil)

// NotificadorClient adaptador que dispara el fan-out de notificaciones push
// invocando la edge function "enviar-boost". El fan-out real (consulta de
// usuarios cercanos, envío por FCM) vive en esa función, fuera de este sistema.
type NotificadorClient struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

// NewNotificadorClient construye el adaptador.
func NewNotificadorClient(cfg config.AuthConfig) *NotificadorClient {
	return &NotificadorClient{
		baseURL:    strings.TrimSuffix(cfg.URL, "/"),
		serviceKey: cfg.ServiceKey,
		httpClient: &http.Client{
			Timeout: 25 * time.Second,
		},
	}
}

type boostPayload struct {
	LocalID       string  `json:"local_id"`
	Titulo        string  `json:"titulo"`
	Mensaje       string  `json:"mensaje"`
	Promocion     string  `json:"promocion"`
	RadioKm       float64 `json:"radio_km"`
	DuracionHoras int     `json:"duracion_horas"`
}

// EnviarBoost invoca la función de fan-out con los datos del boost.
func (c *NotificadorClient) EnviarBoost(ctx context.Context, boost ports.Boost) error {
	raw, err := json.Marshal(boostPayload{
		LocalID:       boost.LocalID,
		Titulo:        boost.Titulo,
		Mensaje:       boost.Mensaje,
		Promocion:     boost.Promocion,
		RadioKm:       boost.RadioKm,
		DuracionHoras: boost.DuracionHoras,
	})
	if err != nil {
		return fmt.Errorf("notificador: serializar boost: %w", err)
	}

	endpoint := c.baseURL + "/functions/v1/enviar-boost"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("notificador: crear HTTP request: %w", err)
	}
	req.Header.Set("authorization", "Bearer "+c.serviceKey)
	req.Header.Set("content-type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("notificador: timeout o cancelación: %w", ctx.Err())
		}
		return fmt.Errorf("notificador: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rawBody, _ := io.ReadAll(io.LimitReader(resp.Body, 8*1024))
		return fmt.Errorf("notificador: HTTP %d: %s", resp.StatusCode, string(rawBody))
	}
	return nil
}
