package dto

import (
	"encoding/json"
	"time"
)

// CreateSettingRequest entrada para crear un setting. Value es libre
// (número, string o estructura); el servidor no impone tipado.
type CreateSettingRequest struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// UpdateSettingRequest entrada para actualizar un setting.
type UpdateSettingRequest struct {
	Key   *string         `json:"key"`
	Value json.RawMessage `json:"value"`
}

// SettingResponse salida de un setting.
type SettingResponse struct {
	ID        string          `json:"id"`
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// SettingsMap mapa plano {clave: valor} para consumo del cliente.
type SettingsMap map[string]json.RawMessage
