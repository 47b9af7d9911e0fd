package entity

import (
	"encoding/json"
	"time"
)

// Setting par clave→valor de configuración global. La clave es única; el
// valor es libre (número, string o estructura) y se persiste como JSONB sin
// tipado del lado del servidor.
type Setting struct {
	ID        string
	Key       string
	Value     json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}
