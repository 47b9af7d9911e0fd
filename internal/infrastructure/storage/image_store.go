// Package storage persiste las imágenes subidas como data URI base64 bajo
// la raíz pública. En DB solo se guarda la ruta relativa
// (images/<categoría>/<archivo>); el cliente la resuelve contra su base URL.
package storage

import (
	"encoding/base64"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Comercia-api/internal/domain"
)

// Categorías de imagen conocidas (subdirectorios bajo images/).
const (
	CategoryCompanies  = "companies"
	CategoryProducts   = "products"
	CategoryVariations = "variations"
	CategoryProfiles   = "profiles"
)

// dataURIPattern: data:image/<subtipo>;base64,<payload>
var dataURIPattern = regexp.MustCompile(`^data:image/([A-Za-z0-9]+);base64,(.+)$`)

var allowedTypes = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
	"png":  true,
}

// ImageStore escribe y elimina imágenes bajo publicDir. No hay transacción
// entre archivo y DB: los casos de uso siguen la disciplina de dos fases
// (escribir el archivo nuevo, confirmar la DB y recién entonces eliminar el
// anterior; si la DB falla, eliminar el recién escrito).
type ImageStore struct {
	publicDir string
}

// NewImageStore construye el store sobre la raíz pública configurada.
func NewImageStore(publicDir string) *ImageStore {
	return &ImageStore{publicDir: publicDir}
}

// Save valida y persiste un data URI de imagen en images/<category>/ con
// nombre aleatorio y la extensión validada. Devuelve la ruta relativa.
//
// Errores: domain.ErrImageMalformed si el string no es un data URI de
// imagen, domain.ErrImageType si el subtipo no está permitido,
// domain.ErrImageDecode si el base64 no decodifica. En cualquier fallo no
// se escribe nada.
func (s *ImageStore) Save(dataURI, category string) (string, error) {
	m := dataURIPattern.FindStringSubmatch(dataURI)
	if m == nil {
		return "", domain.ErrImageMalformed
	}

	ext := strings.ToLower(m[1])
	if !allowedTypes[ext] {
		return "", domain.ErrImageType
	}

	// El transporte de formularios convierte '+' en espacio; restaurarlos
	// antes de decodificar.
	payload := strings.ReplaceAll(m[2], " ", "+")
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", domain.ErrImageDecode
	}

	dir := filepath.Join(s.publicDir, "images", category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("crear directorio de imágenes: %w", err)
	}

	name := uuid.New().String() + "." + ext
	if err := os.WriteFile(filepath.Join(dir, name), raw, 0o644); err != nil {
		return "", fmt.Errorf("escribir imagen: %w", err)
	}

	return path.Join("images", category, name), nil
}

// Remove elimina un archivo previamente guardado por su ruta relativa.
// Un archivo inexistente no es error (delete idempotente).
func (s *ImageStore) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}
	clean := filepath.Clean(relPath)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return fmt.Errorf("ruta de imagen inválida: %s", relPath)
	}
	err := os.Remove(filepath.Join(s.publicDir, clean))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("eliminar imagen: %w", err)
	}
	return nil
}

// AbsPath devuelve la ruta absoluta en disco de una ruta relativa guardada.
func (s *ImageStore) AbsPath(relPath string) string {
	return filepath.Join(s.publicDir, filepath.Clean(relPath))
}
