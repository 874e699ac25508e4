// Package facility provides models, repositories and services for the
// public services (health posts, schools, social assistance units and
// the like) surfaced to kiosk users, including proximity search and
// bulk import from spreadsheet files.
package facility

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"
)

// Facility is a public service point with a fixed location. The ID is
// deterministic over name and coordinates, so re-creating the same
// facility (for example on a repeated bulk import) overwrites rather
// than duplicates.
type Facility struct {
	FacilityID   string    `bson:"servico_id" json:"servico_id"`
	Name         string    `bson:"nome" json:"nome"`
	Type         string    `bson:"tipo" json:"tipo"`
	Latitude     float64   `bson:"latitude" json:"latitude"`
	Longitude    float64   `bson:"longitude" json:"longitude"`
	Address      *string   `bson:"endereco,omitempty" json:"endereco,omitempty"`
	Phone        *string   `bson:"telefone,omitempty" json:"telefone,omitempty"`
	OpeningHours *string   `bson:"horario_funcionamento,omitempty" json:"horario_funcionamento,omitempty"`
	Description  *string   `bson:"descricao,omitempty" json:"descricao,omitempty"`
	Active       bool      `bson:"ativo" json:"ativo"`
	CreatedAt    time.Time `bson:"data_criacao" json:"data_criacao"`
	UpdatedAt    time.Time `bson:"ultima_atualizacao" json:"ultima_atualizacao"`
}

// GenerateID derives the 12-character identifier from the name and
// coordinates. No timestamp participates: the same facility always
// hashes to the same ID.
func GenerateID(name string, latitude, longitude float64) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s_%v_%v", name, latitude, longitude)))
	return hex.EncodeToString(sum[:])[:12]
}

// New creates an active facility with a deterministic ID.
func New(name, facilityType string, latitude, longitude float64) *Facility {
	now := time.Now().UTC()
	return &Facility{
		FacilityID: GenerateID(name, latitude, longitude),
		Name:       name,
		Type:       facilityType,
		Latitude:   latitude,
		Longitude:  longitude,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
