// Package models defines the garden document types carried in viewer links.
package models

import "github.com/paulmach/orb"

// SchemaVersion is the document schema version written by current producers.
const SchemaVersion = "0.0.2"

// UnitLength is the unit a bed's dimensions are expressed in.
type UnitLength string

const (
	UnitMeters UnitLength = "m"
	UnitFeet   UnitLength = "ft"
	UnitInches UnitLength = "in"
)

// TaskStatus represents the current state of a garden task.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusSkipped   TaskStatus = "skipped"
)

// Valid reports whether s is one of the known task statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusCompleted, TaskStatusSkipped:
		return true
	}
	return false
}

// Coordinates is a geographic location for the garden.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Dimensions is the footprint of a bed.
type Dimensions struct {
	Width  float64    `json:"width"`
	Length float64    `json:"length"`
	Depth  *float64   `json:"depth,omitempty"`
	Unit   UnitLength `json:"unit,omitempty"`
}

// EffectiveUnit returns the declared unit, defaulting to meters.
func (d Dimensions) EffectiveUnit() UnitLength {
	if d.Unit == "" {
		return UnitMeters
	}
	return d.Unit
}

// Planting is one plant instance within a bed. Position is relative to the
// owning bed's origin.
type Planting struct {
	ID              string         `json:"id"`
	Species         string         `json:"species"`
	Variety         string         `json:"variety,omitempty"`
	PlantedOn       string         `json:"planted_on,omitempty"`
	ExpectedHarvest string         `json:"expected_harvest,omitempty"`
	Position        orb.Point      `json:"position"`
	Spacing         *float64       `json:"spacing,omitempty"`
	Notes           string         `json:"notes,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
}

// Label returns "species (variety)" or just the species.
func (p Planting) Label() string {
	if p.Variety != "" {
		return p.Species + " (" + p.Variety + ")"
	}
	return p.Species
}

// Bed is a rectangular planting area. A nil Position means the bed is not
// placed in garden space.
type Bed struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Position   *orb.Point     `json:"position,omitempty"`
	Dimensions Dimensions     `json:"dimensions"`
	SoilType   string         `json:"soil_type,omitempty"`
	Plantings  []Planting     `json:"plantings"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// Placed reports whether the bed has a position in garden space.
func (b Bed) Placed() bool {
	return b.Position != nil
}

// GardenTask is a scheduled action. Related IDs are weak references and may
// not resolve.
type GardenTask struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description,omitempty"`
	TargetDate        string     `json:"target_date"`
	CompletedOn       string     `json:"completed_on,omitempty"`
	Status            TaskStatus `json:"status,omitempty"`
	RelatedPlantingID string     `json:"related_planting_id,omitempty"`
	RelatedBedID      string     `json:"related_bed_id,omitempty"`
}

// Completed reports whether the task carries a completion date. The status
// field is not consulted.
func (t GardenTask) Completed() bool {
	return t.CompletedOn != ""
}

// AgentComment is a note left on the garden by a planning agent.
type AgentComment struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	Comment   string `json:"comment"`
}

// Garden is the root document decoded from a viewer link.
type Garden struct {
	SchemaVersion     string         `json:"schema_version,omitempty"`
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Location          *Coordinates   `json:"location,omitempty"`
	Beds              []Bed          `json:"beds"`
	Tasks             []GardenTask   `json:"tasks"`
	CreatedAt         string         `json:"created_at"`
	AverageLastFrost  string         `json:"average_last_frost,omitempty"`
	AverageFirstFrost string         `json:"average_first_frost,omitempty"`
	AgentComments     []AgentComment `json:"agent_comments,omitempty"`
	Metadata          map[string]any `json:"metadata,omitempty"`
}

// Bed returns the bed with the given ID.
func (g *Garden) Bed(id string) (*Bed, bool) {
	for i := range g.Beds {
		if g.Beds[i].ID == id {
			return &g.Beds[i], true
		}
	}
	return nil, false
}

// PlantingCount returns the number of plantings across all beds.
func (g *Garden) PlantingCount() int {
	n := 0
	for _, b := range g.Beds {
		n += len(b.Plantings)
	}
	return n
}
