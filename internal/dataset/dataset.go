// Package dataset holds the static seed data and turns it into place drafts
// wired to freshly created stations.
package dataset

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"tube_places/internal/domain"
)

//go:embed data/stations.yaml
var stationsYAML []byte

//go:embed data/places.yaml
var placesYAML []byte

// StationSource is one entry of the static station list.
type StationSource struct {
	Name  string   `yaml:"name"`
	Zone  int      `yaml:"zone"`
	Lines []string `yaml:"lines"`
}

// PlaceSource is one entry of the static place list. StationIndex is the
// position of its station in the station list.
type PlaceSource struct {
	Name         string  `yaml:"name"`
	StationIndex int     `yaml:"station"`
	Category     string  `yaml:"category"`
	Description  string  `yaml:"description"`
	Image        string  `yaml:"image"`
	Lat          float64 `yaml:"lat"`
	Long         float64 `yaml:"long"`
	OpeningTimes string  `yaml:"opening_times"`
	Contact      string  `yaml:"contact"`
}

// Stations returns the static station list, without identities.
func Stations() ([]domain.Station, error) {
	var src []StationSource
	if err := yaml.Unmarshal(stationsYAML, &src); err != nil {
		return nil, fmt.Errorf("parse stations: %w", err)
	}
	out := make([]domain.Station, len(src))
	for i, s := range src {
		out[i] = domain.Station{Name: s.Name, Zone: s.Zone, Lines: s.Lines}
	}
	return out, nil
}

// Sources returns the static place list.
func Sources() ([]PlaceSource, error) {
	var src []PlaceSource
	if err := yaml.Unmarshal(placesYAML, &src); err != nil {
		return nil, fmt.Errorf("parse places: %w", err)
	}
	return src, nil
}

// BuildPlaces wires the static place list to stations, the created station
// records in the order of Stations().
func BuildPlaces(stations []domain.Station) ([]domain.PlaceDraft, error) {
	src, err := Sources()
	if err != nil {
		return nil, err
	}
	return Build(src, stations)
}

// Build produces one draft per source, referencing the station at the
// source's index. It fails with a *domain.ShapeError when an index is out of
// range or points at a station without an identity.
func Build(sources []PlaceSource, stations []domain.Station) ([]domain.PlaceDraft, error) {
	out := make([]domain.PlaceDraft, 0, len(sources))
	for i, s := range sources {
		if s.StationIndex < 0 || s.StationIndex >= len(stations) {
			return nil, &domain.ShapeError{
				Index:  i,
				Reason: fmt.Sprintf("station index %d out of range [0, %d)", s.StationIndex, len(stations)),
			}
		}
		st := stations[s.StationIndex]
		if st.ID == "" {
			return nil, &domain.ShapeError{
				Index:  i,
				Reason: fmt.Sprintf("station %d (%s) has no identity", s.StationIndex, st.Name),
			}
		}
		out = append(out, domain.PlaceDraft{
			Name:         s.Name,
			Description:  s.Description,
			Image:        s.Image,
			Lat:          s.Lat,
			Long:         s.Long,
			OpeningTimes: s.OpeningTimes,
			Contact:      s.Contact,
			Category:     s.Category,
			StationID:    st.ID,
			StationName:  st.Name,
		})
	}
	return out, nil
}
