// Package roster loads the official roster the vote extractor matches
// against. The roster is seed data: read-only to the ingestion core.
package roster

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/opengovaccess/votewatch/internal/domain"
)

type rosterFile struct {
	Officials []officialEntry `yaml:"officials"`
}

type officialEntry struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	District int    `yaml:"district"`
	Initials string `yaml:"initials"`
	Active   *bool  `yaml:"active"`
}

// Load decodes a YAML roster file.
func Load(r io.Reader) ([]domain.Official, error) {
	decoder := yaml.NewDecoder(r)
	var file rosterFile
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode roster: %w", err)
	}

	officials := make([]domain.Official, 0, len(file.Officials))
	for _, e := range file.Officials {
		if e.Name == "" {
			return nil, fmt.Errorf("roster entry without a name")
		}

		officialType := domain.OfficialType(e.Type)
		switch officialType {
		case "":
			officialType = domain.OfficialSupervisor
		case domain.OfficialSupervisor, domain.OfficialMayor:
		default:
			return nil, fmt.Errorf("unknown official type %q for %s", e.Type, e.Name)
		}

		active := true
		if e.Active != nil {
			active = *e.Active
		}

		officials = append(officials, domain.Official{
			Name:     e.Name,
			Type:     officialType,
			District: e.District,
			Initials: e.Initials,
			Active:   active,
		})
	}

	return officials, nil
}

// Default returns the 2025 San Francisco roster: the mayor and the eleven
// district supervisors.
func Default() []domain.Official {
	return []domain.Official{
		{Name: "Daniel Lurie", Type: domain.OfficialMayor, Initials: "DL", Active: true},
		{Name: "Connie Chan", Type: domain.OfficialSupervisor, District: 1, Initials: "CC", Active: true},
		{Name: "Catherine Stefani", Type: domain.OfficialSupervisor, District: 2, Initials: "CS", Active: true},
		{Name: "Aaron Peskin", Type: domain.OfficialSupervisor, District: 3, Initials: "AP", Active: true},
		{Name: "Joel Engardio", Type: domain.OfficialSupervisor, District: 4, Initials: "JE", Active: true},
		{Name: "Dean Preston", Type: domain.OfficialSupervisor, District: 5, Initials: "DP", Active: true},
		{Name: "Matt Dorsey", Type: domain.OfficialSupervisor, District: 6, Initials: "MD", Active: true},
		{Name: "Myrna Melgar", Type: domain.OfficialSupervisor, District: 7, Initials: "MM", Active: true},
		{Name: "Rafael Mandelman", Type: domain.OfficialSupervisor, District: 8, Initials: "RM", Active: true},
		{Name: "Hillary Ronen", Type: domain.OfficialSupervisor, District: 9, Initials: "HR", Active: true},
		{Name: "Shamann Walton", Type: domain.OfficialSupervisor, District: 10, Initials: "SW", Active: true},
		{Name: "Ahsha Safai", Type: domain.OfficialSupervisor, District: 11, Initials: "AS", Active: true},
	}
}
