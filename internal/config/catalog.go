package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog overrides the env-configured league and team lists from a YAML file.
// Empty sections leave the env values in place.
type Catalog struct {
	Competitions                map[string]string `yaml:"competitions"`
	TeamCompetitionCodes        []string          `yaml:"team_competition_codes"`
	PopularTeamCompetitionCodes []string          `yaml:"popular_team_competition_codes"`
	PopularPlayerTeamIDs        []int64           `yaml:"popular_player_team_ids"`
	PlayerLeagueIDs             []int64           `yaml:"player_league_ids"`
	FixtureLeagueIDs            []int64           `yaml:"fixture_league_ids"`
	TransferTeamIDs             []int64           `yaml:"transfer_team_ids"`
}

func LoadCatalogFile(path string) (Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog file %s: %w", path, err)
	}
	return ParseCatalog(raw)
}

func ParseCatalog(raw []byte) (Catalog, error) {
	var out Catalog
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	for _, ids := range [][]int64{out.PopularPlayerTeamIDs, out.PlayerLeagueIDs, out.FixtureLeagueIDs, out.TransferTeamIDs} {
		for _, id := range ids {
			if id <= 0 {
				return Catalog{}, fmt.Errorf("parse catalog: id must be > 0, got %d", id)
			}
		}
	}
	return out, nil
}

func (c Catalog) applyTo(cfg *Config) {
	for code, name := range c.Competitions {
		code = strings.ToUpper(strings.TrimSpace(code))
		name = strings.TrimSpace(name)
		if code == "" || name == "" {
			continue
		}
		cfg.CompetitionNames[code] = name
	}
	if len(c.TeamCompetitionCodes) > 0 {
		cfg.TeamCompetitionCodes = upperAll(append([]string(nil), c.TeamCompetitionCodes...))
	}
	if len(c.PopularTeamCompetitionCodes) > 0 {
		cfg.PopularTeamCompetitionCodes = upperAll(append([]string(nil), c.PopularTeamCompetitionCodes...))
	}
	if len(c.PopularPlayerTeamIDs) > 0 {
		cfg.PopularPlayerTeamIDs = c.PopularPlayerTeamIDs
	}
	if len(c.PlayerLeagueIDs) > 0 {
		cfg.PlayerLeagueIDs = c.PlayerLeagueIDs
	}
	if len(c.FixtureLeagueIDs) > 0 {
		cfg.FixtureLeagueIDs = c.FixtureLeagueIDs
	}
	if len(c.TransferTeamIDs) > 0 {
		cfg.TransferTeamIDs = c.TransferTeamIDs
	}
}
