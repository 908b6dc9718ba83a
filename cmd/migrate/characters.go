package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/JaimeStill/agent-starter/internal/agents"
	"github.com/JaimeStill/agent-starter/internal/host"
)

// CharacterSeeder stores one agent record per character file. Records are
// keyed by the character's agent id, so reseeding updates in place.
type CharacterSeeder struct {
	Files []string
}

func (s *CharacterSeeder) Name() string {
	return "characters"
}

func (s *CharacterSeeder) Description() string {
	return "Seeds agent records from character files"
}

func (s *CharacterSeeder) Seed(ctx context.Context, tx *sql.Tx) error {
	for _, path := range s.Files {
		c, err := host.LoadCharacter(path)
		if err != nil {
			return err
		}

		a, err := agents.Upsert(ctx, tx, c.Agent())
		if err != nil {
			return fmt.Errorf("save %s: %w", c.Name, err)
		}
		fmt.Printf("  %s (%s)\n", a.Name, a.ID)
	}
	return nil
}
