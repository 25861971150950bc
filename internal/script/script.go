// Package script loads role scripts and knows the setup tables: the night
// order, the character-type quota per player count and random role draws.
package script

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/KirkDiggler/grimoire/internal/engine"
)

type metadata struct {
	ID     string `json:"id"`
	Author string `json:"author"`
	Name   string `json:"name"`
}

// Load parses a script file: a JSON array of role ids with an optional
// metadata object. The default night order is attached.
func Load(r io.Reader) (engine.Script, error) {
	var entries []json.RawMessage
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return engine.Script{}, fmt.Errorf("decoding script: %w", err)
	}

	s := engine.Script{Order: DefaultOrder()}
	for i, raw := range entries {
		raw = bytes.TrimSpace(raw)
		switch {
		case len(raw) > 0 && raw[0] == '"':
			var id string
			if err := json.Unmarshal(raw, &id); err != nil {
				return engine.Script{}, fmt.Errorf("entry %d: %w", i, err)
			}
			s.Roles = append(s.Roles, normalize(id))
		case len(raw) > 0 && raw[0] == '{':
			var meta metadata
			if err := json.Unmarshal(raw, &meta); err != nil {
				return engine.Script{}, fmt.Errorf("entry %d: %w", i, err)
			}
			s.ID, s.Name, s.Author = meta.ID, meta.Name, meta.Author
		default:
			return engine.Script{}, fmt.Errorf("%w: entry %d", ErrInvalidEntry, i)
		}
	}
	if len(s.Roles) == 0 {
		return engine.Script{}, ErrNoRoles
	}
	return s, nil
}

// normalize accepts ids written with spaces, dashes or underscores.
func normalize(id string) engine.RoleName {
	id = strings.ToLower(id)
	id = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(id)
	return engine.RoleName(id)
}

// TroubleBrewing is the built-in beginner script.
func TroubleBrewing() engine.Script {
	return engine.Script{
		ID:     "tb",
		Name:   "Trouble Brewing",
		Author: "The Pandemonium Institute",
		Roles: []engine.RoleName{
			engine.RoleWasherwoman,
			engine.RoleLibrarian,
			engine.RoleInvestigator,
			engine.RoleChef,
			engine.RoleEmpath,
			engine.RoleFortuneTeller,
			engine.RoleUndertaker,
			engine.RoleMonk,
			engine.RoleRavenkeeper,
			engine.RoleVirgin,
			engine.RoleSlayer,
			engine.RoleSoldier,
			engine.RoleMayor,

			engine.RoleButler,
			engine.RoleDrunk,
			engine.RoleRecluse,
			engine.RoleSaint,

			engine.RolePoisoner,
			engine.RoleSpy,
			engine.RoleScarletWoman,
			engine.RoleBaron,

			engine.RoleImp,
		},
		Order: DefaultOrder(),
	}
}

// DefaultOrder is the night order shared by every script. Roles missing
// from a table do not wake in that phase.
func DefaultOrder() engine.NightOrder {
	return engine.NightOrder{
		Setup: map[engine.RoleName]int{
			engine.RoleDrunk:         1,
			engine.RoleWasherwoman:   45,
			engine.RoleLibrarian:     46,
			engine.RoleInvestigator:  47,
			engine.RoleFortuneTeller: 50,
		},
		NightOne: map[engine.RoleName]int{
			engine.RolePoisoner:      26,
			engine.RoleWasherwoman:   45,
			engine.RoleLibrarian:     46,
			engine.RoleInvestigator:  47,
			engine.RoleChef:          48,
			engine.RoleEmpath:        49,
			engine.RoleFortuneTeller: 50,
			engine.RoleButler:        51,
			engine.RoleSpy:           65,
		},
		Night: map[engine.RoleName]int{
			engine.RolePoisoner:      12,
			engine.RoleInnkeeper:     14,
			engine.RoleMonk:          19,
			engine.RoleScarletWoman:  28,
			engine.RoleImp:           34,
			engine.RoleRavenkeeper:   67,
			engine.RoleEmpath:        68,
			engine.RoleFortuneTeller: 69,
			engine.RoleUndertaker:    70,
			engine.RoleButler:        83,
			engine.RoleSpy:           84,
		},
	}
}
