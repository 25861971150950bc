package roles

import (
	"fmt"

	"github.com/KirkDiggler/grimoire/internal/engine"
)

func name(v engine.View, p engine.PlayerIndex) string {
	pl, err := v.Player(p)
	if err != nil {
		return fmt.Sprintf("seat %d", p)
	}
	return pl.Name
}

func dead(v engine.View, p engine.PlayerIndex) bool {
	pl, err := v.Player(p)
	return err != nil || pl.Dead
}

func used(v engine.View, self engine.PlayerIndex) bool {
	return v.HasStatus(engine.AbilityUsed, self, self)
}

// single extracts the one player a request selected.
func single(a engine.Answer) (engine.PlayerIndex, error) {
	ps, err := engine.Players(a)
	if err != nil {
		return engine.NoPlayer, err
	}
	if len(ps) != 1 {
		return engine.NoPlayer, engine.WrongPlayerCount(1, len(ps))
	}
	return ps[0], nil
}

func notSelf(self engine.PlayerIndex, who string) engine.ValidatorFunc {
	return func(v engine.View, a engine.Answer) error {
		ps, err := engine.Players(a)
		if err != nil {
			return err
		}
		for _, p := range ps {
			if p == self {
				return engine.InvalidPlayer(fmt.Sprintf("the %s cannot choose themselves", who))
			}
		}
		return nil
	}
}

func alive(v engine.View, a engine.Answer) error {
	ps, err := engine.Players(a)
	if err != nil {
		return err
	}
	for _, p := range ps {
		if dead(v, p) {
			return engine.InvalidPlayer(name(v, p) + " is dead")
		}
	}
	return nil
}

func all(validators ...engine.ValidatorFunc) engine.ValidatorFunc {
	return func(v engine.View, a engine.Answer) error {
		for _, validate := range validators {
			if err := validate(v, a); err != nil {
				return err
			}
		}
		return nil
	}
}

// registersEvil is the alignment computed information sees. A player who
// may register either way counts as their true alignment; the moderator can
// pin it with AppearsGood or AppearsEvil.
func registersEvil(v engine.View, p engine.PlayerIndex) bool {
	a := v.RegisteredAlignment(p)
	if a == engine.AlignmentAny {
		pl, err := v.Player(p)
		if err != nil {
			return false
		}
		a = pl.Alignment
	}
	return a == engine.AlignmentEvil
}

// registersAs is the character type computed information sees, with the
// same fallback as registersEvil.
func registersAs(v engine.View, p engine.PlayerIndex, t engine.CharacterType) bool {
	rt := v.RegisteredType(p)
	if rt == engine.AnyType {
		pl, err := v.Player(p)
		if err != nil {
			return false
		}
		rt = pl.Role.Type()
	}
	return rt == t
}

// mayRegisterAs is the looser check used to validate moderator choices.
func mayRegisterAs(v engine.View, p engine.PlayerIndex, t engine.CharacterType) bool {
	rt := v.RegisteredType(p)
	return rt == t || rt == engine.AnyType
}

func livingOfType(v engine.View, t engine.CharacterType) []engine.PlayerIndex {
	var out []engine.PlayerIndex
	for p, pl := range v.Players() {
		if !pl.Dead && pl.Role.Type() == t {
			out = append(out, p)
		}
	}
	return out
}

// changedThisPhase reports whether p received a new role during the current phase.
func changedThisPhase(v engine.View, p engine.PlayerIndex) bool {
	_, ok := v.Log().SearchCurrentPhase(func(e engine.Event) bool {
		return e.Type == engine.EventRoleChanged && e.Player == p
	})
	return ok
}
