package script

import (
	"fmt"
	"slices"

	"github.com/KirkDiggler/grimoire/internal/engine"
)

var quotas = map[int]engine.TypeCounts{
	5:  {Townsfolk: 3, Outsiders: 0, Minions: 1, Demons: 1},
	6:  {Townsfolk: 3, Outsiders: 1, Minions: 1, Demons: 1},
	7:  {Townsfolk: 5, Outsiders: 0, Minions: 1, Demons: 1},
	8:  {Townsfolk: 5, Outsiders: 1, Minions: 1, Demons: 1},
	9:  {Townsfolk: 5, Outsiders: 2, Minions: 1, Demons: 1},
	10: {Townsfolk: 7, Outsiders: 0, Minions: 2, Demons: 1},
	11: {Townsfolk: 7, Outsiders: 1, Minions: 2, Demons: 1},
	12: {Townsfolk: 7, Outsiders: 2, Minions: 2, Demons: 1},
	13: {Townsfolk: 9, Outsiders: 0, Minions: 3, Demons: 1},
	14: {Townsfolk: 9, Outsiders: 1, Minions: 3, Demons: 1},
	15: {Townsfolk: 9, Outsiders: 2, Minions: 3, Demons: 1},
}

// Quotas returns how many of each character type a game of n players holds.
func Quotas(n int) (engine.TypeCounts, error) {
	q, ok := quotas[n]
	if !ok {
		return engine.TypeCounts{}, fmt.Errorf("%w: got %d", ErrUnsupportedPlayerCount, n)
	}
	return q, nil
}

// AdjustedQuotas applies the initialization effects of the chosen roles to
// the base quota for their player count.
func AdjustedQuotas(n int, chosen []engine.RoleName, reg *engine.Registry) (engine.TypeCounts, error) {
	q, err := Quotas(n)
	if err != nil {
		return engine.TypeCounts{}, err
	}
	for _, name := range chosen {
		role, err := reg.New(name)
		if err != nil {
			return engine.TypeCounts{}, err
		}
		if delta, ok := role.InitializationEffect(); ok {
			q = q.Add(delta)
		}
	}
	return q, nil
}

// Draw picks a random role set for n players from the constructible roles
// of s. Evil roles are drawn first so their initialization effects shape
// the good side.
func Draw(n int, s engine.Script, reg *engine.Registry, shuffler engine.Shuffler) ([]engine.RoleName, error) {
	q, err := Quotas(n)
	if err != nil {
		return nil, err
	}

	pools := make(map[engine.CharacterType][]engine.RoleName)
	for _, name := range s.Roles {
		kind, err := reg.TypeOf(name)
		if err != nil {
			continue
		}
		pools[kind] = append(pools[kind], name)
	}
	for _, kind := range []engine.CharacterType{engine.Townsfolk, engine.Outsider, engine.Minion, engine.Demon} {
		pool := pools[kind]
		shuffler.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	}

	var chosen []engine.RoleName
	take := func(kind engine.CharacterType, count int) error {
		pool := pools[kind]
		if count > len(pool) {
			return fmt.Errorf("%w: need %d %s, script has %d", ErrNotEnoughRoles, count, kind, len(pool))
		}
		chosen = append(chosen, pool[:count]...)
		pools[kind] = pool[count:]
		return nil
	}

	for _, kind := range []engine.CharacterType{engine.Demon, engine.Minion} {
		if err := take(kind, q.Of(kind)); err != nil {
			return nil, err
		}
	}
	adjusted, err := AdjustedQuotas(n, chosen, reg)
	if err != nil {
		return nil, err
	}
	for _, kind := range []engine.CharacterType{engine.Outsider, engine.Townsfolk} {
		if err := take(kind, max(adjusted.Of(kind), 0)); err != nil {
			return nil, err
		}
	}

	slices.Sort(chosen)
	return chosen, nil
}
