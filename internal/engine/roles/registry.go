// Package roles implements the Trouble Brewing characters plus the
// Innkeeper on top of the engine's role hooks.
package roles

import "github.com/KirkDiggler/grimoire/internal/engine"

var constructors = map[engine.RoleName]engine.Constructor{
	engine.RoleWasherwoman:   NewWasherwoman,
	engine.RoleLibrarian:     NewLibrarian,
	engine.RoleInvestigator:  NewInvestigator,
	engine.RoleChef:          NewChef,
	engine.RoleEmpath:        NewEmpath,
	engine.RoleFortuneTeller: NewFortuneTeller,
	engine.RoleUndertaker:    NewUndertaker,
	engine.RoleMonk:          NewMonk,
	engine.RoleRavenkeeper:   NewRavenkeeper,
	engine.RoleVirgin:        NewVirgin,
	engine.RoleSlayer:        NewSlayer,
	engine.RoleSoldier:       NewSoldier,
	engine.RoleMayor:         NewMayor,
	engine.RoleInnkeeper:     NewInnkeeper,

	engine.RoleButler:  NewButler,
	engine.RoleDrunk:   NewDrunk,
	engine.RoleRecluse: NewRecluse,
	engine.RoleSaint:   NewSaint,

	engine.RolePoisoner:     NewPoisoner,
	engine.RoleSpy:          NewSpy,
	engine.RoleScarletWoman: NewScarletWoman,
	engine.RoleBaron:        NewBaron,

	engine.RoleImp: NewImp,
}

// Register adds every implemented role to reg.
func Register(reg *engine.Registry) {
	for name, c := range constructors {
		reg.Register(name, c)
	}
}

// NewRegistry returns a registry holding every implemented role.
func NewRegistry() *engine.Registry {
	reg := engine.NewRegistry()
	Register(reg)
	return reg
}
