package engine

import "slices"

// NightOrder ranks roles within each phase where players act in turn.
// Lower ranks resolve first. A role missing from a table is inactive there.
type NightOrder struct {
	Setup    map[RoleName]int `json:"setup"`
	NightOne map[RoleName]int `json:"nightOne"`
	Night    map[RoleName]int `json:"night"`
}

func (o NightOrder) SetupRank(r RoleName) (int, bool) {
	rank, ok := o.Setup[r]
	return rank, ok
}

func (o NightOrder) NightOneRank(r RoleName) (int, bool) {
	rank, ok := o.NightOne[r]
	return rank, ok
}

func (o NightOrder) NightRank(r RoleName) (int, bool) {
	rank, ok := o.Night[r]
	return rank, ok
}

// Script is the pool of roles available in a game variant together with its
// night order.
type Script struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Author string     `json:"author"`
	Roles  []RoleName `json:"roles"`
	Order  NightOrder `json:"order"`
}

// Contains reports whether the role is part of the script.
func (s Script) Contains(r RoleName) bool {
	return slices.Contains(s.Roles, r)
}
