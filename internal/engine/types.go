package engine

// PlayerIndex is a seat position at the table, counted clockwise from zero.
type PlayerIndex = int

// NoPlayer marks an event or request with no associated player.
const NoPlayer PlayerIndex = -1

// Alignment is the team a player wins with.
type Alignment int

const (
	AlignmentGood Alignment = iota
	AlignmentEvil
	// AlignmentAny is only ever an apparent alignment: the role may register either way.
	AlignmentAny
)

var alignmentNames = map[Alignment]string{
	AlignmentGood: "Good",
	AlignmentEvil: "Evil",
	AlignmentAny:  "Any",
}

func (a Alignment) String() string {
	if name, ok := alignmentNames[a]; ok {
		return name
	}
	return "Unknown"
}

// CharacterType classifies a role.
type CharacterType int

const (
	Townsfolk CharacterType = iota
	Outsider
	Minion
	Demon
	// AnyType is only ever an apparent type.
	AnyType
)

var characterTypeNames = map[CharacterType]string{
	Townsfolk: "Townsfolk",
	Outsider:  "Outsider",
	Minion:    "Minion",
	Demon:     "Demon",
	AnyType:   "Any",
}

func (c CharacterType) String() string {
	if name, ok := characterTypeNames[c]; ok {
		return name
	}
	return "Unknown"
}

// DefaultAlignment is the alignment a role of this type starts with.
func (c CharacterType) DefaultAlignment() Alignment {
	switch c {
	case Townsfolk, Outsider:
		return AlignmentGood
	case Minion, Demon:
		return AlignmentEvil
	default:
		return AlignmentAny
	}
}

// TypeCounts holds one count per character type. It is used both for the
// quota a game targets and for the delta a role applies to that quota.
type TypeCounts struct {
	Townsfolk int `json:"townsfolk"`
	Outsiders int `json:"outsiders"`
	Minions   int `json:"minions"`
	Demons    int `json:"demons"`
}

// Add returns the element-wise sum of both counts.
func (c TypeCounts) Add(o TypeCounts) TypeCounts {
	return TypeCounts{
		Townsfolk: c.Townsfolk + o.Townsfolk,
		Outsiders: c.Outsiders + o.Outsiders,
		Minions:   c.Minions + o.Minions,
		Demons:    c.Demons + o.Demons,
	}
}

// Sub returns the element-wise difference of both counts.
func (c TypeCounts) Sub(o TypeCounts) TypeCounts {
	return TypeCounts{
		Townsfolk: c.Townsfolk - o.Townsfolk,
		Outsiders: c.Outsiders - o.Outsiders,
		Minions:   c.Minions - o.Minions,
		Demons:    c.Demons - o.Demons,
	}
}

// Total is the number of players the counts describe.
func (c TypeCounts) Total() int {
	return c.Townsfolk + c.Outsiders + c.Minions + c.Demons
}

// Of returns the count for a single character type.
func (c TypeCounts) Of(t CharacterType) int {
	switch t {
	case Townsfolk:
		return c.Townsfolk
	case Outsider:
		return c.Outsiders
	case Minion:
		return c.Minions
	case Demon:
		return c.Demons
	default:
		return 0
	}
}
