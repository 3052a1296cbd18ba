package holiday

// State is a German federal state code (Bundesland).
type State string

const (
	BW State = "BW" // Baden-Württemberg
	BY State = "BY" // Bayern
	BE State = "BE" // Berlin
	BB State = "BB" // Brandenburg
	HB State = "HB" // Bremen
	HH State = "HH" // Hamburg
	HE State = "HE" // Hessen
	MV State = "MV" // Mecklenburg-Vorpommern
	NI State = "NI" // Niedersachsen
	NW State = "NW" // Nordrhein-Westfalen
	RP State = "RP" // Rheinland-Pfalz
	SL State = "SL" // Saarland
	SN State = "SN" // Sachsen
	ST State = "ST" // Sachsen-Anhalt
	SH State = "SH" // Schleswig-Holstein
	TH State = "TH" // Thüringen
)

// DefaultState is used for empty or unknown codes.
const DefaultState = HH

// Regional identifies an optional holiday that only some states observe.
type Regional int

const (
	Epiphany Regional = iota + 1
	CorpusChristi
	Assumption
	ReformationDay
	AllSaints
	RepentanceDayHoliday
	WorldChildrensDay
	WomensDay
)

// stateOrder is the canonical listing order.
var stateOrder = []State{BW, BY, BE, BB, HB, HH, HE, MV, NI, NW, RP, SL, SN, ST, SH, TH}

// stateHolidays is read-only after package init.
var stateHolidays = map[State][]Regional{
	BW: {Epiphany, CorpusChristi, AllSaints},
	BY: {Epiphany, CorpusChristi, Assumption, AllSaints},
	BE: {WomensDay},
	BB: {ReformationDay},
	HB: {ReformationDay},
	HH: {ReformationDay},
	HE: {CorpusChristi},
	MV: {ReformationDay, WomensDay},
	NI: {ReformationDay},
	NW: {CorpusChristi, AllSaints},
	RP: {CorpusChristi, AllSaints},
	SL: {CorpusChristi, Assumption, AllSaints},
	SN: {ReformationDay, RepentanceDayHoliday},
	ST: {Epiphany, ReformationDay},
	SH: {ReformationDay},
	TH: {ReformationDay, WorldChildrensDay},
}

// Valid reports whether s is one of the 16 state codes.
func (s State) Valid() bool {
	_, ok := stateHolidays[s]
	return ok
}

// Normalize maps unknown codes onto DefaultState.
func (s State) Normalize() State {
	if s.Valid() {
		return s
	}
	return DefaultState
}

func (s State) String() string { return string(s) }

// ParseState never fails: unknown input yields DefaultState.
func ParseState(code string) State {
	return State(code).Normalize()
}

// States returns all state codes.
func States() []State {
	out := make([]State, len(stateOrder))
	copy(out, stateOrder)
	return out
}
