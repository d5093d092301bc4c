package world

import (
	"encoding/json"
	"fmt"
	"math/bits"
)

// BoxID identifies one of the fixed interactive boxes.
type BoxID int

const (
	BoxNone BoxID = iota
	BoxAbout
	BoxEducation
	BoxExperience
	BoxProjects
	BoxSkills
	BoxContact
)

// Order lists the boxes in world order, left to right.
var Order = [...]BoxID{BoxAbout, BoxEducation, BoxExperience, BoxProjects, BoxSkills, BoxContact}

var boxNames = map[BoxID]string{
	BoxNone:       "",
	BoxAbout:      "about",
	BoxEducation:  "education",
	BoxExperience: "experience",
	BoxProjects:   "projects",
	BoxSkills:     "skills",
	BoxContact:    "contact",
}

var boxLabels = map[BoxID]string{
	BoxAbout:      "ABOUT",
	BoxEducation:  "EDUCATION",
	BoxExperience: "WORK EXP",
	BoxProjects:   "PROJECTS",
	BoxSkills:     "SKILLS",
	BoxContact:    "CONTACT",
}

// String returns the stable identifier used in URLs and JSON.
func (id BoxID) String() string {
	if name, ok := boxNames[id]; ok {
		return name
	}
	return fmt.Sprintf("box(%d)", int(id))
}

// Valid reports whether id names a real box.
func (id BoxID) Valid() bool {
	return id >= BoxAbout && id <= BoxContact
}

// Label returns the text painted on the box.
func (id BoxID) Label() string {
	return boxLabels[id]
}

// Kind returns the cosmetic variant of the box.
func (id BoxID) Kind() Kind {
	switch id {
	case BoxExperience, BoxSkills:
		return KindBrick
	default:
		return KindQuestion
	}
}

// ParseBoxID resolves an identifier such as "projects".
func ParseBoxID(s string) (BoxID, bool) {
	for _, id := range Order {
		if boxNames[id] == s {
			return id, true
		}
	}
	return BoxNone, false
}

// MarshalText implements encoding.TextMarshaler.
func (id BoxID) MarshalText() ([]byte, error) {
	return []byte(boxNames[id]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *BoxID) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*id = BoxNone
		return nil
	}
	parsed, ok := ParseBoxID(string(text))
	if !ok {
		return fmt.Errorf("world: unknown box %q", text)
	}
	*id = parsed
	return nil
}

// Kind is the cosmetic variant of a box. It never affects physics.
type Kind int

const (
	KindQuestion Kind = iota
	KindBrick
)

// String returns "question" or "brick".
func (k Kind) String() string {
	if k == KindBrick {
		return "brick"
	}
	return "question"
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// BoxSet is a set of box ids. The zero value is empty and the type is
// copied by value, so snapshots never alias live state.
type BoxSet uint8

// Has reports whether id is in the set.
func (s BoxSet) Has(id BoxID) bool {
	return id.Valid() && s&(1<<uint(id)) != 0
}

// Add returns the set with id added.
func (s BoxSet) Add(id BoxID) BoxSet {
	if !id.Valid() {
		return s
	}
	return s | 1<<uint(id)
}

// Remove returns the set with id removed.
func (s BoxSet) Remove(id BoxID) BoxSet {
	if !id.Valid() {
		return s
	}
	return s &^ (1 << uint(id))
}

// Len returns the number of ids in the set.
func (s BoxSet) Len() int {
	return bits.OnesCount8(uint8(s))
}

// IDs returns the members in world order.
func (s BoxSet) IDs() []BoxID {
	ids := make([]BoxID, 0, s.Len())
	for _, id := range Order {
		if s.Has(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// MarshalJSON encodes the set as an array of identifiers.
func (s BoxSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.IDs())
}
