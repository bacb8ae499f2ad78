package input

import "strings"

// Family is a detected controller layout. It selects the mapping table of
// the active profile.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyXbox
	FamilyPlayStation
	FamilyNintendo
	FamilyGameCube
	FamilySega

	numFamilies
)

var familyNames = [numFamilies]string{
	FamilyUnknown:     "UNKNOWN",
	FamilyXbox:        "XBOX",
	FamilyPlayStation: "PS",
	FamilyNintendo:    "NINTENDO",
	FamilyGameCube:    "GC",
	FamilySega:        "SEGA",
}

func (f Family) String() string {
	if f < 0 || f >= numFamilies {
		return familyNames[FamilyUnknown]
	}
	return familyNames[f]
}

// ParseFamily resolves a family name (case-insensitive). UNKNOWN is not a
// valid profile key and is rejected.
func ParseFamily(name string) (Family, bool) {
	name = strings.TrimSpace(name)
	for i := FamilyXbox; i < numFamilies; i++ {
		if strings.EqualFold(familyNames[i], name) {
			return i, true
		}
	}
	return FamilyUnknown, false
}

// FamilyNames lists the names accepted by ParseFamily.
func FamilyNames() []string {
	return append([]string(nil), familyNames[FamilyXbox:]...)
}

// The user is asked to press the button in the "West" position (X on an
// Xbox pad) on first use. Each layout puts a different physical button
// there, so whichever canonical button arrives identifies the family.
// Order matters: first match wins.
var detection = []struct {
	button Button
	family Family
}{
	{ButtonWest, FamilyXbox},
	{ButtonSouth, FamilyPlayStation},
	{ButtonNorth, FamilyNintendo},
	{ButtonEast, FamilyGameCube},
	{ButtonRT, FamilySega},
}

// DetectFamily guesses the layout from the first button pressed on a
// controller. Unlisted buttons leave the family unknown.
func DetectFamily(b Button) Family {
	for _, d := range detection {
		if d.button == b {
			return d.family
		}
	}
	return FamilyUnknown
}
