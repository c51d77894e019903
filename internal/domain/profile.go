package domain

// Profile fixes the call-site choices of a converter.
type Profile struct {
	Name               string
	Mode               ExtractionMode
	CollapseDuplicates bool
	Provenance         bool
	Attribution        bool
}

var (
	// ProfileStandard converts one C file whose documentation block opens
	// with FUNCTION, and stamps provenance and attribution records.
	ProfileStandard = Profile{
		Name:        "standard",
		Mode:        ModeAnchored,
		Provenance:  true,
		Attribution: true,
	}

	// ProfileLegacy mirrors the older directory converter: the block must
	// open the file, repeated commands keep only their last body, and
	// nothing is injected.
	ProfileLegacy = Profile{
		Name:               "legacy",
		Mode:               ModeUnanchored,
		CollapseDuplicates: true,
	}
)

// LookupProfile returns the named profile.
func LookupProfile(name string) (Profile, bool) {
	switch name {
	case "", ProfileStandard.Name:
		return ProfileStandard, true
	case ProfileLegacy.Name:
		return ProfileLegacy, true
	}
	return Profile{}, false
}

// CollapseDuplicates keeps one record per command. Each command stays at the
// position of its first appearance and carries the body of its last one.
func CollapseDuplicates(records []Record) []Record {
	if len(records) == 0 {
		return records
	}
	index := make(map[string]int, len(records))
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if i, ok := index[r.Command]; ok {
			out[i].Body = r.Body
			continue
		}
		index[r.Command] = len(out)
		out = append(out, r)
	}
	return out
}
