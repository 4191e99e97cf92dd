package session

import "github.com/Veraticus/the-bills-must-flow/internal/model"

// allOption is always the first entry of the filter dropdown.
var allOption = model.StatusOption{Label: "All", Value: AllStatuses}

// DefaultStatusOptions returns the option set used before the picklist has
// resolved, and after a picklist failure.
func DefaultStatusOptions() []model.StatusOption {
	return []model.StatusOption{allOption}
}

// BuildStatusOptions derives the filter dropdown options from a picklist
// resolution. On success the remote values follow the All option in the
// order the remote gave them. On failure only the All option remains; the
// dropdown stays usable with reduced filtering.
func BuildStatusOptions(picklist *model.Picklist, err error) []model.StatusOption {
	if err != nil || picklist == nil {
		return DefaultStatusOptions()
	}

	options := make([]model.StatusOption, 0, len(picklist.Values)+1)
	options = append(options, allOption)
	for _, v := range picklist.Values {
		options = append(options, model.StatusOption{Label: v.Label, Value: v.Value})
	}
	return options
}
