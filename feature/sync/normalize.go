package sync

import "maintenance-manager/core/utils"

// dropdownKeys are the name-like keys of an expanded GLPI dropdown object,
// in lookup priority order.
var dropdownKeys = []string{"completename", "name", "label"}

// DropdownString normalizes a raw GLPI field value into a display-safe string.
//
// GLPI may return the same logical field as a foreign-key id, a plain label,
// or a fully expanded object depending on instance configuration. Absent
// values map to "", expanded objects map to their first non-empty name-like
// key (falling back to a stringified id), and any other scalar maps to its
// string representation. Never panics.
func DropdownString(value any) string {
	if value == nil {
		return ""
	}

	if obj, ok := value.(map[string]any); ok {
		for _, key := range dropdownKeys {
			if v, present := obj[key]; present && v != nil {
				if s := utils.ToString(v); s != "" {
					return s
				}
			}
		}
		if id, present := obj["id"]; present && id != nil {
			return utils.ToString(id)
		}
		return ""
	}

	return utils.ToString(value)
}
