package config

import "fmt"

// ProfileFromValues rebuilds a profile of the given kind from parsed secrets
// file values. Missing keys stay empty; callers run Validate afterwards.
func ProfileFromValues(kind Kind, values map[string]string) *ConnectionProfile {
	keys := kind.Keys()
	return &ConnectionProfile{
		Kind:       kind,
		Host:       values[keys.Host],
		Port:       values[keys.Port],
		Identifier: values[keys.Identifier],
		User:       values[keys.User],
		Password:   values[keys.Password],
	}
}

// ProfilesFromValues rebuilds and validates both profiles from parsed secrets file values.
func ProfilesFromValues(values map[string]string) (map[Kind]*ConnectionProfile, error) {
	profiles := make(map[Kind]*ConnectionProfile, len(Kinds))
	for _, kind := range Kinds {
		p := ProfileFromValues(kind, values)
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("%s profile: %w", kind, err)
		}
		profiles[kind] = p
	}
	return profiles, nil
}
