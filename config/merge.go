package config

// mergeConfigs merges override configuration into base
func mergeConfigs(base, override *Config) *Config {
	result := *base

	if override.Version != "" {
		result.Version = override.Version
	}

	// Booleans can only be switched on by a later layer.
	if override.Verbose {
		result.Verbose = true
	}
	if override.Lenient {
		result.Lenient = true
	}

	if override.Session.Dir != "" {
		result.Session.Dir = override.Session.Dir
	}
	if override.Session.Prefix != "" {
		result.Session.Prefix = override.Session.Prefix
	}
	if override.ToolTimeout != "" {
		result.ToolTimeout = override.ToolTimeout
	}

	// Lists accumulate across layers.
	if len(override.Ignore) > 0 {
		result.Ignore = append(append([]string(nil), base.Ignore...), override.Ignore...)
	}
	if len(override.Disabled) > 0 {
		result.Disabled = append(append([]string(nil), base.Disabled...), override.Disabled...)
	}

	// Merge extensions
	if override.Extensions != nil {
		extensions := make(map[string]interface{}, len(base.Extensions)+len(override.Extensions))
		for key, value := range base.Extensions {
			extensions[key] = value
		}
		for key, value := range override.Extensions {
			// If both base and override have the same extension key, merge them
			if baseValue, exists := extensions[key]; exists {
				if baseMap, baseOk := baseValue.(map[string]interface{}); baseOk {
					if overrideMap, overrideOk := value.(map[string]interface{}); overrideOk {
						mergedMap := make(map[string]interface{})
						for k, v := range baseMap {
							mergedMap[k] = v
						}
						for k, v := range overrideMap {
							mergedMap[k] = v
						}
						extensions[key] = mergedMap
						continue
					}
				}
			}
			// Otherwise just replace
			extensions[key] = value
		}
		result.Extensions = extensions
	}

	return &result
}
