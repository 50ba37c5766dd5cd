// Copyright 2026 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import "sort"

// MapConfig is an in memory config. Values set on it last for the lifetime of
// the program and are never persisted.
type MapConfig struct {
	properties map[string]string
}

var _ ReadWriteConfig = &MapConfig{}

// NewMapConfig creates a config from a map. A nil map yields an empty config.
func NewMapConfig(properties map[string]string) *MapConfig {
	if properties == nil {
		properties = make(map[string]string)
	}
	return &MapConfig{properties}
}

// GetString retrieves a value for a given key.
func (mc *MapConfig) GetString(k string) (string, error) {
	if v, ok := mc.properties[k]; ok {
		return v, nil
	}

	return "", ErrConfigParamNotFound
}

// SetStrings sets the values for a map of updates.
func (mc *MapConfig) SetStrings(updates map[string]string) error {
	for k, v := range updates {
		mc.properties[k] = v
	}

	return nil
}

// Iter visits keys in sorted order until |cb| returns true.
func (mc *MapConfig) Iter(cb func(string, string) (stop bool)) {
	keys := make([]string, 0, len(mc.properties))
	for k := range mc.properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if cb(k, mc.properties[k]) {
			break
		}
	}
}

// Unset removes a configuration parameter from the config
func (mc *MapConfig) Unset(params []string) error {
	for _, param := range params {
		delete(mc.properties, param)
	}

	return nil
}

// Size returns the number of properties contained within the config
func (mc *MapConfig) Size() int {
	return len(mc.properties)
}
