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

import (
	"errors"
	"strconv"
)

// ErrConfigParamNotFound is returned when a requested key is not set.
var ErrConfigParamNotFound = errors.New("param not found")

const (
	SorterOrderingKey = "sorter.ordering"
	PageCacheSizeKey  = "pagecache.size"
	LogLevelKey       = "log.level"
)

// ReadableConfig is an interface for reading configuration values.
type ReadableConfig interface {
	// GetString retrieves a string from the config. ErrConfigParamNotFound is
	// returned if the key is not set.
	GetString(key string) (value string, err error)

	// Iter will perform a callback for each value in a config until all values have been exhausted or until the
	// callback returns true indicating that it should stop.
	Iter(func(string, string) (stop bool))

	// Size returns the number of properties contained within the config
	Size() int
}

// WritableConfig is an interface for writing configuration values.
type WritableConfig interface {
	// SetStrings uses the updates map to set configuration parameter values.
	SetStrings(updates map[string]string) error

	// Unset removes a configuration parameter from the config
	Unset(params []string) error
}

// ReadWriteConfig combines ReadableConfig and WritableConfig.
type ReadWriteConfig interface {
	ReadableConfig
	WritableConfig
}

// GetStringOrDefault retrieves |key| from |cfg|, returning |defStr| if it is
// not set.
func GetStringOrDefault(cfg ReadableConfig, key, defStr string) string {
	if cfg == nil {
		return defStr
	}
	v, err := cfg.GetString(key)
	if err != nil {
		return defStr
	}
	return v
}

// GetInt retrieves |key| from |cfg| and parses it as a base 10 integer.
func GetInt(cfg ReadableConfig, key string) (int64, error) {
	v, err := cfg.GetString(key)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(v, 10, 64)
}

// GetIntOrDefault is GetInt returning |def| when |key| is not set. A value
// that does not parse is still an error.
func GetIntOrDefault(cfg ReadableConfig, key string, def int64) (int64, error) {
	if cfg == nil {
		return def, nil
	}
	i, err := GetInt(cfg, key)
	if errors.Is(err, ErrConfigParamNotFound) {
		return def, nil
	}
	return i, err
}
