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
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// FromYAML parses a YAML document into a MapConfig. Nested mappings are
// flattened into dotted keys, so
//
//	sorter:
//	  ordering: key
//
// sets "sorter.ordering". Scalars are stored in their YAML string form.
func FromYAML(data []byte) (*MapConfig, error) {
	var doc yaml.MapSlice
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "error parsing config")
	}

	props := make(map[string]string)
	if err := flatten("", doc, props); err != nil {
		return nil, err
	}
	return NewMapConfig(props), nil
}

// FromYAMLFile reads |path| and parses it with FromYAML.
func FromYAMLFile(path string) (*MapConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading config file %s", path)
	}
	cfg, err := FromYAML(data)
	if err != nil {
		return nil, errors.Wrapf(err, "config file %s", path)
	}
	return cfg, nil
}

func flatten(prefix string, doc yaml.MapSlice, props map[string]string) error {
	for _, item := range doc {
		key := fmt.Sprint(item.Key)
		if prefix != "" {
			key = prefix + "." + key
		}

		switch v := item.Value.(type) {
		case yaml.MapSlice:
			if err := flatten(key, v, props); err != nil {
				return err
			}
		case []interface{}:
			return errors.Errorf("config key %s: lists are not supported", key)
		case nil:
			props[key] = ""
		default:
			props[key] = fmt.Sprint(v)
		}
	}
	return nil
}
