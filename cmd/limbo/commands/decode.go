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

package commands

import (
	"context"
	"encoding/hex"
	"strings"

	json "github.com/goccy/go-json"
	flag "github.com/juju/gnuflag"
	"github.com/pkg/errors"

	"github.com/seonWKim/limbo/cmd/limbo/cli"
	"github.com/seonWKim/limbo/store/ondisk"
	"github.com/seonWKim/limbo/store/val"
)

const decodeUsage = "decode [--json] <hex-payload>..."

// DecodeCmd prints the columns of hex encoded record payloads.
type DecodeCmd struct{}

var _ cli.Command = DecodeCmd{}

func (DecodeCmd) Name() string {
	return "decode"
}

func (DecodeCmd) Description() string {
	return "Decode hex encoded record payloads."
}

func (DecodeCmd) Exec(_ context.Context, commandStr string, args []string) int {
	fs := flag.NewFlagSet(commandStr, flag.ContinueOnError)
	asJSON := fs.Bool("json", false, "print each record as a JSON array")
	if code, ok := parseFlags(fs, decodeUsage, args); !ok {
		return code
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 1
	}

	for _, arg := range fs.Args() {
		rec, err := decodeHexRecord(arg)
		if err != nil {
			return printError(err)
		}

		if *asJSON {
			out, err := json.Marshal(rec)
			if err != nil {
				return printError(errors.Wrap(err, "error encoding record"))
			}
			cli.Println(string(out))
		} else {
			cli.Println(rec.String())
		}
	}
	return 0
}

func decodeHexRecord(s string) (*val.OwnedRecord, error) {
	payload, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid hex payload %q", s)
	}
	rec, err := ondisk.ParseRecord(payload)
	if err != nil {
		return nil, err
	}
	// surface column errors here rather than in the printed output
	if _, err = rec.Values(); err != nil {
		return nil, err
	}
	return rec, nil
}
