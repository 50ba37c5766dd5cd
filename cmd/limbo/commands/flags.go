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
	"errors"

	"github.com/fatih/color"
	flag "github.com/juju/gnuflag"

	"github.com/seonWKim/limbo/cmd/limbo/cli"
)

// parseFlags parses |args| into |fs|. The returned code is meaningful only
// when |ok| is false.
func parseFlags(fs *flag.FlagSet, usage string, args []string) (code int, ok bool) {
	fs.SetOutput(cli.CliErr)
	fs.Usage = func() {
		cli.PrintErrln("usage:", usage)
		fs.PrintDefaults()
	}

	err := fs.Parse(true, args)
	if errors.Is(err, flag.ErrHelp) {
		return 0, false
	} else if err != nil {
		// the flag set has already reported the error and usage
		return 1, false
	}
	return 0, true
}

func printError(err error) int {
	cli.PrintErrln(color.RedString(err.Error()))
	return 1
}
