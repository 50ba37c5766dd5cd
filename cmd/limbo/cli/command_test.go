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

package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const appName = "app"

type trackedCommand struct {
	name   string
	hidden bool
	called bool
	cmdStr string
	args   []string
}

func (tc *trackedCommand) Name() string {
	return tc.name
}

func (tc *trackedCommand) Description() string {
	return tc.name + " description"
}

func (tc *trackedCommand) Hidden() bool {
	return tc.hidden
}

func (tc *trackedCommand) Exec(_ context.Context, cmdStr string, args []string) int {
	tc.called = true
	tc.cmdStr = cmdStr
	tc.args = args
	return 0
}

func runCommand(root Command, commandLine string) int {
	tokens := strings.Split(commandLine, " ")
	return root.Exec(context.Background(), tokens[0], tokens[1:])
}

func TestCommands(t *testing.T) {
	var out, errOut bytes.Buffer
	defer SetIOStreams(&out, &errOut)()

	child1 := &trackedCommand{name: "child1"}
	grandChild1 := &trackedCommand{name: "grandchild1"}
	secret := &trackedCommand{name: "secret", hidden: true}
	commands := NewSubCommandHandler(appName, "test application", []Command{
		child1,
		NewSubCommandHandler("child2", "second child command", []Command{grandChild1}),
		secret,
	})

	assert.NotEqual(t, 0, commands.Exec(context.Background(), appName, nil))
	assert.Contains(t, out.String(), "Valid commands for app are")
	assert.Contains(t, out.String(), "child1 description")
	assert.NotContains(t, out.String(), "secret")

	assert.NotEqual(t, 0, runCommand(commands, "app invalid"))
	assert.Contains(t, errOut.String(), "Unknown Command invalid")
	assert.False(t, child1.called)
	assert.False(t, grandChild1.called)

	assert.Equal(t, 0, runCommand(commands, "app child1 --flag --param=value arg0 arg1"))
	assert.True(t, child1.called)
	assert.Equal(t, "app child1", child1.cmdStr)
	assert.Equal(t, []string{"--flag", "--param=value", "arg0", "arg1"}, child1.args)
	assert.False(t, grandChild1.called)

	assert.Equal(t, 0, runCommand(commands, "app CHILD2 grandchild1 arg0"))
	assert.True(t, grandChild1.called)
	assert.Equal(t, "app child2 grandchild1", grandChild1.cmdStr)
	assert.Equal(t, []string{"arg0"}, grandChild1.args)

	assert.Equal(t, 0, runCommand(commands, "app secret"))
	assert.True(t, secret.called)

	assert.Equal(t, 0, runCommand(commands, "app --help"))
}

func TestHasHelpFlag(t *testing.T) {
	assert.True(t, HasHelpFlag([]string{"a", "-h"}))
	assert.True(t, HasHelpFlag([]string{"--help"}))
	assert.True(t, HasHelpFlag([]string{"help"}))
	assert.False(t, HasHelpFlag([]string{"--hex", "-x"}))
	assert.False(t, HasHelpFlag(nil))
}
