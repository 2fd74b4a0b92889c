package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot(t *testing.T) {
	cmd := Root()

	require.NotNil(t, cmd)
	assert.Equal(t, "cloudwait", cmd.Use)
	assert.Equal(t, "Run cloud operations and wait for them to complete", cmd.Short)
}

func TestRoot_HasSubcommands(t *testing.T) {
	cmd := Root()

	expected := map[string][]string{
		"instance": {"start", "wait", "create"},
		"snapshot": {"create", "wait", "image"},
		"group":    {"attach", "remove", "wait"},
		"secgroup": {"join", "leave"},
		"version":  nil,
	}

	subcommands := make(map[string][]string)
	for _, sub := range cmd.Commands() {
		var names []string
		for _, leaf := range sub.Commands() {
			names = append(names, leaf.Name())
		}
		subcommands[sub.Name()] = names
	}

	for name, leaves := range expected {
		got, ok := subcommands[name]
		require.True(t, ok, "Expected subcommand %s not found", name)
		assert.ElementsMatch(t, leaves, got, "subcommands of %s", name)
	}
}

func TestRoot_GlobalFlags(t *testing.T) {
	cmd := Root()

	for _, name := range []string{"config", "provider", "region", "interval", "timeout", "json", "metrics-file", "verbose", "concurrency"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "missing flag %s", name)
	}
	assert.Equal(t, "c", cmd.PersistentFlags().Lookup("config").Shorthand)
	assert.Equal(t, "v", cmd.PersistentFlags().Lookup("verbose").Shorthand)
}

func TestRoot_RejectsMissingArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"instance start without IDs", []string{"instance", "start"}},
		{"snapshot create without volume", []string{"snapshot", "create"}},
		{"snapshot image without snapshots", []string{"snapshot", "image", "--name", "web"}},
		{"instance create without image", []string{"instance", "create", "--type", "t3.micro"}},
		{"group attach without group", []string{"group", "attach", "i-1"}},
		{"secgroup join without IDs", []string{"secgroup", "join", "--group", "sg-1"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			cmd := Root()
			cmd.SetArgs(tt.args)
			assert.Error(t, cmd.Execute())
		})
	}
}

func TestGroup_TooManyInstances(t *testing.T) {
	args := []string{"group", "attach", "--group", "asg"}
	for i := 0; i < 21; i++ {
		args = append(args, "i-x")
	}

	cmd := Root()
	cmd.SetArgs(args)
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts between 1 and 20 arg(s)")
}

func TestSecurityGroup_Alias(t *testing.T) {
	cmd := Root()
	found, _, err := cmd.Find([]string{"firewall", "join"})
	require.NoError(t, err)
	assert.Equal(t, "join", found.Name())
}
