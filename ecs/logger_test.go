package ecs_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/plus3/basis/ecs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEvent(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	return event
}

func TestLogWorld(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	world := ecs.NewWorld()
	ecs.AddComponent(world, Position{})
	ecs.AddComponent(world, Position{})
	world.DestroyEntity(0)

	ecs.LogWorld(logger, world, zerolog.InfoLevel)

	event := decodeEvent(t, &buf)
	assert.Equal(t, "world", event["message"])
	assert.Equal(t, "info", event["level"])
	assert.EqualValues(t, 1, event["active_entities"])
	assert.EqualValues(t, 1, event["free_ids"])
	assert.EqualValues(t, 1, event["total_components"])

	components, ok := event["components"].([]any)
	require.True(t, ok)
	require.Len(t, components, 1)
	comp := components[0].(map[string]any)
	assert.Equal(t, "ecs_test.Position", comp["component_name"])
	assert.EqualValues(t, 2, comp["count"])
	assert.EqualValues(t, 2, comp["slots"])
}

func TestLogResources(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	resources := ecs.NewResources()
	ecs.AddResource(resources, GameConfig{})
	ecs.AddResource(resources, DeltaTime(0))

	ecs.LogResources(logger, resources, zerolog.DebugLevel)

	event := decodeEvent(t, &buf)
	assert.Equal(t, "resources", event["message"])
	assert.EqualValues(t, 2, event["total_resources"])
	assert.Equal(t, []any{"ecs_test.DeltaTime", "ecs_test.GameConfig"}, event["resources"])
}

func TestLogSystems(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	scheduler := ecs.NewScheduler(ecs.NewWorld(), ecs.NewResources())
	scheduler.Register(&HealthSystem{}, ecs.NewSystem("boot", ecs.Setup, func(*ecs.World, *ecs.Resources) {}))

	ecs.LogSystems(logger, scheduler, zerolog.InfoLevel)

	event := decodeEvent(t, &buf)
	assert.Equal(t, "systems", event["message"])
	assert.EqualValues(t, 2, event["total_systems"])
	assert.Equal(t, []any{"boot", "HealthSystem"}, event["systems"])
}

func TestLogLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.WarnLevel)

	ecs.LogWorld(logger, ecs.NewWorld(), zerolog.DebugLevel)
	assert.Zero(t, buf.Len())
}

func TestWorldLoggerReportsNewStorages(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	world := ecs.NewWorld(ecs.WithWorldLogger(logger))
	ecs.AddComponent(world, Velocity{})
	ecs.AddComponent(world, Velocity{})

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)
	assert.Contains(t, string(lines[0]), `"component":"ecs_test.Velocity"`)
}
