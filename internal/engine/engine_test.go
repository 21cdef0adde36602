package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"podbay/internal/config"
	"podbay/internal/runner/runnertest"
)

const infoCommand = "sudo podman info >/dev/null 2>&1; sudo podman info --format=json"

func testEngine(t *testing.T) (*Engine, *runnertest.Fake) {
	t.Helper()
	fake := runnertest.NewFake()
	fake.RespondOutput(infoCommand, `{"store":{"graphRoot":"/var/lib/containers/storage"}}`)

	cfg := config.ContainerConfig{
		Name:                "app",
		Tag:                 "latest",
		ContainerfilePrefix: "Containerfile_",
		ContextDir:          "/opt/app",
		Entrypoint:          "/opt/app/entrypoint.sh",
	}
	return New(fake, cfg), fake
}

func TestGraphRoot(t *testing.T) {
	engine, _ := testEngine(t)

	root, err := engine.GraphRoot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/containers/storage", root)
}

func TestGraphRootInvalidJSON(t *testing.T) {
	engine, fake := testEngine(t)
	fake.RespondOutput(infoCommand, "not json")

	_, err := engine.GraphRoot(context.Background())
	assert.ErrorContains(t, err, "parsing engine info")
}

func TestGraphRootMissing(t *testing.T) {
	engine, fake := testEngine(t)
	fake.RespondOutput(infoCommand, `{"store":{}}`)

	_, err := engine.GraphRoot(context.Background())
	assert.ErrorContains(t, err, "graph root")
}

func TestBuild(t *testing.T) {
	engine, fake := testEngine(t)

	require.NoError(t, engine.Build(context.Background()))

	commands := fake.Commands()
	build := commands[len(commands)-1]
	assert.Contains(t, build, "sudo TMPDIR='/var/lib/containers/storage' podman build")
	assert.Contains(t, build, "--force-rm --no-cache --pull=always --tag app:latest")
	assert.Contains(t, build, fmt.Sprintf("--build-arg UID=%d --build-arg GID=%d", os.Getuid(), os.Getgid()))
	assert.Contains(t, build, "-f Containerfile_"+machineArch()+" '/opt/app'")
}

func TestRunIncludesExtraArgs(t *testing.T) {
	engine, fake := testEngine(t)

	require.NoError(t, engine.Run(context.Background(), []string{"--gpus", "all"}))

	commands := fake.Commands()
	run := commands[len(commands)-1]
	assert.True(t, strings.HasPrefix(run, "sudo podman run -i -t --rm --name app"), run)
	assert.Contains(t, run, "--privileged --network='host' --ipc='host' --systemd='true'")
	assert.Contains(t, run, "--volume=/opt/app/entrypoint.sh:/entrypoint.sh")
	assert.Contains(t, run, "--volume=/lib/modules:/lib/modules:ro --gpus all app:latest")
}

func TestCreateMirrorsRunFlags(t *testing.T) {
	engine, fake := testEngine(t)

	require.NoError(t, engine.Create(context.Background(), nil))

	commands := fake.Commands()
	create := commands[len(commands)-1]
	assert.True(t, strings.HasPrefix(create, "sudo podman create -t --rm --name app"), create)
	assert.Contains(t, create, "--systemd='true'")
}

func TestSaveChownsArchive(t *testing.T) {
	engine, fake := testEngine(t)

	require.NoError(t, engine.Save(context.Background(), "/tmp/app.tar"))

	assert.True(t, fake.Ran("sudo podman save --output '/tmp/app.tar' app:latest"))
	assert.True(t, fake.Ran("sudo chown $USER:$USER '/tmp/app.tar'"))
}

func TestSaveFailureSkipsChown(t *testing.T) {
	engine, fake := testEngine(t)
	fake.Fail("sudo podman save", 125)

	err := engine.Save(context.Background(), "/tmp/app.tar")
	assert.ErrorContains(t, err, "saving image to /tmp/app.tar")
	assert.False(t, fake.Ran("sudo chown"))
}

func TestLoad(t *testing.T) {
	engine, fake := testEngine(t)

	require.NoError(t, engine.Load(context.Background(), "/tmp/app.tar"))
	assert.True(t, fake.Ran("sudo podman load --input '/tmp/app.tar'"))
}

func TestImageExists(t *testing.T) {
	engine, fake := testEngine(t)

	assert.True(t, engine.ImageExists(context.Background()))

	fake.Fail("sudo podman image exists app:latest", 1)
	assert.False(t, engine.ImageExists(context.Background()))
}

func TestContainerRunning(t *testing.T) {
	engine, fake := testEngine(t)

	assert.True(t, engine.ContainerRunning(context.Background()))

	fake.Fail("sudo podman container inspect app", 125)
	assert.False(t, engine.ContainerRunning(context.Background()))
}

func TestPrune(t *testing.T) {
	engine, fake := testEngine(t)

	require.NoError(t, engine.Prune(context.Background()))
	assert.True(t, fake.Ran("sudo podman system prune --force"))
	assert.True(t, fake.Ran("sudo podman image prune --force"))
}

func TestReset(t *testing.T) {
	engine, fake := testEngine(t)

	require.NoError(t, engine.Reset(context.Background()))
	assert.True(t, fake.Ran("sudo rm -rf '/var/lib/containers/storage'"))
	assert.True(t, fake.Ran("sudo podman system reset --force"))
}

func TestResetStopsOnGraphRootFailure(t *testing.T) {
	engine, fake := testEngine(t)
	fake.Fail(infoCommand, 125)

	require.Error(t, engine.Reset(context.Background()))
	assert.False(t, fake.Ran("sudo rm -rf"))
	assert.False(t, fake.Ran("sudo podman system reset"))
}

func TestQuote(t *testing.T) {
	assert.Equal(t, "'/tmp/plain'", quote("/tmp/plain"))
	assert.Equal(t, `'/tmp/it'\''s'`, quote("/tmp/it's"))
}

func TestDebugReport(t *testing.T) {
	engine, fake := testEngine(t)
	fake.RespondOutput("sudo findmnt --json --all --target", `{"filesystems":[]}`)

	dir := t.TempDir()
	argsFile := filepath.Join(dir, "args.json")
	require.NoError(t, os.WriteFile(argsFile, []byte(`["--gpus"]`), 0o644))

	report := engine.DebugReport(context.Background(), "1.2.3", argsFile)

	assert.NotEmpty(t, report.ID)
	assert.Equal(t, "1.2.3", report.Version)
	assert.Contains(t, report.EngineInfo, "graphRoot")
	assert.Contains(t, report.MountInfo, "filesystems")
	assert.Equal(t, `["--gpus"]`, report.Arguments)
	assert.Contains(t, report.Entrypoint, "unavailable")

	rendered := report.String()
	assert.Contains(t, rendered, "Report ID: "+report.ID)
	assert.Contains(t, rendered, "Version: 1.2.3")
}
