package form

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Avyakta000/mcp-client/internal/api"
)

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	failures  []string
	infos     []string
}

func (r *recordingNotifier) Success(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes = append(r.successes, message)
}

func (r *recordingNotifier) Failure(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, message)
}

func (r *recordingNotifier) Info(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.infos = append(r.infos, message)
}

func TestOpenAddDefaults(t *testing.T) {
	m := NewModal(nil, nil)
	assert.False(t, m.IsOpen())

	m.OpenAdd()
	assert.True(t, m.IsOpen())
	assert.Equal(t, ModeAdd, m.Mode())

	state := m.State()
	assert.Empty(t, state.Name)
	assert.Equal(t, api.TransportSSE, state.Transport)
	assert.Empty(t, state.Headers)
	assert.False(t, m.HeadersShown())
}

func TestOpenEditPrePopulates(t *testing.T) {
	record := api.ServerRecord{
		Name:           "github",
		Description:    "GitHub tools",
		Transport:      api.TransportStdio,
		Command:        "npx",
		Args:           []string{"-y", "@modelcontextprotocol/server-github"},
		RequiresOAuth2: true,
		IsPublic:       true,
		Headers:        []api.HeaderPair{{Key: "Authorization", Value: "Bearer abc"}},
	}

	m := NewModal(nil, nil)
	m.OpenEdit(record)
	assert.Equal(t, ModeEdit, m.Mode())

	state := m.State()
	assert.Equal(t, "github", state.Name)
	assert.Equal(t, "GitHub tools", state.Description)
	assert.Equal(t, api.TransportStdio, state.Transport)
	assert.Equal(t, "npx", state.Command)
	assert.Equal(t, `["-y","@modelcontextprotocol/server-github"]`, state.ArgsJSON)
	assert.True(t, state.RequiresOAuth2)
	assert.True(t, state.IsPublic)

	// Stored headers are not carried into the form; the list starts empty.
	assert.Empty(t, state.Headers)
}

func TestReopenCollapsesHeadersDisclosure(t *testing.T) {
	m := NewModal(nil, nil)
	m.OpenAdd()
	m.ToggleHeaders()
	require.True(t, m.HeadersShown())

	m.OpenEdit(api.ServerRecord{Name: "github"})
	assert.False(t, m.HeadersShown())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		state   State
		wantErr bool
	}{
		{name: "valid remote", state: State{Name: "github", Transport: api.TransportSSE, URL: "http://localhost/sse"}},
		{name: "empty name rejected", state: State{Transport: api.TransportSSE}, wantErr: true},
		{name: "whitespace name rejected", state: State{Name: "   ", Transport: api.TransportSSE}, wantErr: true},
		{name: "stdio with empty command accepted", state: State{Name: "local", Transport: api.TransportStdio}},
		{name: "remote with empty url accepted", state: State{Name: "remote", Transport: api.TransportStreamableHTTP}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.state)
			if tt.wantErr {
				assert.True(t, api.IsValidation(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStateRecord(t *testing.T) {
	t.Run("stdio keeps command and args, drops url and headers", func(t *testing.T) {
		state := State{
			Name:      " local ",
			Transport: api.TransportStdio,
			Command:   "npx",
			ArgsJSON:  `["-y","server"]`,
			URL:       "http://ignored",
			Headers:   []api.HeaderPair{{Key: "X", Value: "y"}},
		}
		record := state.Record()
		assert.Equal(t, "local", record.Name)
		assert.Equal(t, "npx", record.Command)
		assert.Equal(t, []string{"-y", "server"}, record.Args)
		assert.Empty(t, record.URL)
		assert.Empty(t, record.Headers)
	})

	t.Run("remote keeps url and headers, drops command", func(t *testing.T) {
		state := State{
			Name:      "remote",
			Transport: api.TransportSSE,
			URL:       "http://localhost:8090/sse",
			Command:   "ignored",
			Headers:   []api.HeaderPair{{Key: "Authorization", Value: "Bearer abc"}},
		}
		record := state.Record()
		assert.Equal(t, "http://localhost:8090/sse", record.URL)
		assert.Empty(t, record.Command)
		require.Len(t, record.Headers, 1)
		assert.Equal(t, "Authorization", record.Headers[0].Key)
	})

	t.Run("malformed args JSON degrades to no args", func(t *testing.T) {
		state := State{Name: "local", Transport: api.TransportStdio, Command: "npx", ArgsJSON: `[-y broken`}
		record := state.Record()
		assert.Nil(t, record.Args)
	})
}

func TestHeaderList(t *testing.T) {
	m := NewModal(nil, nil)
	m.OpenAdd()

	m.AddHeader("Authorization", "Bearer abc")
	m.AddHeader("X-Trace", "1")
	m.AddHeader("Authorization", "Bearer dup")

	headers := m.State().Headers
	require.Len(t, headers, 3)
	assert.Equal(t, "Authorization", headers[0].Key)
	assert.Equal(t, "X-Trace", headers[1].Key)
	assert.Equal(t, "Bearer dup", headers[2].Value)

	m.RemoveHeader(1)
	headers = m.State().Headers
	require.Len(t, headers, 2)
	assert.Equal(t, "Bearer abc", headers[0].Value)
	assert.Equal(t, "Bearer dup", headers[1].Value)

	// Out-of-range removals are ignored.
	m.RemoveHeader(-1)
	m.RemoveHeader(10)
	assert.Len(t, m.State().Headers, 2)
}

func TestSubmitSuccess(t *testing.T) {
	notifier := &recordingNotifier{}
	var persisted *api.ServerRecord
	m := NewModal(func(ctx context.Context, record api.ServerRecord) error {
		persisted = &record
		return nil
	}, notifier)

	m.OpenAdd()
	m.Update(func(st *State) {
		st.Name = "github"
		st.URL = "http://localhost:8090/sse"
	})

	require.NoError(t, m.Submit(context.Background()))
	require.NotNil(t, persisted)
	assert.Equal(t, "github", persisted.Name)
	assert.False(t, m.IsOpen())
	require.Len(t, notifier.successes, 1)
	assert.Equal(t, `Server "github" added`, notifier.successes[0])
}

func TestSubmitEditVerb(t *testing.T) {
	notifier := &recordingNotifier{}
	m := NewModal(func(ctx context.Context, record api.ServerRecord) error {
		return nil
	}, notifier)

	m.OpenEdit(api.ServerRecord{Name: "github", Transport: api.TransportSSE})
	require.NoError(t, m.Submit(context.Background()))
	require.Len(t, notifier.successes, 1)
	assert.Equal(t, `Server "github" updated`, notifier.successes[0])
}

// Persist failures never close the dialog or discard entered values. The
// caller sees no error; the failure surfaces as a notification.
func TestSubmitPersistFailure(t *testing.T) {
	notifier := &recordingNotifier{}
	m := NewModal(func(ctx context.Context, record api.ServerRecord) error {
		return errors.New("boom")
	}, notifier)

	m.OpenAdd()
	m.Update(func(st *State) {
		st.Name = "github"
		st.Description = "keep me"
	})

	assert.NoError(t, m.Submit(context.Background()))
	assert.True(t, m.IsOpen())
	assert.Equal(t, "keep me", m.State().Description)
	require.Len(t, notifier.failures, 1)
	assert.Equal(t, `Failed to save server "github"`, notifier.failures[0])
	assert.False(t, m.Submitting())
}

func TestSubmitValidationFailure(t *testing.T) {
	called := false
	m := NewModal(func(ctx context.Context, record api.ServerRecord) error {
		called = true
		return nil
	}, nil)

	m.OpenAdd()
	err := m.Submit(context.Background())
	assert.True(t, api.IsValidation(err))
	assert.False(t, called)
	assert.True(t, m.IsOpen())
}

func TestSubmitGuards(t *testing.T) {
	t.Run("closed dialog", func(t *testing.T) {
		m := NewModal(func(ctx context.Context, record api.ServerRecord) error { return nil }, nil)
		assert.ErrorIs(t, m.Submit(context.Background()), api.ErrFormClosed)
	})

	t.Run("no persist handler", func(t *testing.T) {
		m := NewModal(nil, nil)
		m.OpenAdd()
		m.Update(func(st *State) { st.Name = "github" })
		assert.ErrorIs(t, m.Submit(context.Background()), api.ErrNoPersistHandler)
	})

	t.Run("submit while submitting", func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})
		m := NewModal(func(ctx context.Context, record api.ServerRecord) error {
			close(started)
			<-release
			return nil
		}, nil)

		m.OpenAdd()
		m.Update(func(st *State) { st.Name = "github" })

		done := make(chan error, 1)
		go func() { done <- m.Submit(context.Background()) }()
		<-started

		assert.True(t, m.Submitting())
		assert.ErrorIs(t, m.Submit(context.Background()), api.ErrSubmitInFlight)

		close(release)
		require.NoError(t, <-done)
	})
}

func TestGuidance(t *testing.T) {
	stdio := Guidance(api.TransportStdio)
	require.Len(t, stdio, 2)
	assert.Contains(t, stdio[0], "command")

	remote := Guidance(api.TransportSSE)
	require.Len(t, remote, 2)
	assert.Contains(t, remote[0], "url")
	assert.Contains(t, remote[1], "headers")
}

func TestRender(t *testing.T) {
	m := NewModal(nil, nil)
	assert.Empty(t, m.Render())

	m.OpenEdit(api.ServerRecord{Name: "github", Transport: api.TransportSSE, URL: "http://localhost/sse"})
	out := m.Render()
	assert.Contains(t, out, "Edit MCP Server: github")
	assert.Contains(t, out, "url:")
	assert.Contains(t, out, "headers:     (0 hidden)")
	assert.NotContains(t, out, "command:")

	m.ToggleHeaders()
	m.AddHeader("Authorization", "Bearer abc")
	out = m.Render()
	assert.Contains(t, out, "headers (1):")
	assert.Contains(t, out, "Authorization: Bearer abc")

	m.Update(func(st *State) { st.Transport = api.TransportStdio })
	out = m.Render()
	assert.Contains(t, out, "command:")
	assert.NotContains(t, out, "url:")
}
