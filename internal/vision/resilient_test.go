package vision

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyBackend struct {
	err   error
	calls int
}

func (f *flakyBackend) Generate(ctx context.Context, req Request) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return "ok", nil
}

func newTestResilient(backend Backend) (*Resilient, *time.Time) {
	r := NewResilient(backend, BreakerConfig{MaxFailures: 3, Cooldown: 10 * time.Second}, nil)
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return clock }
	return r, &clock
}

func TestResilientPassesThrough(t *testing.T) {
	backend := &flakyBackend{}
	r, _ := newTestResilient(backend)

	out, err := r.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, StateClosed, r.State())
}

func TestResilientTripsAfterConsecutiveFailures(t *testing.T) {
	backend := &flakyBackend{err: errors.New("boom")}
	r, _ := newTestResilient(backend)

	for i := 0; i < 3; i++ {
		_, err := r.Generate(context.Background(), Request{})
		require.Error(t, err)
	}
	assert.Equal(t, StateOpen, r.State())

	// Open circuit sheds load without touching the backend.
	calls := backend.calls
	_, err := r.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, calls, backend.calls)
}

func TestResilientSuccessResetsFailureCount(t *testing.T) {
	backend := &flakyBackend{err: errors.New("boom")}
	r, _ := newTestResilient(backend)

	r.Generate(context.Background(), Request{})
	r.Generate(context.Background(), Request{})

	backend.err = nil
	_, err := r.Generate(context.Background(), Request{})
	require.NoError(t, err)

	// Two more failures stay under the trip threshold.
	backend.err = errors.New("boom")
	r.Generate(context.Background(), Request{})
	r.Generate(context.Background(), Request{})
	assert.Equal(t, StateClosed, r.State())
}

func TestResilientRecoversThroughProbe(t *testing.T) {
	backend := &flakyBackend{err: errors.New("boom")}
	r, clock := newTestResilient(backend)

	for i := 0; i < 3; i++ {
		r.Generate(context.Background(), Request{})
	}
	require.Equal(t, StateOpen, r.State())

	*clock = clock.Add(11 * time.Second)
	require.Equal(t, StateHalfOpen, r.State())

	backend.err = nil
	_, err := r.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, StateClosed, r.State())
}

func TestResilientProbeFailureReopens(t *testing.T) {
	backend := &flakyBackend{err: errors.New("boom")}
	r, clock := newTestResilient(backend)

	for i := 0; i < 3; i++ {
		r.Generate(context.Background(), Request{})
	}
	*clock = clock.Add(11 * time.Second)

	_, err := r.Generate(context.Background(), Request{})
	require.Error(t, err)
	assert.Equal(t, StateOpen, r.State())

	// Reopened circuit rejects immediately again.
	_, err = r.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrCircuitOpen)
}

type flakyImageBackend struct {
	flakyBackend
	imageCalls int
}

func (f *flakyImageBackend) GenerateImage(ctx context.Context, req ImageRequest) (*GeneratedImage, error) {
	f.imageCalls++
	if f.err != nil {
		return nil, f.err
	}
	return &GeneratedImage{Data: []byte{1}, MIME: "image/png"}, nil
}

func TestResilientGenerateImagePassesThrough(t *testing.T) {
	backend := &flakyImageBackend{}
	r, _ := newTestResilient(backend)

	out, err := r.GenerateImage(context.Background(), ImageRequest{Prompt: "x"})
	require.NoError(t, err)
	assert.Equal(t, "image/png", out.MIME)
	assert.Equal(t, 1, backend.imageCalls)
}

func TestResilientGenerateImageUnsupported(t *testing.T) {
	r, _ := newTestResilient(&flakyBackend{})

	_, err := r.GenerateImage(context.Background(), ImageRequest{Prompt: "x"})
	assert.ErrorIs(t, err, ErrImageUnsupported)
}

func TestResilientImageFailuresShareCircuit(t *testing.T) {
	backend := &flakyImageBackend{flakyBackend: flakyBackend{err: errors.New("boom")}}
	r, _ := newTestResilient(backend)

	for i := 0; i < 3; i++ {
		_, err := r.GenerateImage(context.Background(), ImageRequest{})
		require.Error(t, err)
	}
	assert.Equal(t, StateOpen, r.State())

	// Text generation is shed by the same open circuit.
	_, err := r.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrCircuitOpen)

	_, err = r.GenerateImage(context.Background(), ImageRequest{})
	assert.ErrorIs(t, err, ErrCircuitOpen)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "unknown", State(9).String())
}
