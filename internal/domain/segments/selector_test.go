package segments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autocliper/autoclip/internal/errs"
	"github.com/autocliper/autoclip/internal/retry"
	"github.com/autocliper/autoclip/internal/types"
)

type scriptedOracle struct {
	calls     int
	responses []func() (string, error)
}

func (o *scriptedOracle) Complete(_ context.Context, _ string) (string, error) {
	i := o.calls
	o.calls++
	if i >= len(o.responses) {
		i = len(o.responses) - 1
	}
	return o.responses[i]()
}

func testPolicy() retry.Policy {
	return retry.Policy{
		MaxAttempts:     3,
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
		Multiplier:      2,
	}
}

func transcriptWords(n int) []types.TimedWord {
	out := make([]types.TimedWord, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, types.TimedWord{
			Text:  "kata",
			Start: float64(i) / 2,
			End:   float64(i)/2 + 0.4,
		})
	}
	return out
}

func TestSelect_HappyPath(t *testing.T) {
	ok := func() (string, error) {
		return "[" + validElement(1, 1) + "," + validElement(2, 3) + "]", nil
	}
	o := &scriptedOracle{responses: []func() (string, error){ok}}
	s := NewWithPolicy(o, testPolicy())

	segs, err := s.Select(context.Background(), transcriptWords(100), Options{})
	require.NoError(t, err)
	require.Len(t, segs, 2)
	assert.Equal(t, 1, o.calls)
}

func TestSelect_EmptyTranscript(t *testing.T) {
	s := NewWithPolicy(&scriptedOracle{}, testPolicy())
	_, err := s.Select(context.Background(), nil, Options{})
	require.True(t, errs.IsMismatchedInput(err), "got %v", err)
}

func TestSelect_RetriesTransportFailures(t *testing.T) {
	fail := func() (string, error) { return "", errs.Transport("oracle unavailable") }
	ok := func() (string, error) { return "[" + validElement(1, 1) + "]", nil }
	o := &scriptedOracle{responses: []func() (string, error){fail, fail, ok}}
	s := NewWithPolicy(o, testPolicy())

	segs, err := s.Select(context.Background(), transcriptWords(50), Options{})
	require.NoError(t, err)
	assert.Len(t, segs, 1)
	assert.Equal(t, 3, o.calls)
}

func TestSelect_TransportExhausted(t *testing.T) {
	fail := func() (string, error) { return "", errs.Transport("oracle unavailable") }
	o := &scriptedOracle{responses: []func() (string, error){fail}}
	s := NewWithPolicy(o, testPolicy())

	_, err := s.Select(context.Background(), transcriptWords(50), Options{})
	require.True(t, errs.IsTransport(err), "got %v", err)
	assert.Equal(t, 3, o.calls)
}

func TestSelect_ConfigurationNotRetried(t *testing.T) {
	fail := func() (string, error) { return "", errs.Configuration("oracle credential missing") }
	o := &scriptedOracle{responses: []func() (string, error){fail}}
	s := NewWithPolicy(o, testPolicy())

	_, err := s.Select(context.Background(), transcriptWords(50), Options{})
	require.True(t, errs.IsConfiguration(err), "got %v", err)
	assert.Equal(t, 1, o.calls)
}

func TestSelect_MalformedOutputNotRetried(t *testing.T) {
	bad := func() (string, error) { return "sorry, I cannot do that", nil }
	o := &scriptedOracle{responses: []func() (string, error){bad}}
	s := NewWithPolicy(o, testPolicy())

	_, err := s.Select(context.Background(), transcriptWords(50), Options{})
	require.True(t, errs.IsMalformedOutput(err), "got %v", err)
	assert.Equal(t, 1, o.calls)
}

func TestBuildPrompt_CarriesOptions(t *testing.T) {
	p := buildPrompt("[00:00:00] halo dunia", Options{}.withDefaults())
	assert.Contains(t, p, "up to 5 segments")
	assert.Contains(t, p, "between 30 and 90 seconds")
	assert.Contains(t, p, `"id"`)
	assert.Contains(t, p, "halo dunia")
	assert.Contains(t, p, "raw JSON array")
}
