package nonrigid

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisher_Topics(t *testing.T) {
	p := NewPublisher(nil, "")
	assert.Equal(t, "gbpcm/abc/iteration", p.IterationTopic("abc"))
	assert.Equal(t, "gbpcm/abc/summary", p.SummaryTopic("abc"))

	p = NewPublisher(nil, "lab/scans")
	assert.Equal(t, "lab/scans/r1/summary", p.SummaryTopic("r1"))
}

func TestPublisher_Reports(t *testing.T) {
	client := NewMockClient()
	client.SetConnected(true)
	p := NewPublisher(client, "gbpcm")

	p.ReportIteration(IterationReport{
		RunID:              "run-1",
		Iteration:          2,
		NumCorrespondences: 42,
		Before:             ResidualSummary{Mean: 0.5},
	})
	p.ReportSummary(RunSummary{RunID: "run-1", Iterations: 2})

	msgs := client.GetPublishedMessages()
	require.Len(t, msgs, 2)
	assert.Equal(t, 2, p.Published())

	assert.Equal(t, "gbpcm/run-1/iteration", msgs[0].Topic)
	assert.False(t, msgs[0].Retain)
	var it IterationReport
	require.NoError(t, json.Unmarshal(msgs[0].Payload, &it))
	assert.Equal(t, 2, it.Iteration)
	assert.Equal(t, 42, it.NumCorrespondences)
	assert.Equal(t, 0.5, it.Before.Mean)

	assert.Equal(t, "gbpcm/run-1/summary", msgs[1].Topic)
	assert.True(t, msgs[1].Retain)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(msgs[1].Payload, &raw))
	assert.Equal(t, "run-1", raw["run_id"])
	assert.Equal(t, 2.0, raw["iterations"])
}

func TestPublisher_FailuresAreNotFatal(t *testing.T) {
	client := NewMockClient()
	p := NewPublisher(client, "gbpcm")

	// Not connected.
	p.ReportIteration(IterationReport{RunID: "r", Iteration: 1})
	assert.Equal(t, 0, p.Published())

	client.SetConnected(true)
	client.SetPublishError(errors.New("broker full"))
	p.ReportSummary(RunSummary{RunID: "r"})
	assert.Equal(t, 0, p.Published())
	assert.Empty(t, client.GetPublishedMessages())

	disabled := NewPublisher(nil, "gbpcm")
	disabled.ReportSummary(RunSummary{RunID: "r"})
	assert.Equal(t, 0, disabled.Published())
}

func TestPublisher_TimedOutPublishIsNotCounted(t *testing.T) {
	client := NewMockClient()
	client.SetConnected(true)
	client.SetPublishPending(true)
	p := NewPublisher(client, "gbpcm")

	err := p.publish(p.SummaryTopic("r"), RunSummary{RunID: "r"}, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
	assert.Equal(t, 0, p.Published())

	client.SetPublishPending(false)
	p.ReportSummary(RunSummary{RunID: "r"})
	assert.Equal(t, 1, p.Published())
}

func TestPublisher_AsReporter(t *testing.T) {
	client := NewMockClient()
	client.SetConnected(true)
	p := NewPublisher(client, "gbpcm")

	fixed, movable := planeClouds(t, 100, 0.1)
	res, err := Register(t.Context(), fixed, movable, planeConfig(MatchingModeID),
		WithReporters(p), WithSolver(testSolver))
	require.NoError(t, err)

	msgs := client.GetPublishedMessages()
	require.Len(t, msgs, 2)
	assert.Equal(t, p.IterationTopic(res.RunID), msgs[0].Topic)
	assert.Equal(t, p.SummaryTopic(res.RunID), msgs[1].Topic)
}
