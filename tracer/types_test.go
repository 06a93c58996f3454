package tracer

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrace_TopAndRoot(t *testing.T) {
	t.Parallel()
	trace := &Trace{}

	assert.Nil(t, trace.Top())
	assert.Nil(t, trace.Root())

	root := &Span{ID: 1}
	child := &Span{ID: 2}
	trace.Stack = []*Span{root, child}

	assert.Same(t, child, trace.Top())
	assert.Same(t, root, trace.Root())
}

func TestTrace_FinishAll_StampsOpenSpans(t *testing.T) {
	t.Parallel()
	preset := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	at := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	open := &Span{ID: 1}
	alreadyStamped := &Span{ID: 2, FinishTime: preset}
	trace := &Trace{Stack: []*Span{open, alreadyStamped}}

	trace.finishAll(at)

	assert.Empty(t, trace.Stack)
	assert.Len(t, trace.Spans, 2)
	assert.True(t, trace.finished)
	assert.Equal(t, at, open.FinishTime)
	assert.Equal(t, preset, alreadyStamped.FinishTime, "a preset completion time survives")
}

func TestSpan_Child_InheritsAndCopiesTags(t *testing.T) {
	t.Parallel()
	parent := &Span{
		ID:       1,
		TraceID:  42,
		Name:     "request",
		Resource: "GET /users",
		Service:  "user-service",
		Type:     "web",
		Env:      "production",
		Tags:     map[string]interface{}{"team": "core"},
	}

	child := parent.child("db.query", 2, time.Now())

	assert.Equal(t, uint64(2), child.ID)
	assert.Equal(t, uint64(42), child.TraceID)
	assert.Equal(t, uint64(1), child.ParentID)
	assert.Equal(t, "db.query", child.Name)
	assert.Equal(t, "user-service", child.Service)
	assert.Equal(t, "GET /users", child.Resource)
	assert.Equal(t, "web", child.Type)
	assert.Equal(t, "production", child.Env)
	assert.True(t, child.FinishTime.IsZero())

	child.Tags["db"] = "postgres"
	assert.NotContains(t, parent.Tags, "db", "child tags must not alias the parent's map")
}

func TestSpan_Duration(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	span := &Span{StartTime: start}

	assert.Zero(t, span.Duration(), "unfinished span has no duration")

	span.FinishTime = start.Add(150 * time.Millisecond)
	assert.Equal(t, 150*time.Millisecond, span.Duration())
}

func TestNewErrorInfo(t *testing.T) {
	t.Parallel()

	info := newErrorInfo(errors.New("connection refused"), "stack-text")

	require.NotNil(t, info)
	assert.Equal(t, "connection refused", info.Message)
	assert.Equal(t, "*errors.errorString", info.Type)
	assert.Equal(t, "stack-text", info.Stack)
}

func TestNewErrorInfo_Nil(t *testing.T) {
	t.Parallel()

	assert.Nil(t, newErrorInfo(nil, "stack-text"))
}

func TestCopyBaggage(t *testing.T) {
	t.Parallel()

	assert.Nil(t, copyBaggage(nil))
	assert.Nil(t, copyBaggage(map[string]string{}))

	original := map[string]string{"tenant": "acme"}
	copied := copyBaggage(original)
	copied["tenant"] = "globex"

	assert.Equal(t, "acme", original["tenant"])
}

func TestGenerateID_StaysInSignedRange(t *testing.T) {
	t.Parallel()

	for i := 0; i < 1000; i++ {
		id := generateID()
		assert.NotZero(t, id)
		assert.LessOrEqual(t, id, uint64(maxID))
	}
}

func TestGenerateID_Distinct(t *testing.T) {
	t.Parallel()

	seen := make(map[uint64]bool)
	for i := 0; i < 100; i++ {
		id := generateID()
		assert.False(t, seen[id], "ids must not repeat across consecutive calls")
		seen[id] = true
	}
}
