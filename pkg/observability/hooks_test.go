package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnParseStart(ctx, "csv:trial.csv")
	p.OnParseComplete(ctx, "csv:trial.csv", 12, time.Second, nil)
	p.OnLayoutStart(ctx, 12)
	p.OnLayoutComplete(ctx, time.Second, nil)
	p.OnRenderStart(ctx, []string{"svg"})
	p.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "rows")
	c.OnCacheMiss(ctx, "geometry")
	c.OnCacheSet(ctx, "artifact", 1024)
}

type testPipelineHooks struct {
	NoopPipelineHooks
	parseStarts int
}

func (h *testPipelineHooks) OnParseStart(_ context.Context, _ string) {
	h.parseStarts++
}

type testCacheHooks struct {
	NoopCacheHooks
	hits int
}

func (h *testCacheHooks) OnCacheHit(_ context.Context, _ string) {
	h.hits++
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != PipelineHooks(customPipeline) {
		t.Error("SetPipelineHooks should set custom hooks")
	}
	Pipeline().OnParseStart(context.Background(), "csv:trial.csv")
	if customPipeline.parseStarts != 1 {
		t.Errorf("parseStarts = %d, want 1", customPipeline.parseStarts)
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	Cache().OnCacheHit(context.Background(), "rows")
	if customCache.hits != 1 {
		t.Errorf("hits = %d, want 1", customCache.hits)
	}

	// Nil registrations are ignored
	SetPipelineHooks(nil)
	if Pipeline() != PipelineHooks(customPipeline) {
		t.Error("SetPipelineHooks(nil) should keep existing hooks")
	}
}
