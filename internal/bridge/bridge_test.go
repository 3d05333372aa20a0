package bridge_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"dyslexibrowse/internal/bridge"

	"go.uber.org/zap"
)

func newQueue(limit int, ttl time.Duration) *bridge.Queue {
	return bridge.NewQueue(zap.NewNop(), limit, ttl)
}

func TestCommandsDrainInOrder(t *testing.T) {
	t.Parallel()

	q := newQueue(16, 0)
	ctx := context.Background()

	if err := q.InjectStyle(ctx, "style-a", "body { color: red }"); err != nil {
		t.Fatalf("InjectStyle() error = %v", err)
	}
	if err := q.RunScript(ctx, "(function(){})();"); err != nil {
		t.Fatalf("RunScript() error = %v", err)
	}

	cmds := q.Drain()
	if len(cmds) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(cmds))
	}
	if cmds[0].Kind != bridge.KindInsertCSS || cmds[1].Kind != bridge.KindRunScript {
		t.Fatalf("commands out of order: %+v", cmds)
	}
	if cmds[0].Seq >= cmds[1].Seq {
		t.Fatalf("sequence numbers must increase: %+v", cmds)
	}
	if q.Pending() != 0 {
		t.Fatalf("drain must empty the queue")
	}
}

func TestReinjectionSupersedesQueuedPayload(t *testing.T) {
	t.Parallel()

	q := newQueue(16, 0)
	ctx := context.Background()

	q.InjectStyle(ctx, "profile", "body { font-size: 16px }")
	q.InjectStyle(ctx, "profile", "body { font-size: 18px }")

	cmds := q.Drain()
	if len(cmds) != 1 {
		t.Fatalf("expected the newer payload to replace the queued one, got %d commands", len(cmds))
	}
	if !strings.Contains(cmds[0].Payload, "18px") {
		t.Fatalf("stale payload survived: %s", cmds[0].Payload)
	}
}

func TestRemoveCancelsPendingInsertButStillRemoves(t *testing.T) {
	t.Parallel()

	q := newQueue(16, 0)
	ctx := context.Background()

	q.InjectStyle(ctx, "profile", "body { font-size: 16px }")
	if err := q.RemoveStyle(ctx, "profile"); err != nil {
		t.Fatalf("RemoveStyle() error = %v", err)
	}

	// The undrained insert is obsolete, but the removal must still reach
	// the shell: an earlier payload for the id may already be applied.
	cmds := q.Drain()
	if len(cmds) != 1 || cmds[0].Kind != bridge.KindRemoveCSS {
		t.Fatalf("expected only a remove-css command, got %+v", cmds)
	}
}

func TestRemoveReversesAlreadyDrainedInsert(t *testing.T) {
	t.Parallel()

	q := newQueue(16, 0)
	ctx := context.Background()

	// First payload reaches the shell.
	q.InjectStyle(ctx, "adaptive", "body { font-size: 16px }")
	if cmds := q.Drain(); len(cmds) != 1 {
		t.Fatalf("expected the first insert to drain, got %+v", cmds)
	}

	// A re-apply queues a second payload, then removal cancels it.
	q.InjectStyle(ctx, "adaptive", "body { font-size: 18px }")
	if err := q.RemoveStyle(ctx, "adaptive"); err != nil {
		t.Fatalf("RemoveStyle() error = %v", err)
	}

	cmds := q.Drain()
	if len(cmds) != 1 || cmds[0].Kind != bridge.KindRemoveCSS || cmds[0].StyleID != "adaptive" {
		t.Fatalf("the applied first payload must still be removed, got %+v", cmds)
	}
}

func TestPayloadGuards(t *testing.T) {
	t.Parallel()

	q := newQueue(16, 0)
	ctx := context.Background()

	if err := q.InjectStyle(ctx, "tiny", "a{}"); err != bridge.ErrCSSTooShort {
		t.Fatalf("expected ErrCSSTooShort, got %v", err)
	}
	big := strings.Repeat("x", 9*1024)
	if err := q.RunScript(ctx, big); err != bridge.ErrScriptTooLarge {
		t.Fatalf("expected ErrScriptTooLarge, got %v", err)
	}
	if q.Pending() != 0 {
		t.Fatalf("rejected payloads must not be queued")
	}
}

func TestSweepDropsExpiredCommands(t *testing.T) {
	t.Parallel()

	q := newQueue(16, 10*time.Millisecond)
	ctx := context.Background()

	q.RunScript(ctx, "(function(){})();")
	time.Sleep(25 * time.Millisecond)
	q.RunScript(ctx, "(function(){ /* fresh */ })();")

	if dropped := q.Sweep(); dropped != 1 {
		t.Fatalf("Sweep() dropped %d commands, want 1", dropped)
	}
	if q.Pending() != 1 {
		t.Fatalf("fresh command must survive the sweep")
	}
}

func TestSweeperClearsAbandonedQueue(t *testing.T) {
	t.Parallel()

	q := newQueue(16, 10*time.Millisecond)
	q.RunScript(context.Background(), "(function(){})();")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bridge.NewSweeper(zap.NewNop(), q, 5*time.Millisecond).Start(ctx)

	deadline := time.Now().Add(time.Second)
	for q.Pending() > 0 {
		if time.Now().After(deadline) {
			t.Fatalf("sweeper did not clear the expired command")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestQueueLimit(t *testing.T) {
	t.Parallel()

	q := newQueue(2, 0)
	ctx := context.Background()

	q.RunScript(ctx, "(function(){})();")
	q.RunScript(ctx, "(function(){})();")
	if err := q.RunScript(ctx, "(function(){})();"); err != bridge.ErrQueueFull {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}
}
