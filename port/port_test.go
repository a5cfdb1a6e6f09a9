package port

import (
	"context"
	"testing"
	"time"

	"github.com/flowruntime/fbp/value"
)

func TestRefFanOutSharesIdentity(t *testing.T) {
	out := NewOutput("o", Ref)
	a := NewQueueInput("a", Required, 8)
	b := NewQueueInput("b", Required, 8)
	out.Connect(a)
	out.Connect(b)
	a.IncRefCount()
	b.IncRefCount()

	ctx := context.Background()
	original := value.Sequence([]value.Value{value.Number(1)})
	if err := out.Send(ctx, original); err != nil {
		t.Fatal(err)
	}

	va, _, err := a.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	vb, _, err := b.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !va.Equal(vb) {
		t.Fatalf("ref fan-out consumers disagree: %v vs %v", va, vb)
	}
}

func TestValueFanOutIsolatesMutation(t *testing.T) {
	out := NewOutput("o", Value)
	a := NewQueueInput("a", Required, 8)
	b := NewQueueInput("b", Required, 8)
	out.Connect(a)
	out.Connect(b)
	a.IncRefCount()
	b.IncRefCount()

	ctx := context.Background()
	if err := out.Send(ctx, value.Mapping(map[string]value.Value{"k": value.Number(1)})); err != nil {
		t.Fatal(err)
	}

	va, _, _ := a.Get(ctx)
	vb, _, _ := b.Get(ctx)

	ma, _ := va.MappingItems()
	ma["k"] = value.Number(99)

	mb, _ := vb.MappingItems()
	n, _ := mb["k"].Number()
	if n != 1 {
		t.Fatalf("value-mode consumer b observed consumer a's mutation: got %v", n)
	}
}

func TestCircleRoundRobin(t *testing.T) {
	out := NewOutput("o", Circle)
	a := NewQueueInput("a", Required, 8)
	b := NewQueueInput("b", Required, 8)
	out.Connect(a)
	out.Connect(b)
	a.IncRefCount()
	b.IncRefCount()

	ctx := context.Background()
	for i := 0; i < 4; i++ {
		if err := out.Send(ctx, value.Number(float64(i))); err != nil {
			t.Fatal(err)
		}
	}

	wantA := []float64{0, 2}
	wantB := []float64{1, 3}
	for _, want := range wantA {
		v, _, _ := a.Get(ctx)
		n, _ := v.Number()
		if n != want {
			t.Fatalf("consumer a: got %v, want %v", n, want)
		}
	}
	for _, want := range wantB {
		v, _, _ := b.Get(ctx)
		n, _ := v.Number()
		if n != want {
			t.Fatalf("consumer b: got %v, want %v", n, want)
		}
	}
}

func TestEOSPropagatesOnlyAfterAllProducersClose(t *testing.T) {
	in := NewQueueInput("in", Required, 8)
	in.IncRefCount()
	in.IncRefCount()

	out1 := NewOutput("o1", Ref)
	out2 := NewOutput("o2", Ref)
	out1.Connect(in)
	out2.Connect(in)

	ctx := context.Background()
	if err := out1.Send(ctx, value.Number(1)); err != nil {
		t.Fatal(err)
	}
	if err := out1.Close(ctx); err != nil {
		t.Fatal(err)
	}

	v, isEOS, err := in.Get(ctx)
	if err != nil || isEOS {
		t.Fatalf("expected a value before the second producer closes, got isEOS=%v err=%v", isEOS, err)
	}
	if n, _ := v.Number(); n != 1 {
		t.Fatalf("got %v, want 1", n)
	}

	// Start a blocking Get concurrently; it must only unblock once out2
	// also closes.
	done := make(chan bool, 1)
	go func() {
		_, isEOS, _ := in.Get(ctx)
		done <- isEOS
	}()

	select {
	case <-done:
		t.Fatal("Get returned before the second producer closed")
	case <-time.After(20 * time.Millisecond):
	}

	if err := out2.Close(ctx); err != nil {
		t.Fatal(err)
	}

	select {
	case isEOS := <-done:
		if !isEOS {
			t.Fatal("expected isEOS=true once every producer has closed")
		}
	case <-time.After(time.Second):
		t.Fatal("Get never returned after the last producer closed")
	}
}

func TestStickyLatchesAndNeverBlocks(t *testing.T) {
	in := NewStickyInput("s", Optional, 8, value.Number(-1))
	in.IncRefCount()
	out := NewOutput("o", Ref)
	out.Connect(in)

	ctx := context.Background()
	v, _, _ := in.Get(ctx)
	if n, _ := v.Number(); n != -1 {
		t.Fatalf("expected default before priming, got %v", n)
	}

	if err := out.Send(ctx, value.Number(7)); err != nil {
		t.Fatal(err)
	}
	v, _, _ = in.Get(ctx)
	if n, _ := v.Number(); n != 7 {
		t.Fatalf("expected latched 7, got %v", n)
	}

	// Get again with nothing new queued: still returns the latch, not a
	// block.
	v, _, _ = in.Get(ctx)
	if n, _ := v.Number(); n != 7 {
		t.Fatalf("expected latch to persist, got %v", n)
	}
}

func TestStaticAlwaysReturnsConfiguredValue(t *testing.T) {
	in := NewStaticInput("st", value.String("fixed"))
	for i := 0; i < 3; i++ {
		v, isEOS, err := in.Get(context.Background())
		if err != nil || isEOS {
			t.Fatalf("static input should never error or EOS, got isEOS=%v err=%v", isEOS, err)
		}
		if s, _ := v.Str(); s != "fixed" {
			t.Fatalf("got %q, want %q", s, "fixed")
		}
	}
}

func TestSendOnUnconnectedOutputIsNoop(t *testing.T) {
	out := NewOutput("o", Ref)
	if err := out.Send(context.Background(), value.Number(1)); err != nil {
		t.Fatalf("sending on an unconnected output should be a no-op, got %v", err)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	in := NewQueueInput("in", Required, 8)
	in.IncRefCount()
	out := NewOutput("o", Ref)
	out.Connect(in)

	ctx := context.Background()
	if err := out.Close(ctx); err != nil {
		t.Fatal(err)
	}
	if err := out.Close(ctx); err != nil {
		t.Fatal(err)
	}

	_, isEOS, err := in.Get(ctx)
	if err != nil || !isEOS {
		t.Fatalf("expected exactly one EOS to have been delivered, got isEOS=%v err=%v", isEOS, err)
	}
}

func TestQueueInputEmptyAndLen(t *testing.T) {
	in := NewQueueInput("in", Required, 8)
	in.IncRefCount()
	out := NewOutput("o", Ref)
	out.Connect(in)

	if !in.Empty() || in.Len() != 0 {
		t.Fatalf("expected a freshly-created input to be empty, got Len()=%d", in.Len())
	}

	ctx := context.Background()
	if err := out.Send(ctx, value.Number(1)); err != nil {
		t.Fatal(err)
	}
	if err := out.Send(ctx, value.Number(2)); err != nil {
		t.Fatal(err)
	}
	if in.Empty() || in.Len() != 2 {
		t.Fatalf("expected Len()=2 after two sends, got %d", in.Len())
	}

	if _, _, err := in.Get(ctx); err != nil {
		t.Fatal(err)
	}
	if in.Len() != 1 {
		t.Fatalf("expected Len()=1 after one Get, got %d", in.Len())
	}

	if _, _, err := in.Get(ctx); err != nil {
		t.Fatal(err)
	}
	if !in.Empty() || in.Len() != 0 {
		t.Fatalf("expected the input to be empty again, got Len()=%d", in.Len())
	}
}

func TestStaticInputIsAlwaysEmpty(t *testing.T) {
	in := NewStaticInput("st", value.String("fixed"))
	if !in.Empty() || in.Len() != 0 {
		t.Fatalf("a Static input has no backing queue and should always report empty, got Len()=%d", in.Len())
	}
}

func TestGetCanceledByContext(t *testing.T) {
	in := NewQueueInput("in", Required, 8)
	in.IncRefCount()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, _, err := in.Get(ctx)
		done <- err
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected an error once ctx is canceled")
		}
	case <-time.After(time.Second):
		t.Fatal("Get never returned after ctx cancellation")
	}
}
