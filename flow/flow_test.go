package flow

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/flowruntime/fbp/observe"
)

func TestFromFileRunsAndStops(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flow.yaml")
	src := `
node:
  id: root
  outputs:
    - id: out
  instances:
    - id: iv
      nodeId: MACRO__iv
      macroId: InlineValue
      macroData:
        value: {type: string, value: hello}
  connections:
    - from: {insId: iv, pinId: value}
      to: {pinId: out}
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := FromFile(path, WithLogger(observe.NewNoop()))
	if err != nil {
		t.Fatalf("FromFile failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f.Run(ctx)

	select {
	case <-f.Stopped():
	case <-time.After(time.Second):
		t.Fatal("flow never stopped")
	}

	if err := f.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}

	decl, err := f.ToDict()
	if err != nil {
		t.Fatalf("ToDict failed: %v", err)
	}
	if decl.Node.ID != "root" {
		t.Fatalf("got node id %q, want %q", decl.Node.ID, "root")
	}
}

func TestFromFileLoadErrorPropagates(t *testing.T) {
	if _, err := FromFile("/nonexistent/flow.yaml"); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
