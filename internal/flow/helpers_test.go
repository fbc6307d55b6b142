package flow

import (
	"context"
	"io"
	"log/slog"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/flownetgo/internal/ctxlog"
)

// testCtx carries a discard logger so elaboration debug logging stays quiet.
func testCtx() context.Context {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ctxlog.WithLogger(context.Background(), logger)
}

func ctyNumber(v int64) cty.Value {
	return cty.NumberIntVal(v)
}
