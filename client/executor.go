package client

import (
	"context"

	"github.com/chatterbox-ai/chatterbox-client/client/internal/shardqueue"
)

// executor abstracts the internal async job runner used by background
// operations (logout notification, queued chat dispatch).
type executor interface {
	Submit(context.Context, string, shardqueue.Job) error
	Stop()
}

// inlineExecutor is installed by WithoutExecutor. It runs jobs synchronously
// on the caller's goroutine, so short-lived CLI invocations need no drain.
type inlineExecutor struct{}

func (inlineExecutor) Submit(ctx context.Context, _ string, j shardqueue.Job) error {
	return j.Run(ctx)
}
func (inlineExecutor) Stop() {}
