package observers

import (
	"context"

	einocb "github.com/cloudwego/eino/callbacks"
	callbackHelper "github.com/cloudwego/eino/utils/callbacks"
)

// RunName identifies idea requests in callback RunInfo.
const RunName = "IdeaRequest"

// NewAllCallbacks aggregates the prompt and chat model observers into one callbacks.Handler.
func NewAllCallbacks() einocb.Handler {
	return callbackHelper.NewHandlerHelper().
		ChatModel(newModelHandler()).
		Prompt(newPromptHandler()).
		Handler()
}

// WithCallbacks attaches the observers to ctx so components invoked with it
// outside of a compiled graph still report their lifecycle.
func WithCallbacks(ctx context.Context) context.Context {
	return einocb.InitCallbacks(ctx, &einocb.RunInfo{Name: RunName}, NewAllCallbacks())
}
