package prompts

import (
	"context"
	_ "embed"
	"fmt"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

//go:embed template/idea_prompt.txt
var ideaPrompt string

// RenderIdea renders the user prompt for one idea request via the Eino prompt
// component, so prompt callbacks attached to ctx observe it. The raw request is
// embedded as-is.
func RenderIdea(ctx context.Context, request string) (string, error) {
	ctx = einocb.ReuseHandlers(ctx, &einocb.RunInfo{
		Name:      "IdeaPrompt",
		Type:      "ChatTemplate",
		Component: components.ComponentOfPrompt,
	})
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.UserMessage(ideaPrompt),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"Request": request,
	})
	if err != nil {
		return "", fmt.Errorf("idea prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("idea prompt render: empty result")
	}
	return msgs[0].Content, nil
}
