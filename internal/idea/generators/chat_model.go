package generators

import (
	"context"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	errx "github.com/instant-idea-buddy/server/internal/core/error"
	"github.com/instant-idea-buddy/server/internal/idea/model"
)

// ChatModelGenerator sends the prompt through an Eino chat model (the Gemini
// chat model from eino-ext in production). Chat models return a single
// message, so only a missing reply counts as no candidates.
type ChatModelGenerator struct {
	chatModel einomodel.BaseChatModel
	name      string
}

func NewChatModelGenerator(chatModel einomodel.BaseChatModel, name string) *ChatModelGenerator {
	return &ChatModelGenerator{chatModel: chatModel, name: name}
}

func (g *ChatModelGenerator) Generate(ctx context.Context, req model.GenerationRequest) (*model.GenerationResult, error) {
	ctx = einocb.ReuseHandlers(ctx, &einocb.RunInfo{
		Name:      "IdeaChatModel",
		Type:      g.name,
		Component: components.ComponentOfChatModel,
	})

	out, err := g.chatModel.Generate(ctx,
		[]*schema.Message{schema.UserMessage(req.Prompt)},
		einomodel.WithModel(req.Model),
		einomodel.WithTemperature(req.Temperature),
		einomodel.WithTopP(req.TopP),
		einomodel.WithMaxTokens(int(req.MaxOutputTokens)),
		gemini.WithTopK(req.TopK),
	)
	if err != nil {
		return nil, errx.Classify(err)
	}

	result := &model.GenerationResult{Model: req.Model}
	if out == nil {
		return result, nil
	}
	result.Candidates = []string{out.Content}
	if out.ResponseMeta != nil {
		result.Usage = out.ResponseMeta.Usage
	}
	return result, nil
}

var _ Generator = (*ChatModelGenerator)(nil)
