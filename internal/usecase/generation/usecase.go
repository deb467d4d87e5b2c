package generation

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/vibecoding/vibe-backend/internal/entity"
	"github.com/vibecoding/vibe-backend/internal/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Usecase struct {
	llm   LLMConnector
	model string
}

func NewUsecase(llm LLMConnector, model string) *Usecase {
	return &Usecase{
		llm:   llm,
		model: model,
	}
}

// Generate runs the planner and copywriter concurrently, then the coder with
// both outputs as context, and merges the three texts.
//
// The run is detached from the caller's cancellation: a client disconnect does
// not abort outstanding upstream calls. Inside the fan-out the first failure
// cancels the sibling call and its result is discarded. Any failure aborts the
// whole run; no partial result is returned.
func (u *Usecase) Generate(ctx context.Context, req *entity.GenerateRequest) (*entity.MergedResult, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, entity.ErrEmptyPrompt
	}

	ctx = logger.AddFields(context.WithoutCancel(ctx),
		zap.String("generation_id", uuid.NewString()),
		zap.String("model", u.model),
	)
	start := time.Now()

	ctxzap.Info(ctx, "starting generation", zap.Int("prompt_length", len(req.Prompt)))

	plan, copyText, err := u.fanOut(ctx, req.Prompt)
	if err != nil {
		ctxzap.Error(ctx, "planning stage failed", zap.Error(err))
		return nil, err
	}

	codeStart := time.Now()
	code, err := coderAgent.run(ctx, u.llm, u.model, req.Prompt, plan, copyText)
	if err != nil {
		ctxzap.Error(ctx, "code generation failed", zap.Error(err))
		return nil, err
	}
	ctxzap.Info(ctx, "code generated", zap.Duration("duration", time.Since(codeStart)))

	result := Merge(plan, copyText, code)

	ctxzap.Info(ctx, "generation completed",
		zap.Int("improvements", len(result.Improvements)),
		zap.Int("component_count", ComponentCount(code)),
		zap.Duration("duration", time.Since(start)),
	)

	return result, nil
}

func (u *Usecase) fanOut(ctx context.Context, brief string) (plan, copyText string, err error) {
	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		out, err := plannerAgent.run(gctx, u.llm, u.model, brief, "", "")
		if err != nil {
			return err
		}
		plan = out
		return nil
	})

	g.Go(func() error {
		out, err := copywriterAgent.run(gctx, u.llm, u.model, brief, "", "")
		if err != nil {
			return err
		}
		copyText = out
		return nil
	})

	if err := g.Wait(); err != nil {
		return "", "", err
	}

	ctxzap.Info(ctx, "plan and copy generated", zap.Duration("duration", time.Since(start)))
	return plan, copyText, nil
}
