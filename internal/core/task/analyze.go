package task

import (
	"context"
	"fmt"
	"strings"

	"ai-doc-assistant/config"
	"ai-doc-assistant/internal/core/session"
	"ai-doc-assistant/internal/llm"
	"ai-doc-assistant/pkg/apperror/status"
)

func (d *Dispatcher) analyze(ctx context.Context, sess *session.Session, req AnalyzeRequest) (*Result, error) {
	doc := sess.Document()
	if doc == nil || strings.TrimSpace(doc.Text) == "" {
		return nil, status.New(status.EmptyContext, fmt.Errorf("no document loaded"))
	}

	topN := req.TopN
	if topN <= 0 {
		topN = config.Cfg.Analyzer.TopN
	}
	analysis := d.an.Analyze(doc.Text, topN)

	res := &Result{
		Kind:     KindAnalyze,
		Analysis: &analysis,
	}

	if req.WithModelKeywords {
		keywords, err := d.modelKeywords(ctx, sess.BuildContext(false), topN)
		if err != nil {
			return nil, taskErr(KindAnalyze, err)
		}
		res.ModelKeywords = keywords
	}
	return res, nil
}

// modelKeywords asks the model for key terms as a flat comma-separated list.
func (d *Dispatcher) modelKeywords(ctx context.Context, contextText string, topN int) ([]string, error) {
	prompt := fmt.Sprintf(
		"List the %d most important keywords or key phrases of the document below. "+
			"Reply with a single comma-separated line, nothing else.\n\nDocument:\n%s",
		topN, contextText,
	)
	out, err := d.gen.Generate(ctx, prompt, llm.Options{
		Temperature:     0.1,
		MaxOutputTokens: 256,
	})
	if err != nil {
		return nil, err
	}

	var keywords []string
	for _, part := range strings.Split(out, ",") {
		if kw := strings.Trim(strings.TrimSpace(part), ".\"'"); kw != "" {
			keywords = append(keywords, kw)
		}
		if len(keywords) == topN {
			break
		}
	}
	return keywords, nil
}
