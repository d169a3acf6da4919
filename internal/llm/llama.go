//go:build llama

package llm

import (
	"context"
	"errors"
	"runtime"
	"strings"

	llama "github.com/go-skynet/go-llama.cpp"
)

type llamaModel struct {
	m       *llama.LLama
	threads int
}

// Load opens the gguf weights at path with the given context window.
// threads <= 0 uses one thread per CPU.
func Load(path string, ctxSize, threads int) (Model, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("model path is empty")
	}
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	m, err := llama.New(path, llama.SetContext(ctxSize))
	if err != nil {
		return nil, err
	}
	return &llamaModel{m: m, threads: threads}, nil
}

func (l *llamaModel) Tokenize(text string) ([]int32, error) {
	if l.m == nil {
		return nil, errors.New("llama model not initialized")
	}
	_, ids, err := l.m.TokenizeString(text)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (l *llamaModel) Generate(ctx context.Context, prompt string, p Params) (string, error) {
	if l.m == nil {
		return "", errors.New("llama model not initialized")
	}
	// The callback is the only cancellation hook the binding offers.
	l.m.SetTokenCallback(func(string) bool {
		return ctx.Err() == nil
	})
	text, err := l.m.Predict(prompt, predictOptions(p, l.threads)...)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", err
	}
	return text, nil
}

func (l *llamaModel) Close() error {
	if l.m != nil {
		l.m.Free()
		l.m = nil
	}
	return nil
}

// predictOptions converts Params into go-llama.cpp options.
func predictOptions(p Params, threads int) []llama.PredictOption {
	temp := float32(p.Temperature)
	if !p.Sample {
		// Greedy decoding.
		temp = 0
	}
	po := []llama.PredictOption{
		llama.SetTokens(maxInt(1, p.MaxTokens)),
		llama.SetThreads(maxInt(1, threads)),
		llama.SetTemperature(temp),
	}
	if p.TopP > 0 {
		po = append(po, llama.SetTopP(float32(p.TopP)))
	}
	if len(p.Stop) > 0 {
		po = append(po, llama.SetStopWords(p.Stop...))
	}
	return po
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
