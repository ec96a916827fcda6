package align

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/termtools/extract-terms/internal/llm"
	"github.com/termtools/extract-terms/internal/model"
)

type stubProvider struct {
	calls    atomic.Int64
	complete func(req llm.CompletionRequest) (*llm.CompletionResponse, error)
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) IsAvailable(ctx context.Context) bool { return true }

func (p *stubProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	p.calls.Add(1)
	return p.complete(req)
}

func pairsResponse(pairs ...[2]string) string {
	var b strings.Builder
	b.WriteString("<alignments>")
	for _, p := range pairs {
		fmt.Fprintf(&b, "<pair><zh>%s</zh><en>%s</en></pair>", p[0], p[1])
	}
	b.WriteString("</alignments>")
	return b.String()
}

func testConfig(batchSize int, keepUnmatched bool) model.Config {
	cfg := model.DefaultConfig()
	cfg.Align.BatchSize = batchSize
	cfg.Align.KeepUnmatched = keepUnmatched
	return *cfg
}

func quietLog() *logrus.Entry {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logrus.NewEntry(logger)
}

func TestAlign_PairsTerms(t *testing.T) {
	provider := &stubProvider{
		complete: func(req llm.CompletionRequest) (*llm.CompletionResponse, error) {
			return &llm.CompletionResponse{Text: pairsResponse(
				[2]string{"呼吸机", "Ventilator"},
				[2]string{"潮气量", "Tidal volume"},
			)}, nil
		},
	}

	a := New(provider, nil, testConfig(50, false), quietLog())

	pairs, err := a.Align(context.Background(),
		[]string{"呼吸机", "潮气量"},
		[]string{"Ventilator", "Tidal volume"})
	require.NoError(t, err)

	require.Len(t, pairs, 2)
	assert.Equal(t, model.AlignedPair{ZH: "呼吸机", EN: "Ventilator"}, pairs[0])
	assert.Equal(t, model.AlignedPair{ZH: "潮气量", EN: "Tidal volume"}, pairs[1])
}

func TestAlign_DropsFabricatedPairs(t *testing.T) {
	provider := &stubProvider{
		complete: func(req llm.CompletionRequest) (*llm.CompletionResponse, error) {
			return &llm.CompletionResponse{Text: pairsResponse(
				[2]string{"呼吸机", "Ventilator"},
				[2]string{"编造术语", "Fabricated term"},
				[2]string{"潮气量", "Made-up translation"},
			)}, nil
		},
	}

	a := New(provider, nil, testConfig(50, false), quietLog())

	pairs, err := a.Align(context.Background(),
		[]string{"呼吸机", "潮气量"},
		[]string{"Ventilator", "Tidal volume"})
	require.NoError(t, err)

	// Only the pair whose both sides exist in the inputs survives.
	require.Len(t, pairs, 1)
	assert.Equal(t, "呼吸机", pairs[0].ZH)
}

func TestAlign_ConflictFirstWins(t *testing.T) {
	provider := &stubProvider{
		complete: func(req llm.CompletionRequest) (*llm.CompletionResponse, error) {
			return &llm.CompletionResponse{Text: pairsResponse(
				[2]string{"呼吸机", "Ventilator"},
				[2]string{"呼吸机", "Tidal volume"},
				[2]string{"潮气量", "Ventilator"},
			)}, nil
		},
	}

	a := New(provider, nil, testConfig(50, false), quietLog())

	pairs, err := a.Align(context.Background(),
		[]string{"呼吸机", "潮气量"},
		[]string{"Ventilator", "Tidal volume"})
	require.NoError(t, err)

	require.Len(t, pairs, 1)
	assert.Equal(t, model.AlignedPair{ZH: "呼吸机", EN: "Ventilator"}, pairs[0])
}

func TestAlign_CaseInsensitiveMatching(t *testing.T) {
	provider := &stubProvider{
		complete: func(req llm.CompletionRequest) (*llm.CompletionResponse, error) {
			return &llm.CompletionResponse{Text: pairsResponse(
				[2]string{"肿瘤", "tumor"},
			)}, nil
		},
	}

	a := New(provider, nil, testConfig(50, false), quietLog())

	pairs, err := a.Align(context.Background(), []string{"肿瘤"}, []string{"Tumor"})
	require.NoError(t, err)

	// The pair carries the input's original casing, not the model's.
	require.Len(t, pairs, 1)
	assert.Equal(t, "Tumor", pairs[0].EN)
}

func TestAlign_KeepUnmatched(t *testing.T) {
	provider := &stubProvider{
		complete: func(req llm.CompletionRequest) (*llm.CompletionResponse, error) {
			return &llm.CompletionResponse{Text: pairsResponse(
				[2]string{"呼吸机", "Ventilator"},
			)}, nil
		},
	}

	a := New(provider, nil, testConfig(50, true), quietLog())

	pairs, err := a.Align(context.Background(),
		[]string{"呼吸机", "潮气量"},
		[]string{"Ventilator", "Oxygen inlet"})
	require.NoError(t, err)

	require.Len(t, pairs, 3)
	assert.Equal(t, model.AlignedPair{ZH: "呼吸机", EN: "Ventilator"}, pairs[0])
	assert.Equal(t, model.AlignedPair{ZH: "潮气量"}, pairs[1])
	assert.Equal(t, model.AlignedPair{EN: "Oxygen inlet"}, pairs[2])
}

func TestAlign_Batches(t *testing.T) {
	provider := &stubProvider{
		complete: func(req llm.CompletionRequest) (*llm.CompletionResponse, error) {
			return &llm.CompletionResponse{Text: "<alignments></alignments>"}, nil
		},
	}

	a := New(provider, nil, testConfig(2, false), quietLog())

	zh := []string{"一", "二", "三", "四", "五"}
	_, err := a.Align(context.Background(), zh, []string{"one"})
	require.NoError(t, err)

	// 5 terms at batch size 2 means 3 calls.
	assert.Equal(t, int64(3), provider.calls.Load())
}

func TestAlign_ProviderErrorIsAlignmentError(t *testing.T) {
	provider := &stubProvider{
		complete: func(req llm.CompletionRequest) (*llm.CompletionResponse, error) {
			return nil, errors.New("connection reset")
		},
	}

	a := New(provider, nil, testConfig(50, false), quietLog())

	_, err := a.Align(context.Background(), []string{"呼吸机"}, []string{"Ventilator"})
	require.Error(t, err)
	assert.Equal(t, model.AlignmentError, model.KindOf(err))
}

func TestAlign_EmptyEnglishList(t *testing.T) {
	provider := &stubProvider{
		complete: func(req llm.CompletionRequest) (*llm.CompletionResponse, error) {
			t.Error("no call expected when one list is empty")
			return nil, nil
		},
	}

	a := New(provider, nil, testConfig(50, true), quietLog())

	pairs, err := a.Align(context.Background(), []string{"呼吸机"}, nil)
	require.NoError(t, err)

	// keep_unmatched still reports the lonely terms.
	require.Len(t, pairs, 1)
	assert.Equal(t, model.AlignedPair{ZH: "呼吸机"}, pairs[0])
}

func TestAlign_EmptyListsWithoutKeepUnmatched(t *testing.T) {
	provider := &stubProvider{
		complete: func(req llm.CompletionRequest) (*llm.CompletionResponse, error) {
			t.Error("no call expected when one list is empty")
			return nil, nil
		},
	}

	a := New(provider, nil, testConfig(50, false), quietLog())

	pairs, err := a.Align(context.Background(), nil, []string{"Ventilator"})
	require.NoError(t, err)
	assert.Empty(t, pairs)
}
