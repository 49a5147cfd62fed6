package personality

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hrygo/guppshupp/ai/core/llm"
	"github.com/hrygo/guppshupp/ai/memory"
)

// fakeService scripts gateway behavior per call. complete receives the call
// index (0-based) alongside the request.
type fakeService struct {
	mu       sync.Mutex
	requests []llm.CompletionRequest
	complete func(n int, req llm.CompletionRequest) (string, error)
}

func (f *fakeService) Complete(_ context.Context, req llm.CompletionRequest) (string, *llm.CallStats, error) {
	f.mu.Lock()
	n := len(f.requests)
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	text, err := f.complete(n, req)
	if err != nil {
		return "", nil, err
	}
	return text, &llm.CallStats{TotalTokens: 10, Attempts: 1}, nil
}

func (f *fakeService) HealthCheck(context.Context) bool { return true }

func staticReply(text string) func(int, llm.CompletionRequest) (string, error) {
	return func(int, llm.CompletionRequest) (string, error) { return text, nil }
}

func TestGenerateTemperatureContract(t *testing.T) {
	tests := []struct {
		personality Type
		want        float32
	}{
		{TypeFriend, 0.7},
		{TypeMentor, 0.5},
		{TypeProfessional, 0.5},
		{TypeEnthusiastic, 0.5},
	}

	for _, tt := range tests {
		t.Run(string(tt.personality), func(t *testing.T) {
			svc := &fakeService{complete: staticReply("hello there")}
			engine := NewEngine(svc)

			_, err := engine.Generate(context.Background(), &GenerateRequest{
				Message:     "hi",
				Personality: tt.personality,
			})
			require.NoError(t, err)
			require.Len(t, svc.requests, 1)
			require.Equal(t, tt.want, svc.requests[0].Temperature)
			require.Equal(t, generateMaxTokens, svc.requests[0].MaxTokens)
		})
	}
}

func TestGenerateUsesProfileSystemPrompt(t *testing.T) {
	svc := &fakeService{complete: staticReply("ok")}
	engine := NewEngine(svc)

	_, err := engine.Generate(context.Background(), &GenerateRequest{
		Message:     "hi",
		Personality: TypeMentor,
	})
	require.NoError(t, err)

	profile, _ := GetProfile(TypeMentor)
	require.Equal(t, profile.SystemPrompt, svc.requests[0].System)
	require.Contains(t, svc.requests[0].User, "User message: hi")
}

func TestGenerateUnknownPersonality(t *testing.T) {
	svc := &fakeService{complete: staticReply("ok")}
	engine := NewEngine(svc)

	_, err := engine.Generate(context.Background(), &GenerateRequest{
		Message:     "hi",
		Personality: Type("pirate"),
	})
	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	require.Empty(t, svc.requests)
}

func TestGenerateMemoryAnnotations(t *testing.T) {
	mem := memory.NewUserMemory("u1")
	mem.Preferences["communication_style"] = []memory.Preference{
		{Category: "communication_style", Value: "concise", Confidence: 0.9},
	}
	mem.Facts = []memory.Fact{
		{FactType: "personal", Value: "software engineer", Confidence: 0.8},
	}

	t.Run("referenced", func(t *testing.T) {
		svc := &fakeService{complete: staticReply("As a Software Engineer you may prefer a concise answer.")}
		engine := NewEngine(svc)

		resp, err := engine.Generate(context.Background(), &GenerateRequest{
			Message:     "hi",
			Personality: TypeMentor,
			Memory:      mem,
		})
		require.NoError(t, err)
		require.Equal(t, []string{"Referenced preference: concise"}, resp.PersonalizationElements)
		require.Equal(t, []string{"Referenced fact: software engineer"}, resp.MemoryReferences)
	})

	t.Run("not referenced", func(t *testing.T) {
		svc := &fakeService{complete: staticReply("Here is a long elaborate answer about cooking.")}
		engine := NewEngine(svc)

		resp, err := engine.Generate(context.Background(), &GenerateRequest{
			Message:     "hi",
			Personality: TypeMentor,
			Memory:      mem,
		})
		require.NoError(t, err)
		require.Empty(t, resp.PersonalizationElements)
		require.Empty(t, resp.MemoryReferences)
	})

	t.Run("nil memory", func(t *testing.T) {
		svc := &fakeService{complete: staticReply("anything")}
		engine := NewEngine(svc)

		resp, err := engine.Generate(context.Background(), &GenerateRequest{
			Message:     "hi",
			Personality: TypeMentor,
		})
		require.NoError(t, err)
		require.Empty(t, resp.PersonalizationElements)
		require.Empty(t, resp.MemoryReferences)
	})
}

func TestGenerateGatewayError(t *testing.T) {
	gwErr := &llm.Error{Err: errors.New("boom"), Kind: llm.ErrorKindHTTPStatus, Status: 503}
	svc := &fakeService{complete: func(int, llm.CompletionRequest) (string, error) {
		return "", gwErr
	}}
	engine := NewEngine(svc)

	_, err := engine.Generate(context.Background(), &GenerateRequest{
		Message:     "hi",
		Personality: TypeFriend,
	})

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	require.Equal(t, TypeFriend, genErr.Personality)

	var llmErr *llm.Error
	require.ErrorAs(t, err, &llmErr)
	require.Equal(t, 503, llmErr.Status)
}

func TestTransform(t *testing.T) {
	t.Run("all sub-calls succeed", func(t *testing.T) {
		svc := &fakeService{complete: func(n int, req llm.CompletionRequest) (string, error) {
			switch n {
			case 0:
				return "Per our analysis, the metrics look strong.", nil
			case 1:
				return "Shifted to a more formal register.", nil
			default:
				return "Formality increased markedly.", nil
			}
		}}
		engine := NewEngine(svc)

		resp, err := engine.Transform(context.Background(), &TransformRequest{
			Original: "yeah looks good to me!",
			Target:   TypeProfessional,
		})
		require.NoError(t, err)
		require.Equal(t, "yeah looks good to me!", resp.Original)
		require.Equal(t, "Per our analysis, the metrics look strong.", resp.Transformed)
		require.Equal(t, TypeProfessional, resp.Personality)
		require.Equal(t, "Shifted to a more formal register.", resp.Explanation)
		require.Equal(t, "Formality increased markedly.", resp.ToneAnalysis["analysis"])
		require.Equal(t, 0.85, resp.Confidence)

		require.Len(t, svc.requests, 3)
		require.Equal(t, float32(0.5), svc.requests[0].Temperature)
		require.Equal(t, explanationSystem, svc.requests[1].System)
		require.Equal(t, float32(narrativeTemperature), svc.requests[1].Temperature)
		require.Equal(t, explanationMaxTokens, svc.requests[1].MaxTokens)
		require.Equal(t, toneAnalysisSystem, svc.requests[2].System)
		require.Equal(t, toneAnalysisMaxTokens, svc.requests[2].MaxTokens)
	})

	t.Run("sub-call failures degrade to placeholders", func(t *testing.T) {
		svc := &fakeService{complete: func(n int, req llm.CompletionRequest) (string, error) {
			if n == 0 {
				return "Transformed text.", nil
			}
			return "", &llm.Error{Err: errors.New("overloaded"), Kind: llm.ErrorKindHTTPStatus, Status: 429}
		}}
		engine := NewEngine(svc)

		resp, err := engine.Transform(context.Background(), &TransformRequest{
			Original: "hello",
			Target:   TypeCreative,
		})
		require.NoError(t, err)
		require.Equal(t, "Transformed text.", resp.Transformed)
		require.Equal(t, explanationPlaceholder, resp.Explanation)
		require.Equal(t, map[string]string{"analysis": toneAnalysisPlaceholder}, resp.ToneAnalysis)
	})

	t.Run("main call failure is terminal", func(t *testing.T) {
		svc := &fakeService{complete: func(int, llm.CompletionRequest) (string, error) {
			return "", errors.New("down")
		}}
		engine := NewEngine(svc)

		_, err := engine.Transform(context.Background(), &TransformRequest{
			Original: "hello",
			Target:   TypeTherapist,
		})
		var genErr *GenerationError
		require.ErrorAs(t, err, &genErr)
		require.Len(t, svc.requests, 1)
	})
}

func TestCompare(t *testing.T) {
	t.Run("all variants succeed", func(t *testing.T) {
		svc := &fakeService{complete: func(n int, req llm.CompletionRequest) (string, error) {
			for _, typ := range AllTypes() {
				p, _ := GetProfile(typ)
				if p.SystemPrompt == req.System {
					return "response as " + string(typ), nil
				}
			}
			return "", errors.New("unexpected system prompt")
		}}
		engine := NewEngine(svc)

		cmp, err := engine.Compare(context.Background(), "how do I learn Go?", "base answer", []Type{TypeMentor, TypeFriend})
		require.NoError(t, err)
		require.Equal(t, "how do I learn Go?", cmp.UserMessage)
		require.Equal(t, "base answer", cmp.BaseResponse)
		require.Equal(t, map[Type]string{
			TypeMentor: "response as mentor",
			TypeFriend: "response as friend",
		}, cmp.Responses)
		require.Equal(t, "high", cmp.Analysis["tone_variety"])
		require.NotEmpty(t, cmp.Recommendations)
	})

	t.Run("defaults to full catalog", func(t *testing.T) {
		svc := &fakeService{complete: staticReply("ok")}
		engine := NewEngine(svc)

		cmp, err := engine.Compare(context.Background(), "hi", "base", nil)
		require.NoError(t, err)
		require.Len(t, cmp.Responses, len(AllTypes()))
		for _, typ := range AllTypes() {
			require.Contains(t, cmp.Responses, typ)
		}
	})

	t.Run("any failure aborts the comparison", func(t *testing.T) {
		svc := &fakeService{complete: func(n int, req llm.CompletionRequest) (string, error) {
			friend, _ := GetProfile(TypeFriend)
			if req.System == friend.SystemPrompt {
				return "", errors.New("gateway down")
			}
			return "fine", nil
		}}
		engine := NewEngine(svc)

		cmp, err := engine.Compare(context.Background(), "hi", "base", []Type{TypeMentor, TypeFriend, TypeAnalytical})
		require.Error(t, err)
		require.Nil(t, cmp)

		var genErr *GenerationError
		require.ErrorAs(t, err, &genErr)
		require.Equal(t, TypeFriend, genErr.Personality)
	})
}

func TestComparisonCaseInsensitiveAnnotation(t *testing.T) {
	mem := memory.NewUserMemory("u1")
	mem.Facts = []memory.Fact{{FactType: "personal", Value: "Lives in Mumbai", Confidence: 0.7}}

	refs := extractMemoryReferences("I hear LIVES IN MUMBAI is great this season.", mem)
	require.Equal(t, []string{"Referenced fact: Lives in Mumbai"}, refs)
}
