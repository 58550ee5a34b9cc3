package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain object",
			in:   `{"a":1}`,
			want: `{"a":1}`,
		},
		{
			name: "json code fence",
			in:   "```json\n{\"a\":1}\n```",
			want: `{"a":1}`,
		},
		{
			name: "leading and trailing prose",
			in:   "Here you go: {\"a\":{\"b\":2}} hope this helps {x}",
			want: `{"a":{"b":2}}`,
		},
		{
			name: "trailing commas",
			in:   `{"a":[1,2,],}`,
			want: `{"a":[1,2]}`,
		},
		{
			name: "braces inside strings",
			in:   `{"a":"}{"} tail`,
			want: `{"a":"}{"}`,
		},
		{
			name: "no json",
			in:   "nothing here",
			want: "nothing here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJSONResponse(tt.in))
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var out struct {
		Title string `json:"title"`
	}
	require.NoError(t, DecodeJSON("```json\n{\"title\":\"부산 하루\",}\n```", &out))
	assert.Equal(t, "부산 하루", out.Title)

	err := DecodeJSON("not json", &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse JSON")

	require.Error(t, DecodeJSON("   ", &out))
}

func TestResponseText(t *testing.T) {
	assert.Equal(t, "", ResponseText(nil))

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: nil},
			{Content: &genai.Content{Parts: []*genai.Part{{Text: ""}, {Text: "hello"}}}},
		},
	}
	assert.Equal(t, "hello", ResponseText(resp))

	split := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{
				{Text: "planning the search", Thought: true},
				{Text: `{"posts": [{"title": "a",`},
				{Text: ` "url": "https://x/1"}]}`},
			}}},
		},
	}
	assert.Equal(t, `{"posts": [{"title": "a", "url": "https://x/1"}]}`, ResponseText(split))
}

func TestGroundingSources(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				GroundingMetadata: &genai.GroundingMetadata{
					GroundingChunks: []*genai.GroundingChunk{
						{Web: &genai.GroundingChunkWeb{URI: "https://a.example", Title: "A"}},
						{Web: &genai.GroundingChunkWeb{URI: "https://a.example", Title: "A again"}},
						{Web: nil},
						{Web: &genai.GroundingChunkWeb{URI: "https://b.example", Title: "B"}},
					},
				},
			},
		},
	}

	sources := GroundingSources(resp)
	require.Len(t, sources, 2)
	assert.Equal(t, Source{URI: "https://a.example", Title: "A"}, sources[0])
	assert.Equal(t, "https://b.example", sources[1].URI)

	assert.Empty(t, GroundingSources(nil))
}
