package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "bare object",
			raw:  `{"item_type": "상의"}`,
			want: `{"item_type": "상의"}`,
		},
		{
			name: "code fence with prose",
			raw:  "분석 결과입니다.\n```json\n{\"color\": \"블랙\", \"style_tags\": [\"캐주얼\"]}\n```\n감사합니다.",
			want: `{"color": "블랙", "style_tags": ["캐주얼"]}`,
		},
		{
			name: "nested braces and braces inside strings",
			raw:  `note {"a": {"b": "}{"}, "c": "\"}"} trailing }`,
			want: `{"a": {"b": "}{"}, "c": "\"}"}`,
		},
		{
			name: "first object wins",
			raw:  `{"first": 1} and {"second": 2}`,
			want: `{"first": 1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSONObject(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestExtractJSONObjectFailures(t *testing.T) {
	t.Run("no object keeps raw text", func(t *testing.T) {
		raw := "죄송합니다. 이미지를 분석할 수 없습니다."
		_, err := ExtractJSONObject(raw)

		var malformed *MalformedResponseError
		require.True(t, errors.As(err, &malformed))
		assert.Equal(t, raw, malformed.Raw)
	})

	t.Run("invalid content keeps candidate", func(t *testing.T) {
		_, err := ExtractJSONObject(`result: {item_type: top}`)

		var malformed *MalformedResponseError
		require.True(t, errors.As(err, &malformed))
		assert.Equal(t, "{item_type: top}", malformed.Raw)
		assert.Error(t, malformed.Err)
	})

	t.Run("unbalanced", func(t *testing.T) {
		_, err := ExtractJSONObject(`{"a": 1`)

		var malformed *MalformedResponseError
		require.True(t, errors.As(err, &malformed))
		assert.Equal(t, "unbalanced JSON object", malformed.Reason)
	})
}

func TestExtractRecommendationTwoPrompts(t *testing.T) {
	raw := "## 👕 첫 번째 코디\n설명 하나\nIMAGE_PROMPT_1: A woman in a beige trench coat\n\n## ✨ 두 번째 코디\n설명 둘\nIMAGE_PROMPT_2: A man wearing a navy blazer\n"

	result := ExtractRecommendation(raw)

	assert.Equal(t, []string{"A woman in a beige trench coat", "A man wearing a navy blazer"}, result.ImagePrompts)
	assert.NotContains(t, result.DisplayText, "IMAGE_PROMPT_1")
	assert.NotContains(t, result.DisplayText, "IMAGE_PROMPT_2")
	assert.NotContains(t, result.DisplayText, "trench coat")
	assert.Contains(t, result.DisplayText, "## 👕 첫 번째 코디")
	assert.Contains(t, result.DisplayText, "설명 둘")
}

func TestExtractRecommendationKeepsAppearanceOrder(t *testing.T) {
	raw := "IMAGE_PROMPT_2: second\ntext\nIMAGE_PROMPT_1: first\nIMAGE_PROMPT_2: again"

	assert.Equal(t, []string{"second", "first", "again"}, ExtractImagePrompts(raw))
}

func TestExtractRecommendationWithoutMarkers(t *testing.T) {
	raw := "\n\n  ## 코디 추천\n<span style='color: #87CEEB;'>데님 자켓</span>을 추천합니다.  \n\n"

	result := ExtractRecommendation(raw)

	assert.Empty(t, result.ImagePrompts)
	assert.NotNil(t, result.ImagePrompts)
	assert.Empty(t, result.SearchKeywords)
	assert.Equal(t, "## 코디 추천\n<span style='color: #87CEEB;'>데님 자켓</span>을 추천합니다.", result.DisplayText)
}

func TestExtractSearchKeywords(t *testing.T) {
	raw := "화이트 셔츠 (검색 키워드: 오버핏 화이트 셔츠)와 슬랙스 (검색 키워드:  와이드 슬랙스 ) 그리고 (검색 키워드: 오버핏 화이트 셔츠)"

	result := ExtractRecommendation(raw)

	assert.Equal(t, []string{"오버핏 화이트 셔츠", "와이드 슬랙스"}, result.SearchKeywords)
	assert.Equal(t, "화이트 셔츠 와 슬랙스  그리고", result.DisplayText)
}

func TestExtractRecommendationIsIdempotent(t *testing.T) {
	raw := "## 코디\n(검색 키워드: 니트)\nIMAGE_PROMPT_1: knit sweater\nIMAGE_PROMPT_2: long coat"

	first := ExtractRecommendation(raw)
	second := ExtractRecommendation(raw)

	assert.Equal(t, first, second)
}
