package services

import (
	"fmt"
	"strings"

	"wearwise/style-advisor/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildClothingAnalysisPrompt asks for a JSON-only attribute record of the pictured garment.
func (pb *PromptBuilder) BuildClothingAnalysisPrompt() string {
	return `당신은 패션 스타일리스트이자 의류 분석 전문가입니다. 이 이미지에 있는 옷을 분석해서 아래 JSON 형식에 맞춰 답변해주세요. 각 항목에 대해 가장 적절한 단 하나의 값만 선택해주세요.
**중요: 답변에는 JSON 코드 외에 어떤 설명이나 인사도 포함하지 말고, 오직 JSON 객체만 응답해야 합니다.**
만약 이미지에 옷이 없거나 의류로 판단할 수 없다면 모든 항목의 값을 "N/A"로 채워주세요. (style_tags는 ["N/A"])

{"item_type": "상의, 하의, 아우터, 신발, 액세서리 중 하나", "category": "티셔츠, 셔츠, 청바지 등 구체적인 카테고리", "color": "옷의 가장 주된 색상", "pattern": "솔리드(단색), 스트라이프, 체크 등", "style_tags": ["캐주얼", "미니멀", "스트리트", "포멀", "스포티"]}`
}

// BuildRecommendationPrompt combines profile, analyzed item and situation into one request.
func (pb *PromptBuilder) BuildRecommendationPrompt(profile models.UserProfile, clothing models.ClothingAttributes, situation string) string {
	styles := "없음"
	if len(profile.PreferredStyles) > 0 {
		styles = strings.Join(profile.PreferredStyles, ", ")
	}

	return fmt.Sprintf(`당신은 친절하고 스타일리시한 AI 패션 어드바이저입니다. 고객 정보, 의류 아이템, 주어진 상황을 바탕으로 최고의 코디를 추천해주세요.
**중요: 답변의 가독성을 높이기 위해 다음 규칙을 반드시 지켜주세요.**
1. 각 코디 제안의 제목은 Markdown의 `+"`##`"+`를 사용하여 크고 굵게 표시해주세요.
2. 설명에 어울리는 이모티콘(👕,👖,👟,✨ 등)을 자유롭게 사용해주세요.
3. 의류 아이템, 색상, 스타일 등 중요한 키워드는 `+"`<span style='color: #87CEEB;'>키워드</span>`"+` 와 같이 HTML 태그를 사용해 색상을 입혀 강조해주세요.
4. 쇼핑 검색에 쓸 수 있는 아이템은 설명 안에 `+"`(검색 키워드: 아이템 이름)`"+` 형식으로 표시해주세요.

## 🧑‍💻 고객 정보:
- 성별: %s, 키: %gcm, 몸무게: %gkg, 피부 톤: %s, 선호 스타일: %s

## 👚 분석된 의류 아이템:
- 종류: %s, 카테고리: %s, 색상: %s, 패턴: %s, 스타일: %s

## 🏞️ 주어진 상황:
- %s

## 요청 사항:
1. 위 정보를 종합하여, 총 **두 가지 스타일의 완성된 코디**를 추천하고, 각 코디를 추천한 이유를 친절하게 설명해주세요.
2. 각 코디 설명 후, DALL-E가 이미지를 생성할 수 있도록, **주어진 상황을 반영**하여 해당 코디를 입은 모델의 모습을 상세하고 사실적으로 묘사하는 **영어 프롬프트**를 다음 형식으로 한 줄씩 제공해주세요:
IMAGE_PROMPT_1: [첫 번째 코디에 대한 상세한 영어 묘사]
IMAGE_PROMPT_2: [두 번째 코디에 대한 상세한 영어 묘사]`,
		profile.Gender.Label(),
		profile.HeightCM,
		profile.WeightKG,
		profile.SkinTone.Label(),
		styles,
		clothing.ItemType.Label(),
		clothing.Category,
		clothing.Color,
		clothing.Pattern,
		strings.Join(clothing.StyleTags, ", "),
		situation,
	)
}

// BuildPersonalColorPrompt requests a labeled season diagnosis with bulleted rationale.
func (pb *PromptBuilder) BuildPersonalColorPrompt() string {
	return `당신은 전문 퍼스널 컬러 컨설턴트입니다. 이 인물의 얼굴 사진을 보고, 피부의 언더톤, 머리카락과 눈동자 색의 대비 등을 종합적으로 분석하여 가장 가능성이 높은 퍼스널 컬러를 진단해주세요.
답변은 아래 형식과 같이 **진단 결과**와 **진단 근거**를 명확히 구분하여 작성해주세요. 진단 근거는 2~3가지 핵심적인 이유를 간결한 불릿 포인트로 설명해야 합니다.
**진단 결과**: [봄 웜톤, 여름 쿨톤, 가을 웜톤, 겨울 쿨톤 중 하나]
**진단 근거**:
* 피부 톤: [피부 톤에 대한 구체적인 분석]
* 헤어/눈동자 컬러: [헤어와 눈동자 컬러에 대한 구체적인 분석]
* 전체적인 조화: [전체적인 이미지와 색의 조화에 대한 분석]`
}
