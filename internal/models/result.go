package models

type ProfileRequest struct {
	Gender          Gender   `json:"gender"`
	HeightCM        float64  `json:"height_cm"`
	WeightKG        float64  `json:"weight_kg"`
	SkinTone        SkinTone `json:"skin_tone"`
	PreferredStyles []string `json:"preferred_styles"`
}

type AnalyzeResponse struct {
	ID          string             `json:"id"`
	Attributes  ClothingAttributes `json:"attributes"`
	NotClothing bool               `json:"not_clothing"`
}

type RecommendRequest struct {
	Situation string `json:"situation"`
}

type RecommendResponse struct {
	Result RecommendationResult `json:"result"`
	Images []GeneratedImage     `json:"images"`
}

type JobResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type JobResultResponse struct {
	ID           string                `json:"id"`
	Status       string                `json:"status"`
	Result       *RecommendationResult `json:"result,omitempty"`
	Images       []GeneratedImage      `json:"images,omitempty"`
	ErrorMessage *string               `json:"error_message,omitempty"`
}

type SpeechRequest struct {
	Text string `json:"text"`
}

type TryOnResponse struct {
	URL     string `json:"url"`
	Message string `json:"message"`
}
