package handler

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// ConversionResponse mirrors the success envelope for /convert.
type ConversionResponse struct {
	Success bool              `json:"success" example:"true"`
	Data    ConversionDocBody `json:"data"`
}

// ConversionDocBody documents the conversion result payload.
type ConversionDocBody struct {
	Text         string `json:"text" example:"\n--- Slide 1 ---\nQuarterly results\n"`
	SlideCount   int    `json:"slide_count" example:"12"`
	CharCount    int    `json:"char_count" example:"4821"`
	NoText       bool   `json:"no_text" example:"false"`
	DownloadName string `json:"download_name" example:"extracted_deck.txt"`
	Summary      string `json:"summary,omitempty"`
	SummaryName  string `json:"summary_name,omitempty" example:"summary_deck.txt"`
}

// ErrorResponseBody documents the error envelope.
type ErrorResponseBody struct {
	Success bool `json:"success" example:"false"`
	Error   struct {
		Code    string   `json:"code" example:"VALIDATION_REJECTED"`
		Message string   `json:"message" example:"file failed validation"`
		Reasons []string `json:"reasons,omitempty" example:"Invalid file type. Only .pptx files allowed"`
	} `json:"error"`
}
