package domain

// Upload is a single user-submitted file held in memory for the duration of
// one request. It is never written to stable storage and is discarded when
// the response is sent.
type Upload struct {
	Name string
	Size int64
	Data []byte
}

// Extraction is the outcome of walking a presentation's slides. A deck with
// zero slides, or slides without any text, is a valid Extraction rather than
// a failure.
type Extraction struct {
	Text       string
	SlideCount int
}

// ConversionResult is the service-level output for an accepted upload.
type ConversionResult struct {
	Text         string `json:"text"`
	SlideCount   int    `json:"slide_count"`
	CharCount    int    `json:"char_count"`
	NoText       bool   `json:"no_text"`
	DownloadName string `json:"download_name"`
	Summary      string `json:"summary,omitempty"`
	SummaryName  string `json:"summary_name,omitempty"`
}
