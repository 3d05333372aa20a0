package models

// AdaptationSettings is the concrete rendering configuration derived from a
// profile. It is disposable: regenerated every time adaptation is enabled,
// never persisted.
type AdaptationSettings struct {
	FontFamily          string  `json:"fontFamily"`
	FontSize            int     `json:"fontSize"` // px
	LineHeight          float64 `json:"lineHeight"`
	LetterSpacing       float64 `json:"letterSpacing"` // em
	WordSpacing         float64 `json:"wordSpacing"`   // em
	BackgroundColor     string  `json:"backgroundColor"`
	TextColor           string  `json:"textColor"`
	EnableTTS           bool    `json:"enableTTS"`
	EnableLineHighlight bool    `json:"enableLineHighlight"`
	EnableReaderView    bool    `json:"enableReaderView"`
	ColorOverlay        string  `json:"colorOverlay"` // CSS color, or "none"
}

// DynamicSettings is the user-tunable overlay layered on top of the
// profile-derived baseline. It lives only in session memory.
type DynamicSettings struct {
	FontSize      int     `json:"fontSize"` // px
	LineHeight    float64 `json:"lineHeight"`
	LetterSpacing float64 `json:"letterSpacing"` // em
	WordSpacing   float64 `json:"wordSpacing"`   // em
	BionicReading bool    `json:"bionicReading"`
	FocusMode     bool    `json:"focusMode"`
}

// DynamicPatch is a partial DynamicSettings update. Nil fields keep their
// prior value; set fields win (last-writer-wins per field).
type DynamicPatch struct {
	FontSize      *int     `json:"fontSize,omitempty"`
	LineHeight    *float64 `json:"lineHeight,omitempty"`
	LetterSpacing *float64 `json:"letterSpacing,omitempty"`
	WordSpacing   *float64 `json:"wordSpacing,omitempty"`
	BionicReading *bool    `json:"bionicReading,omitempty"`
	FocusMode     *bool    `json:"focusMode,omitempty"`
}
