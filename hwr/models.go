package hwr

// Request and response shapes of the MyScript batch recognition API.

type BatchInput struct {
	Configuration *Configuration `json:"configuration,omitempty"`
	ContentType   string         `json:"contentType"`
	StrokeGroups  []*StrokeGroup `json:"strokeGroups"`
	Width         int32          `json:"width,omitempty"`
	Height        int32          `json:"height,omitempty"`
	XDPI          float32        `json:"xDPI,omitempty"`
	YDPI          float32        `json:"yDPI,omitempty"`
}

type Configuration struct {
	Lang string `json:"lang,omitempty"`
}

type StrokeGroup struct {
	Strokes []*Stroke `json:"strokes"`
}

type Stroke struct {
	X           []float32 `json:"x"`
	Y           []float32 `json:"y"`
	P           []float32 `json:"p,omitempty"`
	T           []int64   `json:"t,omitempty"`
	PointerType string    `json:"pointerType,omitempty"`
}

// jiix is the subset of the JIIX export we read.
type jiix struct {
	Label string `json:"label"`
	Text  string `json:"text"`
	Words []struct {
		Label string `json:"label"`
	} `json:"words"`
}
