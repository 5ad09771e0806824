package deepface

// RepresentRequest for POST /represent
type RepresentRequest struct {
	Img      string `json:"img"`      // base64 encoded image
	Model    string `json:"model"`    // "VGG-Face", "ArcFace", etc
	Detector string `json:"detector"` // "opencv", "retinaface", etc
}

// RepresentResponse from POST /represent
type RepresentResponse struct {
	Results []RepresentResult `json:"results"`
}

type RepresentResult struct {
	Embedding  []float64  `json:"embedding"`
	FacialArea FacialArea `json:"facial_area"`
}

type FacialArea struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// ExtractFacesRequest for POST /extract_faces
type ExtractFacesRequest struct {
	Img      string `json:"img"`
	Detector string `json:"detector"`
}

// ExtractFacesResponse from POST /extract_faces
type ExtractFacesResponse struct {
	Results []ExtractedFace `json:"results"`
}

type ExtractedFace struct {
	FacialArea FacialArea `json:"facial_area"`
	Confidence float64    `json:"confidence"`
}
