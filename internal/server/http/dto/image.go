package dto

// AdjustImageRequest is the POST /process-image payload. Brightness and
// contrast use the storefront editor's -1..1 scale.
type AdjustImageRequest struct {
	Filename   string  `json:"filename"`
	Brightness float64 `json:"brightness"`
	Contrast   float64 `json:"contrast"`
}

// AdjustImageResponse reports the finalized file.
type AdjustImageResponse struct {
	Filename string `json:"filename"`
}
