package dto

// UploadImage is one storefront image: a base64 data URL plus its print
// options.
type UploadImage struct {
	AspectRatio string `json:"aspectRatio"`
	Hangars     bool   `json:"hangars"`
	Src         string `json:"src"`
}

// UploadRequest is the POST /upload payload.
type UploadRequest struct {
	Package string        `json:"package"`
	Images  []UploadImage `json:"images"`
}

// UploadResponse reports the created order.
type UploadResponse struct {
	OrderID int64 `json:"orderID"`
}
