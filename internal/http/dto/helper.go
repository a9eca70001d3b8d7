package dto

import "mockui/internal/model"

type FetchRequest struct {
	URL  string `json:"url" binding:"required"`
	Wait bool   `json:"wait"`
}

type FetchResponse struct {
	Code    string       `json:"code"`
	Handle  model.Handle `json:"handle"`
	Payload any          `json:"payload,omitempty"`
}

type LogRequest struct {
	Args []any `json:"args" binding:"required"`
}

type RenderRequest struct {
	Data any `json:"data"`
}

type HandleResponse struct {
	Handle model.Handle `json:"handle"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type StatusResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
