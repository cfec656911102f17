package dto

import (
	"strings"

	model "anggotaku_backend/internals/features/pins/pins/model"
)

const (
	MsgPinCreated = "New PIN generated"
	MsgPinExists  = "PIN already exists"
)

// GeneratePinRequest: name bisa dari ?name= (klien lama) atau body JSON.
type GeneratePinRequest struct {
	Name string `json:"name" query:"name"`
}

func (r *GeneratePinRequest) Normalize() { r.Name = strings.TrimSpace(r.Name) }

type VerifyPinRequest struct {
	Pin string `json:"pin" validate:"required"`
}

type GeneratePinResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Pin     string `json:"pin"`
	Message string `json:"message"`
}

func NewGeneratePinResponse(m *model.PinModel, created bool) GeneratePinResponse {
	msg := MsgPinExists
	if created {
		msg = MsgPinCreated
	}
	return GeneratePinResponse{ID: m.ID, Name: m.Name, Pin: m.Pin, Message: msg}
}

type VerifyPinResponse struct {
	Status string `json:"status"`
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Pin    string `json:"pin"`
}

func NewVerifyPinResponse(m *model.PinModel) VerifyPinResponse {
	return VerifyPinResponse{Status: "verified", ID: m.ID, Name: m.Name, Pin: m.Pin}
}
