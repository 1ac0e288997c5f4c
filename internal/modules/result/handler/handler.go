package handler

import resultservice "github.com/jaehwan-AI/coloring-web/internal/modules/result/service"

type Handler struct {
	resultService *resultservice.Service
}

func New(resultService *resultservice.Service) *Handler {
	return &Handler{resultService: resultService}
}
