package handler

import memberservice "github.com/jaehwan-AI/coloring-web/internal/modules/member/service"

type Handler struct {
	memberService *memberservice.Service
}

func New(memberService *memberservice.Service) *Handler {
	return &Handler{memberService: memberService}
}
