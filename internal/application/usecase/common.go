package usecase

import (
	"strings"

	"github.com/jhoicas/Orcamentos-api/internal/application/dto"
)

func pageOf(p dto.PageRequest, total int) dto.PageResponse {
	return dto.PageResponse{Limit: p.Limit, Offset: p.Offset, Total: total}
}

func normalizePage(p dto.PageRequest) dto.PageRequest {
	p.DefaultPage()
	return p
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
