package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"moodjournal-api/internal/logic"
	"moodjournal-api/internal/svc"
	"moodjournal-api/internal/types"
)

func AnalyzeEntryHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.AnalyzeRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, badRequest{err})
			return
		}

		l := logic.NewAnalyzeEntryLogic(r.Context(), svcCtx)
		resp, err := l.AnalyzeEntry(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
