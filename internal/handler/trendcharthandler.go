package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"moodjournal-api/internal/logic"
	"moodjournal-api/internal/svc"
	"moodjournal-api/internal/types"
)

func TrendChartHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ChartRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, badRequest{err})
			return
		}

		l := logic.NewTrendChartLogic(r.Context(), svcCtx)
		png, err := l.TrendChart(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}
		writeFile(w, "image/png", "", png)
	}
}
