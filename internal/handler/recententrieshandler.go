package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"moodjournal-api/internal/logic"
	"moodjournal-api/internal/svc"
	"moodjournal-api/internal/types"
)

func RecentEntriesHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.RecentEntriesRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, badRequest{err})
			return
		}

		l := logic.NewRecentEntriesLogic(r.Context(), svcCtx)
		resp, err := l.RecentEntries(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
