package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"moodjournal-api/internal/logic"
	"moodjournal-api/internal/svc"
)

func ListEntriesHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := logic.NewListEntriesLogic(r.Context(), svcCtx)
		resp, err := l.ListEntries()
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
