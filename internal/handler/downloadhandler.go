package handler

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest/httpx"

	"moodjournal-api/internal/logic"
	"moodjournal-api/internal/svc"
)

const csvContentType = "text/csv"

func DownloadHistoryHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := logic.NewDownloadHistoryLogic(r.Context(), svcCtx)
		body, size, err := l.DownloadHistory()
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}
		defer body.Close()

		w.Header().Set("Content-Type", csvContentType)
		w.Header().Set("Content-Disposition", attachment(filepath.Base(svcCtx.Store.Path())))
		w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
		w.WriteHeader(http.StatusOK)
		if _, err := io.Copy(w, body); err != nil {
			logx.WithContext(r.Context()).Errorf("stream history: %v", err)
		}
	}
}

func DownloadReportHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := logic.NewDownloadReportLogic(r.Context(), svcCtx)
		data, err := l.DownloadReport()
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}
		name := filepath.Base(svcCtx.Config.Journal.ReportPath)
		if !svcCtx.Config.Journal.PersistReport || name == "." {
			name = "weekly_report.csv"
		}
		writeFile(w, csvContentType, name, data)
	}
}

func writeFile(w http.ResponseWriter, contentType, name string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	if name != "" {
		w.Header().Set("Content-Disposition", attachment(name))
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func attachment(name string) string {
	return fmt.Sprintf("attachment; filename=%q", name)
}
