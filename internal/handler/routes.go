// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest"
	"github.com/zeromicro/go-zero/rest/httpx"

	"moodjournal-api/internal/svc"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	httpx.SetErrorHandlerCtx(ErrorHandler)

	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodPost,
				Path:    "/entries",
				Handler: AnalyzeEntryHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/entries",
				Handler: ListEntriesHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/entries/recent",
				Handler: RecentEntriesHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/summary/weekly",
				Handler: WeeklySummaryHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/trend",
				Handler: TrendHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/trend/chart.png",
				Handler: TrendChartHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/download/history",
				Handler: DownloadHistoryHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/download/report",
				Handler: DownloadReportHandler(serverCtx),
			},
		},
		rest.WithPrefix("/api"),
	)
}
