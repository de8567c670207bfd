package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/zeromicro/go-zero/core/logx"

	"moodjournal-api/internal/config"
	"moodjournal-api/internal/svc"
	"moodjournal-api/pkg/chart"
	"moodjournal-api/pkg/journal"
	"moodjournal-api/pkg/report"
	"moodjournal-api/pkg/tracker"
)

const usage = `usage: moodctl [-f config] <command> [flags]

commands:
  analyze -text "..."   analyse and log a journal entry
  summary [-days N]     mood counts for the trailing window
  trend                 daily mood counts across the whole journal
  report [-out FILE]    write the weekly Mood,Count report
  chart -out FILE       render the trend chart as PNG
  history -out FILE     copy the journal CSV`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		logx.Error(err)
		fmt.Fprintln(os.Stderr, "moodctl:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer, opts ...svc.Option) error {
	global := flag.NewFlagSet("moodctl", flag.ContinueOnError)
	global.SetOutput(out)
	global.Usage = func() { fmt.Fprintln(out, usage) }
	configPath := global.String("f", "etc/moodjournal.yaml", "the config file")
	if err := global.Parse(args); err != nil {
		return err
	}
	if global.NArg() == 0 {
		global.Usage()
		return flag.ErrHelp
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	logx.MustSetup(cfg.Log)
	logx.DisableStat()

	svcCtx, err := svc.NewServiceContext(*cfg, opts...)
	if err != nil {
		return err
	}

	cmd, rest := global.Arg(0), global.Args()[1:]
	switch cmd {
	case "analyze":
		return runAnalyze(ctx, svcCtx, rest, out)
	case "summary":
		return runSummary(svcCtx, rest, out)
	case "trend":
		return runTrend(svcCtx, out)
	case "report":
		return runReport(svcCtx, rest, out)
	case "chart":
		return runChart(svcCtx, rest, out)
	case "history":
		return runHistory(svcCtx, rest, out)
	default:
		global.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func runAnalyze(ctx context.Context, svcCtx *svc.ServiceContext, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	text := fs.String("text", "", "what is on your mind")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *text == "" && fs.NArg() > 0 {
		*text = strings.Join(fs.Args(), " ")
	}
	if svcCtx.Tracker == nil {
		return errors.New("analysis unavailable: set GEMINI_API_KEY or configure etc/llm.yaml")
	}
	res, err := svcCtx.Tracker.Analyze(ctx, *text)
	if errors.Is(err, tracker.ErrEmptyInput) {
		fmt.Fprintln(out, "Please enter some text.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "AI Analysis: %s\n", res.Narrative)
	fmt.Fprintf(out, "Logged as %s at %s\n\n", res.Entry.Category, res.Entry.Timestamp.Format(journal.TimeLayout))
	return printSummary(svcCtx, svcCtx.Config.Journal.TrailingDays, out)
}

func runSummary(svcCtx *svc.ServiceContext, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("summary", flag.ContinueOnError)
	days := fs.Int("days", svcCtx.Config.Journal.TrailingDays, "trailing window in days")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return printSummary(svcCtx, *days, out)
}

func printSummary(svcCtx *svc.ServiceContext, days int, out io.Writer) error {
	summary, err := svcCtx.Aggregator.Summarize(days)
	if notice, ok := noticeFor(err); ok {
		fmt.Fprintln(out, notice)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Weekly Mood Report (%d entries since %s)\n", summary.Total, summary.Since.Format("2006-01-02"))
	for _, row := range summary.Rows() {
		fmt.Fprintf(out, "  %-10s %s\n", row[0], row[1])
	}
	return nil
}

func runTrend(svcCtx *svc.ServiceContext, out io.Writer) error {
	series, err := svcCtx.Aggregator.Trend()
	if notice, ok := noticeFor(err); ok {
		fmt.Fprintln(out, notice)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%-10s", "Date")
	for _, c := range series.Categories {
		fmt.Fprintf(out, " %9s", c)
	}
	fmt.Fprintln(out)
	for _, p := range series.Points {
		fmt.Fprintf(out, "%-10s", p.Date.Format("2006-01-02"))
		for _, c := range series.Categories {
			fmt.Fprintf(out, " %9d", p.Counts[c])
		}
		fmt.Fprintln(out)
	}
	return nil
}

func runReport(svcCtx *svc.ServiceContext, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	path := fs.String("out", svcCtx.Config.Journal.ReportPath, "report destination")
	if err := fs.Parse(args); err != nil {
		return err
	}
	summary, err := svcCtx.Aggregator.Summarize(svcCtx.Config.Journal.TrailingDays)
	if notice, ok := noticeFor(err); ok {
		fmt.Fprintln(out, notice)
		return nil
	}
	if err != nil {
		return err
	}
	if *path == "-" {
		return report.EncodeWeeklyReport(out, summary)
	}
	if err := report.WriteWeeklyReport(*path, summary); err != nil {
		return err
	}
	fmt.Fprintf(out, "Weekly report written to %s\n", *path)
	return nil
}

func runChart(svcCtx *svc.ServiceContext, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("chart", flag.ContinueOnError)
	path := fs.String("out", "mood_trends.png", "PNG destination")
	width := fs.Int("width", chart.DefaultWidth, "image width")
	height := fs.Int("height", chart.DefaultHeight, "image height")
	if err := fs.Parse(args); err != nil {
		return err
	}
	series, err := svcCtx.Aggregator.Trend()
	if notice, ok := noticeFor(err); ok {
		fmt.Fprintln(out, notice)
		return nil
	}
	if err != nil {
		return err
	}
	f, err := os.Create(*path)
	if err != nil {
		return err
	}
	if err := chart.RenderTrend(f, series, chart.Options{Width: *width, Height: *height}); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Chart written to %s (%d days)\n", *path, len(series.Points))
	return nil
}

func runHistory(svcCtx *svc.ServiceContext, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	path := fs.String("out", "-", "copy destination, - for stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	body, _, err := svcCtx.Store.Open()
	if notice, ok := noticeFor(err); ok {
		fmt.Fprintln(out, notice)
		return nil
	}
	if err != nil {
		return err
	}
	defer body.Close()

	if *path == "-" {
		_, err = io.Copy(out, body)
		return err
	}
	f, err := os.Create(*path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, body); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// noticeFor turns missing or unreadable history into a message for the user.
func noticeFor(err error) (string, bool) {
	switch {
	case err == nil:
		return "", false
	case journal.IsReadError(err):
		return "Warning: " + err.Error(), true
	case errors.Is(err, journal.ErrNoData):
		return "No mood history available yet.", true
	case errors.Is(err, report.ErrNoRecentData):
		return "No data available for this week.", true
	default:
		return "", false
	}
}
