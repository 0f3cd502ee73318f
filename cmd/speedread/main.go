// Command speedread splits a book into daily reading portions.
//
// Given a reading speed and minutes per day it packs the book into portion
// files, one per day, cutting at sentence or paragraph boundaries near the
// daily word budget.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/schollz/progressbar/v3"

	"github.com/OlyoshaOlyosha/Speedread-Splitter/core/book"
	"github.com/OlyoshaOlyosha/Speedread-Splitter/core/boundary"
	kerrors "github.com/OlyoshaOlyosha/Speedread-Splitter/core/errors"
	"github.com/OlyoshaOlyosha/Speedread-Splitter/core/split"
	"github.com/OlyoshaOlyosha/Speedread-Splitter/core/textnorm"
	"github.com/OlyoshaOlyosha/Speedread-Splitter/internal/config"
	"github.com/OlyoshaOlyosha/Speedread-Splitter/internal/history"
	"github.com/OlyoshaOlyosha/Speedread-Splitter/internal/locale"
	"github.com/OlyoshaOlyosha/Speedread-Splitter/internal/logging"
	"github.com/OlyoshaOlyosha/Speedread-Splitter/internal/output"
)

const version = "1.0.0"

// CLI defines the command-line interface for speedread.
var CLI struct {
	// Global flags
	Config   string `help:"Config file path (default: per-user config dir)" type:"path"`
	LogLevel string `help:"Log level (debug, info, warn, error)" default:"warn" enum:"debug,info,warn,error"`

	Split   SplitCmd   `cmd:"" help:"Split a book into daily portions"`
	Info    InfoCmd    `cmd:"" help:"Show book statistics without splitting"`
	History HistoryCmd `cmd:"" help:"List past split runs"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// SplitCmd splits one book.
type SplitCmd struct {
	Path string `arg:"" help:"Book file (fb2, fb2.zip, epub, txt, optionally .xz)" type:"existingfile"`

	WPM          float64 `help:"Reading speed, words per minute (default from config)"`
	Minutes      float64 `help:"Reading time per day in minutes (default from config)"`
	Lang         string  `help:"Interface language: en or ru (default from config)"`
	Clean        bool    `help:"Strip footnote markers and figure captions" negatable:"" default:"true"`
	StartPhrase  string  `help:"Skip everything before this phrase (case-insensitive)"`
	Date         string  `help:"Date of the first portion, YYYY-MM-DD (default today)"`
	Out          string  `help:"Output directory (default: '{book} {wpm}wpm' beside the input)" type:"path"`
	SaveSettings bool    `help:"Persist --wpm/--minutes/--lang as new defaults"`
	NoProgress   bool    `help:"Disable the progress bar"`
	NoHistory    bool    `help:"Do not record this run in history"`
}

func (c *SplitCmd) Run() error {
	cfg, mgr := loadConfig()
	wpm := cfg.SpeedWPM
	if c.WPM > 0 {
		wpm = c.WPM
	}
	minutes := cfg.MinutesPerDay
	if c.Minutes > 0 {
		minutes = c.Minutes
	}
	lang := cfg.Language
	if c.Lang != "" {
		lang = c.Lang
	}
	t, err := locale.Load(lang)
	if err != nil {
		return err
	}

	fmt.Println(t.Format("header", version))
	fmt.Println(t.Get("reading_book"))

	b, err := book.Load(c.Path)
	if err != nil {
		if kerrors.Is(err, kerrors.ErrUnsupported) {
			fmt.Println(t.Get("unsupported_format"))
		}
		return err
	}

	norm, err := textnorm.Normalize(b.Text, textnorm.Options{
		StripNoise: c.Clean,
		Source:     c.Path,
	})
	if err != nil {
		return err
	}
	if c.Clean {
		fmt.Println(t.Get("cleaned"))
	} else {
		fmt.Println(t.Get("not_cleaned"))
	}
	logging.BookLoaded(c.Path, b.Title, norm.WordCount, "format", b.Format)
	fmt.Println(t.Format("book_loaded", b.Title, b.Format))
	fmt.Println(t.Format("total_words", norm.WordCount))

	plan := split.Plan{SpeedWPM: wpm, MinutesPerDay: minutes}
	wpp, err := plan.WordsPerPortion()
	if err != nil {
		return err
	}
	fmt.Println(t.Format("calculation", wpm, minutes, wpp))

	start := 0
	if c.StartPhrase != "" {
		start, err = split.Locate(norm.Body, c.StartPhrase)
		if err != nil {
			fmt.Println(t.Format("phrase_not_found", c.StartPhrase))
			return err
		}
		fmt.Println(t.Format("found_position", start))
	} else {
		fmt.Println(t.Get("start_from_beginning"))
	}

	startDate := time.Now()
	if c.Date != "" {
		startDate, err = time.Parse("2006-01-02", c.Date)
		if err != nil {
			return kerrors.NewValidation("date", "must be YYYY-MM-DD")
		}
	}

	outDir := c.Out
	if outDir == "" {
		outDir = output.DirFor(c.Path, b.Title, int(wpm))
	}
	existed, err := output.EnsureDir(outDir)
	if err != nil {
		return err
	}
	if existed {
		logging.Warn("output dir not empty, files may be overwritten", "dir", outDir)
	}

	var bar *progressbar.ProgressBar
	if !c.NoProgress {
		bar = progressbar.NewOptions(norm.WordCount,
			progressbar.OptionSetDescription(t.Get("splitting_progress")),
			progressbar.OptionSetItsString(t.Get("words_unit")),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionClearOnFinish(),
		)
	}

	packer := &split.Packer{
		Text:            norm.Body,
		Boundaries:      boundary.Detect(norm.Body, boundary.RulesFor(lang)),
		Start:           start,
		WordsPerPortion: wpp,
		Progress: func(p split.Portion) {
			if p.ForcedCut {
				logging.MidSentenceCut(p.Index, p.EndOffset)
			}
			if bar != nil {
				bar.Add(p.WordCount)
			}
		},
	}
	res, err := packer.Pack(context.Background())
	if err != nil {
		return err
	}
	if bar != nil {
		bar.Finish()
	}

	w := &output.Writer{
		Dir:       outDir,
		BookName:  b.Title,
		WPM:       int(wpm),
		StartDate: startDate,
		WordsUnit: t.Get("words_unit"),
	}
	for _, p := range res.Portions {
		path, err := w.WritePortion(p)
		if err != nil {
			return err
		}
		if path != "" {
			logging.PortionWritten(p.Index, path, p.WordCount)
		}
	}

	hours := plan.TotalHours(res.TotalWords)
	logging.SplitCompleted(len(res.Portions), res.TotalWords, hours)

	fmt.Println(t.Format("done", len(res.Portions)))
	fmt.Println(t.Format("output_dir", outDir))
	fmt.Println(t.Get("stats_header"))
	fmt.Println(t.Format("stats_days", len(res.Portions)))
	fmt.Println(t.Format("stats_total_time", hours))
	if n := len(res.Portions); n > 0 {
		fmt.Println(t.Format("stats_avg_portion", res.TotalWords/n))
	}
	if res.ForcedCuts > 0 {
		fmt.Println(t.Format("forced_cuts", res.ForcedCuts))
	}

	if !c.NoHistory {
		recordRun(b, c.Path, norm.Body, plan, res, startDate)
	}

	if c.SaveSettings && mgr != nil {
		cfg.SpeedWPM = wpm
		cfg.MinutesPerDay = minutes
		cfg.Language = lang
		cfg.CleanText = c.Clean
		if err := mgr.Update(cfg); err != nil {
			return err
		}
		fmt.Println(t.Get("settings_saved"))
	}
	return nil
}

// recordRun stores the run in history. History failures are logged, not
// fatal: the portion files are already on disk.
func recordRun(b *book.Book, path, normText string, plan split.Plan, res *split.Result, startDate time.Time) {
	dbPath, err := history.DefaultPath()
	if err != nil {
		logging.Warn("history disabled", "error", err)
		return
	}
	store, err := history.Open(dbPath)
	if err != nil {
		logging.Warn("history disabled", "error", err)
		return
	}
	defer store.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	_, err = store.Record(context.Background(), history.Run{
		BookTitle:   b.Title,
		BookPath:    abs,
		Fingerprint: history.Fingerprint(normText),
		SpeedWPM:    plan.SpeedWPM,
		Minutes:     plan.MinutesPerDay,
		TotalWords:  res.TotalWords,
		Portions:    len(res.Portions),
		ForcedCuts:  res.ForcedCuts,
		StartDate:   startDate,
	})
	if err != nil {
		logging.Warn("failed to record run", "error", err)
	}
}

// InfoCmd prints book statistics and the reading plan estimate.
type InfoCmd struct {
	Path    string  `arg:"" help:"Book file" type:"existingfile"`
	WPM     float64 `help:"Reading speed, words per minute (default from config)"`
	Minutes float64 `help:"Reading time per day in minutes (default from config)"`
	Clean   bool    `help:"Strip footnote markers and figure captions" negatable:"" default:"true"`
}

func (c *InfoCmd) Run() error {
	cfg, _ := loadConfig()
	wpm := cfg.SpeedWPM
	if c.WPM > 0 {
		wpm = c.WPM
	}
	minutes := cfg.MinutesPerDay
	if c.Minutes > 0 {
		minutes = c.Minutes
	}

	b, err := book.Load(c.Path)
	if err != nil {
		return err
	}
	norm, err := textnorm.Normalize(b.Text, textnorm.Options{
		StripNoise: c.Clean,
		Source:     c.Path,
	})
	if err != nil {
		return err
	}

	plan := split.Plan{SpeedWPM: wpm, MinutesPerDay: minutes}
	wpp, err := plan.WordsPerPortion()
	if err != nil {
		return err
	}

	fmt.Printf("Title:        %s\n", b.Title)
	fmt.Printf("Format:       %s\n", b.Format)
	fmt.Printf("Words:        %d\n", norm.WordCount)
	fmt.Printf("Fingerprint:  %s\n", history.Fingerprint(norm.Body))
	fmt.Printf("Plan:         %g wpm x %g min/day = %d words/day\n", wpm, minutes, wpp)
	fmt.Printf("Days:         %d\n", split.EstimatePortions(norm.WordCount, wpp))
	fmt.Printf("Total time:   %.1f hours\n", plan.TotalHours(norm.WordCount))
	return nil
}

// HistoryCmd lists past runs.
type HistoryCmd struct {
	Limit int `help:"Show at most this many runs (0 = all)" default:"10"`
}

func (c *HistoryCmd) Run() error {
	dbPath, err := history.DefaultPath()
	if err != nil {
		return err
	}
	store, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.List(context.Background(), c.Limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}
	for _, r := range runs {
		fmt.Printf("%s  %-30s  %6d words  %3d portions  %g wpm x %g min\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.BookTitle, r.TotalWords, r.Portions, r.SpeedWPM, r.Minutes)
	}
	return nil
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("speedread version %s\n", version)
	return nil
}

// loadConfig loads the persisted settings, falling back to defaults when the
// config file is missing or unreadable. The manager is nil only when no
// config path can be determined at all.
func loadConfig() (config.Config, *config.Manager) {
	path := CLI.Config
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			logging.Warn("no config dir, using defaults", "error", err)
			return *config.Defaults(), nil
		}
		path = p
	}
	mgr := config.NewManager(path)
	if err := mgr.Load(); err != nil {
		logging.Warn("failed to load config, using defaults", "path", path, "error", err)
		return *config.Defaults(), mgr
	}
	return mgr.Get(), mgr
}

func logLevel(s string) logging.Level {
	switch s {
	case "debug":
		return logging.LevelDebug
	case "info":
		return logging.LevelInfo
	case "error":
		return logging.LevelError
	default:
		return logging.LevelWarn
	}
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("speedread"),
		kong.Description("Split books into daily speed-reading portions"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	logging.InitLogger(logLevel(CLI.LogLevel), logging.FormatText)
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
