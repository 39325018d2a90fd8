package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Tleuberdina/bot-project/internal/config"
	"github.com/Tleuberdina/bot-project/internal/domain"
	"github.com/Tleuberdina/bot-project/internal/export"
	"github.com/Tleuberdina/bot-project/internal/logger"
	"github.com/Tleuberdina/bot-project/internal/seed"
	"github.com/Tleuberdina/bot-project/internal/store"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#3399CC")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAA00"))
)

func runAdd(ctx context.Context, repo store.Repo, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(out)
	p := domain.Process{}
	fs.StringVar(&p.Name, "name", "", "process name")
	fs.StringVar(&p.Responsible, "responsible", "", "responsible person, as registered in the bot")
	fs.StringVar(&p.Frequency, "frequency", "", "frequency label")
	fs.StringVar(&p.DeadlineTime, "deadline", "", "deadline time-of-day (HH:MM)")
	fs.StringVar(&p.Reminder1, "r1", "24ч", "first reminder offset")
	fs.StringVar(&p.Reminder2, "r2", "2ч", "second reminder offset")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Responsible) == "" {
		return errors.New("-name and -responsible are required")
	}
	// Rows are stored as entered; malformed values only warn.
	if _, _, err := domain.ParseDeadline(p.DeadlineTime); err != nil {
		fmt.Fprintln(out, warnStyle.Render("warning: "+err.Error()))
	}
	for _, r := range []string{p.Reminder1, p.Reminder2} {
		if _, err := domain.ParseReminderHours(r); err != nil {
			fmt.Fprintln(out, warnStyle.Render("warning: "+err.Error()))
		}
	}

	if err := repo.AddProcess(ctx, &p); err != nil {
		return err
	}
	fmt.Fprintf(out, "added process %d: %s\n", p.ID, p.Name)
	return nil
}

func runList(ctx context.Context, repo store.Repo, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(out)
	responsible := fs.String("responsible", "", "only processes of this person")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		ps  []domain.Process
		err error
	)
	if *responsible != "" {
		ps, err = repo.ListProcessesByResponsible(ctx, *responsible)
	} else {
		ps, err = repo.ListProcesses(ctx)
	}
	if err != nil {
		return err
	}
	if len(ps) == 0 {
		fmt.Fprintln(out, "no processes")
		return nil
	}
	fmt.Fprintln(out, processTable(ps))
	return nil
}

func processTable(ps []domain.Process) string {
	rows := make([][]string, 0, len(ps))
	for _, p := range ps {
		rows = append(rows, export.Record(p))
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(export.Header()...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.Render()
}

func runSeed(ctx context.Context, repo store.Repo, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.SetOutput(out)
	file := fs.String("file", "", "YAML file with processes (default: built-in sample)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		ps  []domain.Process
		err error
	)
	if *file != "" {
		ps, err = seed.LoadFile(*file)
	} else {
		ps, err = seed.Sample()
	}
	if err != nil {
		return err
	}
	n, err := seed.Apply(ctx, repo, ps)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "replaced processes: %d loaded\n", n)
	return nil
}

func runCheck(ctx context.Context, repo store.Repo, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(out)
	responsible := fs.String("responsible", "", "person whose processes are checked")
	at := fs.String("at", "", `instant, "DD-MM-YYYY HH:MM"`)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *responsible == "" {
		return errors.New("-responsible is required")
	}
	instant, err := domain.ParseCheckInstant(strings.Fields(*at))
	if err != nil {
		return err
	}

	ps, err := repo.ListProcessesByResponsible(ctx, *responsible)
	if err != nil {
		return err
	}
	if len(ps) == 0 {
		fmt.Fprintln(out, "no processes")
		return nil
	}
	writeReport(out, domain.Evaluate(instant, ps))
	return nil
}

func writeReport(out io.Writer, rep domain.Report) {
	fmt.Fprintf(out, "reminders at %s\n", rep.At.Format("02.01.2006 15:04"))
	if rep.Empty() {
		fmt.Fprintln(out, "  none")
	}
	for _, f := range rep.Firing {
		fmt.Fprintf(out, "  %s (deadline %s)\n", f.Process.Name, f.Deadline.Format("02.01 15:04"))
		for _, r := range f.Reminders {
			fmt.Fprintf(out, "    reminder %d: %dh before\n", r.Ordinal, r.Hours)
		}
	}
	for _, e := range rep.Failed {
		fmt.Fprintln(out, warnStyle.Render(fmt.Sprintf("  skipped %q: %v", e.Process.Name, e.Err)))
	}
}

func runExport(ctx context.Context, cfg config.Config, repo store.Repo, out io.Writer) error {
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	exp := export.New(repo, export.GoogleClientFactory(cfg.GoogleCredentialsFile), export.Options{
		SpreadsheetID: cfg.SpreadsheetID,
		SheetName:     cfg.SheetName,
		ShareWith:     cfg.ShareWith,
		Timeout:       cfg.ExportTimeout,
	}, log)
	url, err := exp.ExportAll(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, url)
	return nil
}
