package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/arcticlab23/resto2026/internal"
	"github.com/arcticlab23/resto2026/internal/tui"
	"go.uber.org/zap"
)

// GlobalParams are shared by every subcommand
type GlobalParams struct {
	Config string `descr:"Path to config file (default ~/.resto2026/config.yaml)" optional:"true"`
	Lang   string `descr:"UI language" alts:"bg,en" optional:"true"`
}

type TUIParams struct {
	GlobalParams
	LogFile string `descr:"Write logs to this file (the screen itself has no log output)" optional:"true"`
}

type CalcParams struct {
	GlobalParams
	Price       string `descr:"Final price in €" optional:"true"`
	PaidEUR     string `name:"paid-eur" descr:"Amount paid in €" optional:"true"`
	PaidBGN     string `name:"paid-bgn" descr:"Amount paid in лв" optional:"true"`
	ReturnedEUR string `name:"returned-eur" descr:"Change already returned in €" optional:"true"`
	ReturnedBGN string `name:"returned-bgn" descr:"Change already returned in лв" optional:"true"`
	Output      string `descr:"Output format (table, json)" alts:"table,json" optional:"true"`
	Export      string `descr:"Also write the receipt to this .xlsx file" optional:"true"`
	NoColor     bool   `descr:"Disable colors in table output" optional:"true"`
}

type ReplayParams struct {
	GlobalParams
	File    string `descr:"Event script (text, .json or .xlsx; prefix with format: to force one)" positional:"true"`
	Source  string `descr:"Script format" alts:"text,json,xlsx" optional:"true"`
	Trace   bool   `descr:"Print every event and the remaining change after it" optional:"true"`
	Output  string `descr:"Output format (table, json)" alts:"table,json" optional:"true"`
	Export  string `descr:"Also write the final receipt to this .xlsx file" optional:"true"`
	NoColor bool   `descr:"Disable colors in table output" optional:"true"`
}

type InitConfigParams struct {
	GlobalParams
	Force bool `descr:"Overwrite an existing config file" optional:"true"`
}

var envPrefixed = boa.ParamEnricherCombine(
	boa.ParamEnricherDefault,
	boa.ParamEnricherEnvPrefix("RESTO2026"),
)

func tuiCmd() boa.CmdT[TUIParams] {
	return boa.NewCmdT[TUIParams]("tui").
		WithShort("Open the interactive calculator").
		WithParamEnrich(envPrefixed).
		WithRunFuncE(runTUI)
}

func calcCmd() boa.CmdT[CalcParams] {
	return boa.NewCmdT[CalcParams]("calc").
		WithShort("Calculate the remaining change once").
		WithLong("Feeds the given amounts through the same input rules as the interactive screen and prints the result. Comma and dot are both accepted as decimal separator.").
		WithParamEnrich(envPrefixed).
		WithRunFuncE(runCalc)
}

func replayCmd() boa.CmdT[ReplayParams] {
	return boa.NewCmdT[ReplayParams]("replay").
		WithShort("Replay a script of edits, clears, undos and key presses").
		WithParamEnrich(envPrefixed).
		WithRunFuncE(runReplay)
}

func initConfigCmd() boa.CmdT[InitConfigParams] {
	return boa.NewCmdT[InitConfigParams]("init-config").
		WithShort("Write a config file with the default settings").
		WithParamEnrich(envPrefixed).
		WithRunFuncE(runInitConfig)
}

// env is what every command needs after reading the global flags
type env struct {
	cfg    *internal.Config
	labels internal.Labels
	log    *zap.Logger
}

func setup(g GlobalParams, logFallback string) (*env, error) {
	path := g.Config
	if path == "" {
		path = internal.DefaultConfigPath()
	}
	cfg, err := internal.LoadConfigOrDefault(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	log, err := internal.NewLogger(cfg.Log, logFallback)
	if err != nil {
		return nil, err
	}

	lang := cfg.Language
	if g.Lang != "" {
		lang = g.Lang
	}
	labels := internal.NewLabels(internal.ResolveLanguage(lang))

	log.Debug("config loaded",
		zap.String("path", path),
		zap.String("language", labels.Tag().String()))
	return &env{cfg: cfg, labels: labels, log: log}, nil
}

func (e *env) newSession() *internal.Session {
	return internal.NewSession(
		internal.WithLogger(e.log),
		internal.WithKeyMap(e.cfg.KeyMap()),
	)
}

func (e *env) outputFormat(flag string) (string, error) {
	format := flag
	if format == "" {
		format = e.cfg.OutputFormat()
	}
	switch format {
	case internal.OutputTable, internal.OutputJSON:
		return format, nil
	default:
		return "", fmt.Errorf("unknown output format %q (available: %s, %s)", format, internal.OutputTable, internal.OutputJSON)
	}
}

func runTUI(p *TUIParams) error {
	e, err := setup(p.GlobalParams, "")
	if err != nil {
		return err
	}
	// the flag wins over the config file
	if p.LogFile != "" {
		cfg := e.cfg.Log
		cfg.File = p.LogFile
		if e.log, err = internal.NewLogger(cfg, ""); err != nil {
			return err
		}
	}
	defer func() { _ = e.log.Sync() }()

	return tui.New(e.newSession(), e.labels, e.log).Run()
}

func runCalc(p *CalcParams) error {
	e, err := setup(p.GlobalParams, "stderr")
	if err != nil {
		return err
	}
	defer func() { _ = e.log.Sync() }()

	format, err := e.outputFormat(p.Output)
	if err != nil {
		return err
	}

	s := e.newSession()
	inputs := []struct {
		flag  string
		field internal.Field
		value string
	}{
		{"--price", internal.FieldPriceEUR, p.Price},
		{"--paid-eur", internal.FieldPaidEUR, p.PaidEUR},
		{"--paid-bgn", internal.FieldPaidBGN, p.PaidBGN},
		{"--returned-eur", internal.FieldReturnedEUR, p.ReturnedEUR},
		{"--returned-bgn", internal.FieldReturnedBGN, p.ReturnedBGN},
	}
	for _, in := range inputs {
		if in.value == "" {
			continue
		}
		if !s.AcceptEdit(in.field, in.value) {
			return fmt.Errorf("invalid amount for %s: %q (digits with at most one , or .)", in.flag, in.value)
		}
	}

	return e.finish(os.Stdout, s, format, p.NoColor, p.Export)
}

func runReplay(p *ReplayParams) error {
	e, err := setup(p.GlobalParams, "stderr")
	if err != nil {
		return err
	}
	defer func() { _ = e.log.Sync() }()

	format, err := e.outputFormat(p.Output)
	if err != nil {
		return err
	}

	events, err := internal.LoadScript(p.File, p.Source)
	if err != nil {
		return fmt.Errorf("loading script: %w", err)
	}
	e.log.Debug("script loaded", zap.String("file", p.File), zap.Int("events", len(events)))

	s := e.newSession()
	opts := internal.OutputOptions{Labels: e.labels, SessionID: s.ID, NoColor: p.NoColor}

	var observe func(internal.StepResult)
	if p.Trace && format == internal.OutputTable {
		observe = func(step internal.StepResult) {
			internal.PrintStep(os.Stdout, step, opts)
		}
	}
	if err := internal.ApplyEvents(s, events, observe); err != nil {
		return err
	}
	if observe != nil {
		fmt.Println()
	}

	return e.finish(os.Stdout, s, format, p.NoColor, p.Export)
}

// finish prints the final balance and writes the receipt if asked to
func (e *env) finish(w io.Writer, s *internal.Session, format string, noColor bool, export string) error {
	state, b := s.State(), s.Balance()

	if format == internal.OutputJSON {
		if err := internal.PrintBalanceJSON(w, s.ID, state, b); err != nil {
			return err
		}
	} else {
		internal.PrintBalanceTable(w, state, b, internal.OutputOptions{
			Labels:    e.labels,
			SessionID: s.ID,
			NoColor:   noColor,
		})
	}

	if export == "" {
		return nil
	}
	if err := internal.ExportReceiptXLSX(export, s.ID, b, e.labels, time.Now()); err != nil {
		return fmt.Errorf("exporting receipt: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Receipt written to %s\n", export)
	return nil
}

func runInitConfig(p *InitConfigParams) error {
	path := p.Config
	if path == "" {
		path = internal.DefaultConfigPath()
	}
	if path == "" {
		return errors.New("no config path: could not determine home directory, pass --config")
	}

	if _, err := os.Stat(path); err == nil && !p.Force {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
	}

	if err := internal.NewDefaultConfig().Save(path); err != nil {
		return err
	}
	fmt.Printf("Wrote default config to %s\n", path)
	return nil
}
