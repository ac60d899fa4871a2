package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/sourcing-agent/internal/logger"
	"github.com/spigell/sourcing-agent/internal/outreach"
	"github.com/spigell/sourcing-agent/internal/pipeline"
	"github.com/spigell/sourcing-agent/internal/ranking"
)

const (
	PromptShowShortlist     = "Show shortlist"
	PromptShowCandidate     = "Show candidate breakdown"
	PromptOutreach          = "Generate and show outreach"
	PromptReportByCompany   = "Report by company"
	PromptAppendToContacted = "Append shortlist to contacted file"
	PromptResultsToFile     = "Dump results to file"
	PromptExit              = "Exit"
	PromptBack              = "back"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Next action?",
	Items: []string{
		PromptShowShortlist,
		PromptShowCandidate,
		PromptOutreach,
		PromptReportByCompany,
		PromptAppendToContacted,
		PromptResultsToFile,
		PromptExit,
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score candidates against the job and build a shortlist",
	Run: func(cmd *cobra.Command, _ []string) {
		score(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().String("job-file", "", "file with the job description")
	scoreCmd.Flags().StringP("candidates", "c", "", "JSON or YAML file with candidates")
	scoreCmd.Flags().IntP("top-n", "n", 0, "number of candidates to keep (default 5)")
	scoreCmd.Flags().Float64("min-score", 0, "minimal fit score (default 6.0)")
	scoreCmd.Flags().BoolP("multi-source", "m", false, "use github, twitter and website data in scoring")
	scoreCmd.Flags().StringP("output", "o", "", "write the run report to this file")
	scoreCmd.Flags().StringP("contacted-file", "e", "", "file with already contacted candidates")
	scoreCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for actions, print the shortlist and exit")

	viper.BindPFlag("job.file", scoreCmd.Flags().Lookup("job-file"))
	viper.BindPFlag("source.file", scoreCmd.Flags().Lookup("candidates"))
	viper.BindPFlag("ranking.top-n", scoreCmd.Flags().Lookup("top-n"))
	viper.BindPFlag("ranking.min-score", scoreCmd.Flags().Lookup("min-score"))
	viper.BindPFlag("scoring.multi-source", scoreCmd.Flags().Lookup("multi-source"))
	viper.BindPFlag("output", scoreCmd.Flags().Lookup("output"))
	viper.BindPFlag("ranking.contacted-file", scoreCmd.Flags().Lookup("contacted-file"))
}

// session is the state shared by the interactive actions.
type session struct {
	config  *Config
	logger  *zap.Logger
	report  *pipeline.Report
	options pipeline.Options
	gen     outreach.Generator
}

// score is the main command for the cli.
func score(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	if cmd.Flags().Changed("candidates") {
		viper.Set("source.type", SourceTypeFile)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the sourcing-agent", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	job, err := loadJob(config.Job)
	if err != nil {
		logger.Fatal("loading the job description", zap.Error(err))
	}

	src, err := newSource(config.Source, logger)
	if err != nil {
		logger.Fatal("creating the candidate source", zap.Error(err))
	}

	scorer, err := newScorer(config.Scoring, logger)
	if err != nil {
		logger.Fatal("creating the scorer", zap.Error(err))
	}

	outreachOpts, err := outreachOptions(config.Outreach, config.Job)
	if err != nil {
		logger.Fatal("preparing outreach", zap.Error(err))
	}

	var gen outreach.Generator
	if config.Outreach != nil && config.Outreach.Enabled {
		gen, err = newGenerator(ctx, config.Outreach, logger)
		if err != nil {
			logger.Fatal("creating the outreach generator", zap.Error(err))
		}
	}

	opts := pipeline.Options{
		Job:      job,
		Ranking:  rankingConfig(config.Ranking),
		Outreach: outreachOpts,
	}
	if config.Scoring != nil {
		opts.MultiSource = config.Scoring.MultiSource
		opts.Concurrency = config.Scoring.Concurrency
	}

	report, err := pipeline.Run(ctx, pipeline.Deps{
		Source:    src,
		Enricher:  newEnricher(config.GitHub, logger),
		Scorer:    scorer,
		Generator: gen,
		Logger:    logger,
	}, opts)
	if err != nil {
		logger.Fatal("sourcing run failed", zap.Error(err))
	}

	logger.Info(report.Summary(),
		zap.Int("scored", report.Scored),
		zap.Int("failures", len(report.Failures)),
	)

	if config.Output != "" {
		if err := report.Save(config.Output); err != nil {
			logger.Fatal("saving the report", zap.Error(err))
		}
		logger.Info("report saved", zap.String("filename", config.Output))
	}

	if report.Shortlist.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no candidates left after filters"))
		return
	}

	s := &session{config: config, logger: logger, report: report, options: opts, gen: gen}

	if cmd.Flag("auto-approve").Value.String() == "true" {
		if err := s.handleAction(ctx, PromptShowShortlist); err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
		if len(report.Messages) > 0 {
			s.printMessages(report.Messages)
		}
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		logger.Info("current shortlist", zap.Int("count", report.Shortlist.Len()))

		if err := s.handleAction(ctx, action); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func (s *session) handleAction(ctx context.Context, action string) error {
	shortlist := s.report.Shortlist

	switch action {
	case PromptShowShortlist:
		for i, item := range shortlist.Items {
			s.logger.Info(fmt.Sprintf("%d. %s", i+1, item.Name()),
				zap.Float64("fit_score", item.FitScore()),
				zap.String("confidence", string(item.Result.ConfidenceLevel)),
				zap.String("linkedin_url", item.Candidate.LinkedInURL),
			)
		}
		return nil
	case PromptShowCandidate:
		return s.showCandidate()
	case PromptOutreach:
		return s.outreach(ctx)
	case PromptReportByCompany:
		pretty, _ := json.MarshalIndent(shortlist.ReportByCompany(), "", "  ")
		s.logger.Info(string(pretty), zap.Int("candidates count", shortlist.Len()))
		return nil
	case PromptAppendToContacted:
		return s.appendToContacted()
	case PromptResultsToFile:
		filename, err := shortlist.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		s.logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		s.logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func (s *session) showCandidate() error {
	shortlist := s.report.Shortlist

	items := make([]string, 0, shortlist.Len()+1)
	for _, item := range shortlist.Items {
		items = append(items, fmt.Sprintf("%s / %.1f / %s", item.Name(), item.FitScore(), item.Candidate.LinkedInURL))
	}

	candidatePrompt := promptui.Select{
		Label: "Choose a candidate and press ENTER",
		Items: append(items, PromptBack),
	}

	idx, selected, err := candidatePrompt.Run()
	if err != nil {
		return err
	}
	if selected == PromptBack {
		return nil
	}

	pretty, _ := json.MarshalIndent(shortlist.Items[idx].Result, "", "  ")
	s.logger.Info(string(pretty), zap.String("candidate", shortlist.Items[idx].Name()))
	return nil
}

func (s *session) outreach(ctx context.Context) error {
	if len(s.report.Messages) == 0 {
		if s.gen == nil {
			gen, err := newGenerator(ctx, s.config.Outreach, s.logger)
			if err != nil {
				return fmt.Errorf("creating the outreach generator: %w", err)
			}
			s.gen = gen
		}

		messages, err := pipeline.Draft(ctx, s.gen, s.report.Shortlist, s.options, s.report, s.logger)
		if err != nil {
			return err
		}
		s.report.Messages = messages

		if s.config.Output != "" {
			if err := s.report.Save(s.config.Output); err != nil {
				return err
			}
		}
	}

	s.printMessages(s.report.Messages)
	return nil
}

func (s *session) printMessages(messages []*outreach.Message) {
	for _, m := range messages {
		s.logger.Info("outreach message",
			zap.String("candidate", m.CandidateName),
			zap.String("provider", m.Provider),
			zap.String("subject", m.Subject),
		)
		fmt.Printf("\n%s\n\n", m.Body)
	}
}

func (s *session) appendToContacted() error {
	contactedFile := s.config.Ranking.ContactedFile
	if contactedFile == "" {
		s.logger.Warn("contacted file is not configured", zap.String("hint", "set ranking.contacted-file or --contacted-file"))
		return nil
	}

	contacted, err := ranking.ContactedFromFile(contactedFile)
	if err != nil {
		return err
	}

	shortlist := s.report.Shortlist
	contacted.Append(shortlist.ToContacted(time.Now().UTC()))

	if err := contacted.ToFile(contactedFile); err != nil {
		return err
	}

	s.logger.Info("appended to contacted file", zap.String("filename", contactedFile), zap.Int("count", shortlist.Len()))

	shortlist.Exclude(contacted.Keys())
	return nil
}
