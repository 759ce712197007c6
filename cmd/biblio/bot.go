package main

import (
	"fmt"

	"biblio/internal/chat"
	"biblio/internal/config"
	"biblio/internal/dispatch"
	"biblio/internal/mood"
	"biblio/internal/responses"
	"biblio/internal/tools"
)

// bot is everything a front end needs to hold a conversation
type bot struct {
	table     dispatch.Table
	registry  *tools.Registry
	responder *chat.Responder
}

func buildBot(cfg *config.Config) (*bot, error) {
	wiki := tools.NewWikiClient(cfg.Wikipedia.APIURL, cfg.Wikipedia.UserAgent,
		cfg.Wikipedia.Timeout(), cfg.Wikipedia.MaxPageMB)
	weather := tools.NewWeatherClient(cfg.Weather.BaseURL, cfg.Wikipedia.UserAgent,
		cfg.Weather.Timeout(), cfg.Weather.Imperial())

	replies := responses.Default()
	if cfg.Bot.ResponsesFile != "" {
		t, err := responses.Load(cfg.Bot.ResponsesFile)
		if err != nil {
			return nil, err
		}
		replies = t
	}

	lexicon := mood.DefaultLexicon()
	if cfg.Bot.MoodWordsFile != "" {
		l, err := mood.LoadLexicon(cfg.Bot.MoodWordsFile)
		if err != nil {
			return nil, err
		}
		lexicon = l
	}
	classifier, err := mood.New(lexicon)
	if err != nil {
		return nil, err
	}

	registry, err := tools.NewDefaultRegistry(tools.Deps{
		Infobox:   wiki,
		Weather:   weather,
		Responses: replies,
	})
	if err != nil {
		return nil, err
	}

	table := dispatch.DefaultTable()
	if len(cfg.Patterns) > 0 {
		table = make(dispatch.Table, 0, len(cfg.Patterns))
		for _, p := range cfg.Patterns {
			table = append(table, dispatch.NewEntry(p.Pattern, p.Handler))
		}
	}
	if err := table.Resolve(registry); err != nil {
		return nil, fmt.Errorf("pattern table: %w", err)
	}

	policy, err := dispatch.ParsePolicy(cfg.Bot.DispatchPolicy)
	if err != nil {
		return nil, err
	}

	responder := chat.NewResponder(chat.Options{
		Dispatcher:      dispatch.New(table, registry, policy),
		Summaries:       wiki,
		Mood:            classifier,
		Responses:       replies,
		SummaryMaxChars: cfg.Bot.SummaryMaxChars,
	})
	return &bot{table: table, registry: registry, responder: responder}, nil
}
