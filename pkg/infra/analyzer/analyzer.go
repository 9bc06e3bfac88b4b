package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/marketlens/marketlens/pkg/config"
	"github.com/marketlens/marketlens/pkg/domain/market"
	"github.com/marketlens/marketlens/pkg/infra/providers"
)

//go:generate mockery --name=Analyzer --dir=. --output=../../../mocks --filename=analyzer_mock.go --case=underscore --with-expecter

// Analyzer turns collected articles into a markdown market report. It never
// fails: a provider fault degrades to an error-flavored report so one broken
// generation does not turn a whole request into a hard failure.
type Analyzer interface {
	Analyze(ctx context.Context, sector string, articles []market.Article) market.Analysis
}

const systemPrompt = "You are a market analyst specializing in Indian markets. " +
	"Your reports are professional, data-driven, and actionable."

type marketAnalyzer struct {
	logger *logrus.Logger
	client providers.Client
	cfg    *config.AnalyzerConfig
}

func NewMarketAnalyzer(cfg *config.AnalyzerConfig, logger *logrus.Logger, client providers.Client) Analyzer {
	return &marketAnalyzer{
		logger: logger,
		client: client,
		cfg:    cfg,
	}
}

func (a *marketAnalyzer) Analyze(ctx context.Context, sector string, articles []market.Article) market.Analysis {
	prompt := buildPrompt(sector, articles)

	resp, err := a.client.Ask(ctx, &providers.Config{
		ApiKey:       a.cfg.APIKey,
		Model:        a.cfg.Model,
		MaxTokens:    a.cfg.MaxTokens,
		Temperature:  a.cfg.Temperature,
		SystemPrompt: systemPrompt,
	}, prompt)
	if err != nil {
		a.logger.WithError(err).WithField("sector", sector).Error("analysis generation failed")
		return market.Analysis{
			Report:   fmt.Sprintf("# Error\n\nUnable to generate analysis: %s", err),
			Degraded: true,
			Cause:    err.Error(),
		}
	}

	a.logger.WithFields(logrus.Fields{
		"sector":       sector,
		"model":        resp.Model,
		"total_tokens": resp.Usage.TotalTokens,
	}).Info("analysis generated")

	return market.Analysis{Report: resp.Response}
}

func buildPrompt(sector string, articles []market.Article) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Analyze the following market data for the %s sector in India.\n\n", sector)
	b.WriteString("Collected Market Data:\n")
	b.WriteString(formatArticles(articles))
	fmt.Fprintf(&b, `
Please provide a comprehensive markdown report with the following sections:

# %s Sector - Market Analysis Report

## 1. Executive Summary
Provide a brief overview of the current state of the sector.

## 2. Market Overview
Describe the current market conditions, size, and growth trajectory.

## 3. Current Trends
List and explain the major trends shaping this sector.

## 4. Trade Opportunities
Identify specific opportunities for businesses and investors.

## 5. Key Players
Mention major companies and their market positions.

## 6. Challenges and Risks
Outline potential challenges and risk factors.

## 7. Recommendations
Provide actionable recommendations for stakeholders.

## 8. Sources
List the news sources referenced in this analysis.
`, titleCase(sector))

	return b.String()
}

func formatArticles(articles []market.Article) string {
	if len(articles) == 0 {
		return "No recent data available.\n"
	}

	var b strings.Builder
	for i, article := range articles {
		fmt.Fprintf(&b, "\nArticle %d:\n", i+1)
		fmt.Fprintf(&b, "- Title: %s\n", article.Title)
		fmt.Fprintf(&b, "- Source: %s\n", article.Source)
		fmt.Fprintf(&b, "- Date: %s\n", article.Date)
		fmt.Fprintf(&b, "- Summary: %s\n", article.Summary)
	}
	return b.String()
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
