// Command snagbot-lambda is the serverless variant: an AWS Lambda
// handler behind API Gateway. Each invocation launches a fresh browser
// and tears it down afterwards, trading startup cost for isolation —
// there is no process state to share between cold starts anyway.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/snagbot/snagbot/api/handler"
	"github.com/snagbot/snagbot/config"
	"github.com/snagbot/snagbot/logging"
	"github.com/snagbot/snagbot/models"
	"github.com/snagbot/snagbot/scraper"
)

var corsHeaders = map[string]string{
	"Content-Type":                 "application/json",
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
	"Access-Control-Allow-Headers": "Content-Type, X-API-Key, Authorization",
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logging.Init(cfg.Log)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return handle(ctx, cfg, req)
	})
}

func handle(ctx context.Context, cfg *config.Config, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	switch req.HTTPMethod {
	case http.MethodOptions:
		return events.APIGatewayProxyResponse{StatusCode: http.StatusNoContent, Headers: corsHeaders}, nil

	case http.MethodGet:
		return respond(http.StatusOK, models.StatusResponse{
			Service: "snagbot",
			Status:  "healthy",
			Version: handler.Version,
		}), nil

	case http.MethodPost:
		return process(ctx, cfg, req.Body), nil

	default:
		return respond(http.StatusMethodNotAllowed, models.ProcessResponse{
			Status: "error",
			Error: &models.ErrorDetail{
				Code:    models.ErrCodeInvalidInput,
				Message: "method not allowed",
			},
		}), nil
	}
}

// process runs one full scrape inside a throwaway browser.
func process(ctx context.Context, cfg *config.Config, body string) events.APIGatewayProxyResponse {
	var preq models.ProcessRequest
	if err := json.Unmarshal([]byte(body), &preq); err != nil || !validURL(preq.URL) {
		return respond(http.StatusBadRequest, models.ProcessResponse{
			Status: "error",
			Error: &models.ErrorDetail{
				Code:    models.ErrCodeInvalidInput,
				Message: "request body must be JSON with a valid \"url\" field",
			},
		})
	}

	sc, err := scraper.NewScraper(cfg.Browser, cfg.Scraper)
	if err != nil {
		slog.Error("failed to launch browser", "error", err)
		return respondScrapeError(preq.URL, err)
	}
	defer sc.Close()

	result, err := sc.Process(ctx, preq.URL)
	if err != nil {
		return respondScrapeError(preq.URL, err)
	}

	return respond(http.StatusOK, models.ProcessResponse{
		Status:          "success",
		OriginalURL:     preq.URL,
		Title:           result.Title,
		DownloadOptions: result.Options,
	})
}

func respondScrapeError(originalURL string, err error) events.APIGatewayProxyResponse {
	var scrapeErr *models.ScrapeError
	if !errors.As(err, &scrapeErr) {
		scrapeErr = models.NewScrapeError(models.ErrCodeInternal, err.Error(), err)
	}
	return respond(handler.MapErrorToStatus(scrapeErr), models.ProcessResponse{
		Status:      "error",
		OriginalURL: originalURL,
		Error:       scrapeErr.ToDetail(),
	})
}

func respond(status int, body interface{}) events.APIGatewayProxyResponse {
	buf, err := json.Marshal(body)
	if err != nil {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Headers:    corsHeaders,
			Body:       `{"status":"error"}`,
		}
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    corsHeaders,
		Body:       string(buf),
	}
}

func validURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
