package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"brieftube/auth"
	"brieftube/handler"
	"brieftube/pipeline"
	"brieftube/progress"
	"brieftube/resolver"
	"brieftube/staging"
	"brieftube/storage"
	"brieftube/transcribe"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/exp/slog"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

func main() {

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stderr))

	postgres, err := storage.NewPostgres(storage.PostgresInfo{
		Host:     getParam("POSTGRES_HOST", "localhost"),
		Port:     getParam("POSTGRES_PORT", "5432"),
		User:     getParam("POSTGRES_USER", "brieftube"),
		Password: getParam("POSTGRES_PASSWORD", "brieftube"),
		Database: getParam("POSTGRES_DB", "brieftube"),
	})
	if err != nil {
		logger.Error("unable to connect to postgres", err)
		os.Exit(1)
	}
	summaryRepo := storage.NewPostgresSummaryRepository(postgres)

	var vectorRepo storage.VectorRepository
	if host := getParam("WEAVIATE_HOST", ""); host != "" {
		weaviate, err := storage.NewWeaviate(host, getParam("WEAVIATE_APIKEY", ""), getParam("OPENAI_API_KEY", ""))
		if err != nil {
			logger.Error("unable to create weaviate client", err)
			os.Exit(1)
		}
		if getParam("WEAVIATE_RESET_SCHEMA", "") == "1" {
			if err := weaviate.ResetSchema(); err != nil {
				logger.Error("unable to reset weaviate schema", err)
				os.Exit(1)
			}
		}
		vectorRepo = weaviate
	}

	signingKey := getParam("SESSION_SIGNING_KEY", "")
	if signingKey == "" {
		logger.Error("SESSION_SIGNING_KEY is required")
		os.Exit(1)
	}
	sessions := auth.NewSessions(signingKey)

	assemblyAIKey := getParam("ASSEMBLYAI_API_KEY", "")
	if assemblyAIKey == "" {
		logger.Error("ASSEMBLYAI_API_KEY is required")
		os.Exit(1)
	}
	var summarizer transcribe.Summarizer
	if getParam("SUMMARY_PROVIDER", "assemblyai") == "openai" {
		summarizer = transcribe.NewOpenAISummarizer(openai.NewClient(getParam("OPENAI_API_KEY", "")))
	}
	transcriber := transcribe.NewAssemblyAI(assemblyAIKey, summarizer)

	ytdlp := resolver.NewYtdlp(getParam("YTDLP_PATH", "yt-dlp"), resolver.NewExecRunner())
	var titles resolver.TitleResolver = ytdlp
	if apiKey := getParam("YOUTUBE_API_KEY", ""); apiKey != "" {
		ytClient, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
		if err != nil {
			logger.Error("unable to create youtube service", err)
			os.Exit(1)
		}
		titles = resolver.NewDataAPI(ytClient)
	}

	var stager staging.Stager
	if cloudName := getParam("CLOUDINARY_CLOUD_NAME", ""); cloudName != "" {
		stager, err = staging.NewCloudinary(cloudName, getParam("CLOUDINARY_API_KEY", ""), getParam("CLOUDINARY_API_SECRET", ""))
		if err != nil {
			logger.Error("unable to create cloudinary client", err)
			os.Exit(1)
		}
	} else {
		stager = staging.NewLocal(getParam("AUDIO_KEEP_LOCAL", "") == "1")
	}

	transcribeTimeout, err := time.ParseDuration(getParam("TRANSCRIBE_TIMEOUT", "30m"))
	if err != nil {
		logger.Error("unable to parse transcribe timeout", err)
		os.Exit(1)
	}

	tracker := progress.NewTracker()
	runner := pipeline.NewRunner(titles, ytdlp, stager, transcriber, summaryRepo, vectorRepo, tracker,
		getParam("AUDIO_DIR", os.TempDir()), transcribeTimeout, logger)

	port := getParam("API_PORT", "8080")
	go http.ListenAndServe(fmt.Sprintf(":%s", port), handler.NewServer(runner, tracker, summaryRepo, vectorRepo, sessions, logger))
	logger.Info("http server started")

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt)
	<-done

	logger.Info("service stopped")
}

func getParam(param, def string) string {
	if val, ok := os.LookupEnv(param); ok {
		return val
	}
	return def
}
