package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/yourorg/checkout-orchestrator/internal/adapter"
	"github.com/yourorg/checkout-orchestrator/internal/adapter/onvo"
	"github.com/yourorg/checkout-orchestrator/internal/adapter/stripe"
	"github.com/yourorg/checkout-orchestrator/internal/apperror"
	"github.com/yourorg/checkout-orchestrator/internal/checkout"
	"github.com/yourorg/checkout-orchestrator/internal/config"
	"github.com/yourorg/checkout-orchestrator/internal/monitor"
	"github.com/yourorg/checkout-orchestrator/internal/orchestrator"
	"github.com/yourorg/checkout-orchestrator/internal/policy"
	"github.com/yourorg/checkout-orchestrator/internal/reporting"
)

type server struct {
	orch     *orchestrator.Orchestrator
	contract *monitor.ContractMonitor
	recorder *reporting.Recorder
	reporter *reporting.RetrospectiveReporter
}

func (s *server) generateHandler(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read request body"})
		return
	}

	ok, validationErrs, err := s.contract.Validate(body)
	if err != nil {
		log.Printf("server: contract validation error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body is not valid JSON"})
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": monitor.FormatErrors(validationErrs)})
		return
	}

	var req checkout.Request
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format: " + err.Error()})
		return
	}

	result, err := s.orch.GenerateLink(c.Request.Context(), req)
	if err != nil {
		c.JSON(apperror.ResponseStatus(err), gin.H{"error": errorMessage(err)})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *server) retrospectiveHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.reporter.GenerateRetrospective(s.recorder.Snapshot()))
}

// errorMessage strips the classification prefix for the outward response;
// the status code already signals the class.
func errorMessage(err error) string {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

func setupRouter(s *server) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware("checkout-orchestrator"))

	router.POST("/generate", s.generateHandler)
	router.GET("/retrospective", s.retrospectiveHandler)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return router
}

// buildServer constructs every collaborator once at startup; nothing is
// created per request.
func buildServer(cfg *config.Config, httpClient *http.Client) (*server, error) {
	contract, err := monitor.NewContractMonitor()
	if err != nil {
		return nil, err
	}

	var rules []policy.RuleConfig
	if cfg.MaxAmountMinor > 0 {
		rules = append(rules, policy.RuleConfig{
			Name:       "AmountCap",
			Expression: fmt.Sprintf("amount_minor <= %d", cfg.MaxAmountMinor),
		})
	}
	enforcer, err := policy.NewEnforcer(rules)
	if err != nil {
		return nil, err
	}

	adapters := map[checkout.Provider]adapter.ProviderAdapter{
		checkout.ProviderOnvo:   onvo.NewAdapter(httpClient, cfg.Onvo),
		checkout.ProviderStripe: stripe.NewAdapter(httpClient, cfg.Stripe),
	}

	recorder := reporting.NewRecorder()
	return &server{
		orch:     orchestrator.New(adapters, enforcer, recorder),
		contract: contract,
		recorder: recorder,
		reporter: reporting.NewRetrospectiveReporter(),
	}, nil
}

func initTracing() (*sdktrace.TracerProvider, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(tp)
	return tp, nil
}

func main() {
	log.Println("Starting checkout-orchestrator...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	tp, err := initTracing()
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Printf("Error shutting down tracer provider: %v", err)
		}
	}()

	srv, err := buildServer(cfg, &http.Client{Timeout: 30 * time.Second})
	if err != nil {
		log.Fatalf("Failed to build server: %v", err)
	}

	router := setupRouter(srv)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
