package api

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"emission-estimator/internal/emission"
	"emission-estimator/internal/models"
	"emission-estimator/internal/services"
	"emission-estimator/pkg/export"
)

type Handler struct {
	estimator *services.Estimator
	logger    *zap.Logger
}

func NewHandler(estimator *services.Estimator, logger *zap.Logger) *Handler {
	return &Handler{
		estimator: estimator,
		logger:    logger,
	}
}

type scenarioBody struct {
	Traffic      string `json:"traffic"`
	Weather      string `json:"weather"`
	LoadFactor   string `json:"load_factor"`
	EnergySource string `json:"energy_source"`
	TollOption   string `json:"toll_option"`
}

type estimateBody struct {
	Origin      string       `json:"origin"`
	Destination string       `json:"destination"`
	Mode        string       `json:"mode"`
	Scenario    scenarioBody `json:"scenario"`
	Options     struct {
		LiveWeather       bool `json:"live_weather"`
		ApplyRouteFactors bool `json:"apply_route_factors"`
	} `json:"options"`
}

func (b estimateBody) toRequest() (services.EstimateRequest, error) {
	scenario, err := models.NewScenario(
		b.Scenario.Traffic,
		b.Scenario.Weather,
		b.Scenario.LoadFactor,
		b.Scenario.EnergySource,
		b.Scenario.TollOption,
	)
	if err != nil {
		return services.EstimateRequest{}, err
	}

	if b.Mode != "" {
		if _, err := models.ParseTransportMode(b.Mode); err != nil {
			return services.EstimateRequest{}, err
		}
	}

	return services.EstimateRequest{
		Origin:      b.Origin,
		Destination: b.Destination,
		Mode:        b.Mode,
		Scenario:    scenario,
		Live:        b.Options.LiveWeather,
		ApplyRoute:  b.Options.ApplyRouteFactors,
	}, nil
}

// Estimate handles POST /api/v1/estimate
func (h *Handler) Estimate(c *fiber.Ctx) error {
	var body estimateBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	req, err := body.toRequest()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	h.logger.Info("Running estimate",
		zap.String("origin", req.Origin),
		zap.String("destination", req.Destination),
		zap.String("mode", req.Mode))

	resp, err := h.estimator.Estimate(c.Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		h.logger.Error("Estimate failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute estimate",
		})
	}

	return c.JSON(resp)
}

// GetModes handles GET /api/v1/modes
func (h *Handler) GetModes(c *fiber.Ctx) error {
	type modeInfo struct {
		Mode             models.TransportMode `json:"mode"`
		Kind             models.ModeKind      `json:"kind"`
		BaseRate         float64              `json:"base_rate"`
		StaticDistanceKm float64              `json:"static_distance_km"`
	}

	modes := make([]modeInfo, 0, len(models.AllModes))
	for _, mode := range models.AllModes {
		modes = append(modes, modeInfo{
			Mode:             mode,
			Kind:             mode.Kind(),
			BaseRate:         emission.BaseRate(mode),
			StaticDistanceKm: emission.StaticDistanceKm(mode),
		})
	}

	return c.JSON(fiber.Map{"modes": modes})
}

// PreviewScenario handles GET /api/v1/scenario/preview
func (h *Handler) PreviewScenario(c *fiber.Ctx) error {
	scenario, err := models.NewScenario(
		c.Query("traffic"),
		c.Query("weather"),
		c.Query("load_factor"),
		c.Query("energy_source"),
		c.Query("toll_option"),
	)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"scenario":          scenario,
		"adjustment_factor": emission.ResolveAdjustmentFactor(scenario),
	})
}

// GetWeather handles GET /api/v1/weather/current
func (h *Handler) GetWeather(c *fiber.Ctx) error {
	snapshot := h.estimator.Weather(c.Context(), c.Query("region"))
	return c.JSON(fiber.Map{
		"weather":           snapshot,
		"adjustment_factor": emission.WeatherFactor(snapshot),
	})
}

// GetRoute handles GET /api/v1/route
func (h *Handler) GetRoute(c *fiber.Ctx) error {
	origin := c.Query("origin")
	destination := c.Query("destination")
	if origin == "" || destination == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "origin and destination parameters are required",
		})
	}
	avoidTolls := c.QueryBool("avoid_tolls", false)

	route, factors, err := h.estimator.Route(c.Context(), origin, destination, avoidTolls)
	if err != nil {
		h.logger.Error("Route fetch failed",
			zap.String("origin", origin),
			zap.String("destination", destination),
			zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Route source unavailable",
		})
	}

	return c.JSON(fiber.Map{
		"route":   route,
		"factors": factors,
	})
}

// ExportCSV handles POST /api/v1/export/csv
func (h *Handler) ExportCSV(c *fiber.Ctx) error {
	report, err := h.buildReport(c)
	if err != nil {
		return h.exportError(c, err)
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, report); err != nil {
		h.logger.Error("CSV export failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate report",
		})
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=emissions-%s.csv", report.ID))
	return c.Send(buf.Bytes())
}

// ExportJSON handles POST /api/v1/export/json
func (h *Handler) ExportJSON(c *fiber.Ctx) error {
	report, err := h.buildReport(c)
	if err != nil {
		return h.exportError(c, err)
	}

	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=emissions-%s.json", report.ID))
	return c.JSON(report)
}

func (h *Handler) buildReport(c *fiber.Ctx) (export.Report, error) {
	var body estimateBody
	if err := c.BodyParser(&body); err != nil {
		return export.Report{}, fmt.Errorf("%w: malformed request body", models.ErrInvalidInput)
	}

	req, err := body.toRequest()
	if err != nil {
		return export.Report{}, err
	}

	resp, err := h.estimator.Estimate(c.Context(), req)
	if err != nil {
		return export.Report{}, err
	}

	return export.NewReport(resp.Results), nil
}

func (h *Handler) exportError(c *fiber.Ctx, err error) error {
	if errors.Is(err, models.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	h.logger.Error("Export failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Failed to compute estimate",
	})
}

// GetHealth handles GET /api/v1/health
func (h *Handler) GetHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now(),
		"uptime":    time.Since(startTime).String(),
		"stats":     h.estimator.Stats(),
	})
}

var startTime = time.Now()
