package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/takeoff/pkg/analysis"
	"github.com/philipparndt/takeoff/pkg/blueprint"
	"github.com/philipparndt/takeoff/pkg/geometry"
	"github.com/philipparndt/takeoff/pkg/sheet"
	"github.com/philipparndt/takeoff/pkg/takeoff"
)

// DefaultParallelTolerance is the angle in degrees under which two linear
// measurements count as parallel.
const DefaultParallelTolerance = 5.0

var (
	pointsSchema = map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"x": map[string]any{"type": "number"},
				"y": map[string]any{"type": "number"},
			},
			"required": []string{"x", "y"},
		},
	}
	calibrationSchema = map[string]any{
		"type":        "object",
		"description": "Either reference (two points) with length or label, or pixels_per_unit. Omit for an uncalibrated result.",
		"properties": map[string]any{
			"reference":       pointsSchema,
			"length":          map[string]any{"type": "number"},
			"label":           map[string]any{"type": "string", "description": `Printed dimension such as "10.5m" or 12'6"`},
			"pixels_per_unit": map[string]any{"type": "number"},
		},
	}
	unitSchema = map[string]any{"type": "string", "enum": unitNames()}
)

func unitNames() []string {
	units := takeoff.Units()
	names := make([]string, len(units))
	for i, u := range units {
		names[i] = u.String()
	}
	return names
}

func (r *Registry) registerBuiltins() {
	r.Register(Tool{
		Name:        "echo",
		Description: "Return the message unchanged. Used to check that the tool server is reachable.",
		InputSchema: inputSchema(map[string]any{
			"message": map[string]any{"type": "string"},
		}, []string{"message"}),
		Handler: r.echo,
	})
	r.Register(Tool{
		Name:        "measure_distance",
		Description: "Measure the real-world distance between two page points.",
		InputSchema: inputSchema(map[string]any{
			"points":      pointsSchema,
			"calibration": calibrationSchema,
			"unit":        unitSchema,
		}, []string{"points"}),
		Handler: r.measureDistance,
	})
	r.Register(Tool{
		Name:        "polygon_area",
		Description: "Measure the real-world area enclosed by three or more page points.",
		InputSchema: inputSchema(map[string]any{
			"points":      pointsSchema,
			"calibration": calibrationSchema,
			"unit":        unitSchema,
		}, []string{"points"}),
		Handler: r.polygonArea,
	})
	r.Register(Tool{
		Name:        "insights",
		Description: "Record a page of measurements and return its summary insights and parallel linear pairs.",
		InputSchema: inputSchema(map[string]any{
			"measurements": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"kind":   map[string]any{"type": "string", "enum": []string{"linear", "area"}},
						"points": pointsSchema,
					},
					"required": []string{"kind", "points"},
				},
			},
			"calibration": calibrationSchema,
			"unit":        unitSchema,
		}, []string{"measurements"}),
		Handler: r.insights,
	})
	r.Register(Tool{
		Name:        "pdf_text",
		Description: "Extract the text layer of a blueprint PDF, optionally a single page.",
		InputSchema: inputSchema(map[string]any{
			"path": map[string]any{"type": "string", "description": "PDF file path"},
			"page": map[string]any{"type": "integer", "description": "1-based page number; 0 for all pages"},
		}, []string{"path"}),
		Handler: r.pdfText,
	})
	r.Register(Tool{
		Name:        "blueprint_quality",
		Description: "Check whether a blueprint PDF has a usable text layer and dimension labels.",
		InputSchema: inputSchema(map[string]any{
			"path": map[string]any{"type": "string", "description": "PDF file path"},
		}, []string{"path"}),
		Handler: r.blueprintQuality,
	})
}

// --- echo ---

type echoReq struct {
	Message string `json:"message"`
}

func (r *Registry) echo(_ context.Context, args json.RawMessage) (any, error) {
	var req echoReq
	if err := decode(args, &req); err != nil {
		return nil, err
	}
	return map[string]string{"message": req.Message}, nil
}

// --- measure_distance / polygon_area ---

type measureReq struct {
	Points      []geometry.Point   `json:"points"`
	Calibration *sheet.Calibration `json:"calibration,omitempty"`
	Unit        string             `json:"unit,omitempty"`
}

// MeasureResult is the response of the measuring tools
type MeasureResult struct {
	Kind     takeoff.Kind `json:"kind"`
	Value    float64      `json:"value"`
	Measured bool         `json:"measured"`
	Unit     takeoff.Unit `json:"unit"`
	Display  string       `json:"display"`
}

func (r *Registry) measureDistance(_ context.Context, args json.RawMessage) (any, error) {
	return r.measure(takeoff.KindLinear, args)
}

func (r *Registry) polygonArea(_ context.Context, args json.RawMessage) (any, error) {
	return r.measure(takeoff.KindArea, args)
}

func (r *Registry) measure(kind takeoff.Kind, args json.RawMessage) (any, error) {
	var req measureReq
	if err := decode(args, &req); err != nil {
		return nil, err
	}
	scale, unit, err := r.resolveScale(req.Calibration, req.Unit)
	if err != nil {
		return nil, err
	}

	value, measured, err := takeoff.Compute(kind, req.Points, scale)
	if err != nil {
		return nil, err
	}
	return MeasureResult{
		Kind:     kind,
		Value:    value,
		Measured: measured,
		Unit:     unit,
		Display:  display(kind, value, measured, unit),
	}, nil
}

// --- insights ---

type insightsReq struct {
	Measurements []sheet.Measurement `json:"measurements"`
	Calibration  *sheet.Calibration  `json:"calibration,omitempty"`
	Unit         string              `json:"unit,omitempty"`
}

// InsightsResult is the response of the insights tool
type InsightsResult struct {
	Unit         takeoff.Unit            `json:"unit"`
	Calibrated   bool                    `json:"calibrated"`
	Measurements []takeoff.Measurement   `json:"measurements"`
	Insights     []analysis.Insight      `json:"insights"`
	Parallel     []analysis.ParallelPair `json:"parallel,omitempty"`
}

func (r *Registry) insights(_ context.Context, args json.RawMessage) (any, error) {
	var req insightsReq
	if err := decode(args, &req); err != nil {
		return nil, err
	}
	scale, unit, err := r.resolveScale(req.Calibration, req.Unit)
	if err != nil {
		return nil, err
	}

	set := takeoff.NewMeasurementSet()
	for i, m := range req.Measurements {
		kind, err := takeoff.ParseKind(m.Kind)
		if err != nil {
			return nil, fmt.Errorf("measurement %d: %w", i+1, err)
		}
		if _, err := set.Finalize(kind, m.Points, scale); err != nil {
			return nil, fmt.Errorf("measurement %d: %w", i+1, err)
		}
	}

	measurements := set.Measurements()
	return InsightsResult{
		Unit:         unit,
		Calibrated:   scale.IsCalibrated(),
		Measurements: measurements,
		Insights:     r.aggregator.Aggregate(measurements, unit, scale.IsCalibrated()),
		Parallel:     analysis.FindParallelMeasurements(measurements, r.parallelTolerance),
	}, nil
}

// --- pdf_text ---

type pdfTextReq struct {
	Path string `json:"path"`
	Page int    `json:"page,omitempty"`
}

func (r *Registry) pdfText(_ context.Context, args json.RawMessage) (any, error) {
	var req pdfTextReq
	if err := decode(args, &req); err != nil {
		return nil, err
	}
	path, err := r.resolvePath(req.Path)
	if err != nil {
		return nil, err
	}

	ex, err := blueprint.ExtractFile(path)
	if err != nil {
		return nil, err
	}
	if req.Page == 0 {
		return ex, nil
	}
	if req.Page < 0 || req.Page > ex.PageCount {
		return nil, fmt.Errorf("%w: page %d out of range 1..%d", ErrInvalidArguments, req.Page, ex.PageCount)
	}
	for _, p := range ex.Pages {
		if p.Number == req.Page {
			return p, nil
		}
	}
	return blueprint.Page{Number: req.Page}, nil
}

// --- blueprint_quality ---

type qualityReq struct {
	Path string `json:"path"`
}

// QualityResult adds the OCR verdict to a quality report
type QualityResult struct {
	*blueprint.Quality
	NeedsOCR bool `json:"needs_ocr"`
	OK       bool `json:"ok"`
}

func (r *Registry) blueprintQuality(_ context.Context, args json.RawMessage) (any, error) {
	var req qualityReq
	if err := decode(args, &req); err != nil {
		return nil, err
	}
	path, err := r.resolvePath(req.Path)
	if err != nil {
		return nil, err
	}

	q, err := blueprint.CheckFile(path)
	if err != nil {
		return nil, err
	}
	return QualityResult{Quality: q, NeedsOCR: q.NeedsOCR(), OK: q.OK()}, nil
}

// resolveScale calibrates a throwaway calibrator from the request. The unit
// is taken from the request, then from a calibration label, then from the
// registry default.
func (r *Registry) resolveScale(cal *sheet.Calibration, unitArg string) (takeoff.Scale, takeoff.Unit, error) {
	unit := r.unit
	if unitArg != "" {
		u, err := takeoff.ParseUnit(unitArg)
		if err != nil {
			return takeoff.Scale{}, "", fmt.Errorf("%w: %v", ErrInvalidArguments, err)
		}
		unit = u
	}
	if cal == nil {
		return takeoff.Scale{}, unit, nil
	}

	c := takeoff.NewCalibrator()
	labelUnit, err := cal.Apply(c)
	if err != nil {
		return takeoff.Scale{}, "", err
	}
	if unitArg == "" && labelUnit != "" {
		unit = labelUnit
	}
	return c.Scale(), unit, nil
}

func (r *Registry) resolvePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: path is required", ErrInvalidArguments)
	}
	if r.baseDir != "" {
		if filepath.IsAbs(path) {
			return "", fmt.Errorf("%w: path must be relative", ErrInvalidArguments)
		}
		path = filepath.Join(r.baseDir, path)
		rel, err := filepath.Rel(r.baseDir, path)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return "", fmt.Errorf("%w: path escapes base directory", ErrInvalidArguments)
		}
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", err
	}
	return path, nil
}

func display(kind takeoff.Kind, value float64, measured bool, unit takeoff.Unit) string {
	if !measured {
		return "unmeasured"
	}
	return takeoff.FormatValue(kind, value, unit)
}
