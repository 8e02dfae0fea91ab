package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/domain/pipeline"
	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/infrastructure/metrics"
	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/infrastructure/modelstore"
)

// Default values for the optional prediction fields
const (
	DefaultTemperature = 25.0
	DefaultHumidity    = 50.0
	DefaultPH          = 6.5
	DefaultRainfall    = 0.0
	DefaultTopK        = 3
)

// PredictInput represents one row of soil and climate readings.
// Optional fields are pointers so that an explicit null can be told apart
// from an absent field; build it with NewPredictInput before binding.
type PredictInput struct {
	Nitrogen    *float64 `json:"nitrogen" binding:"required"`
	Phosphorus  *float64 `json:"phosphorus" binding:"required"`
	Potassium   *float64 `json:"potassium" binding:"required"`
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
	PH          *float64 `json:"ph"`
	Rainfall    *float64 `json:"rainfall"`
	TopK        *int     `json:"top_k"`
}

// NewPredictInput returns an input with every optional field at its default
func NewPredictInput() *PredictInput {
	return &PredictInput{
		Temperature: lo.ToPtr(DefaultTemperature),
		Humidity:    lo.ToPtr(DefaultHumidity),
		PH:          lo.ToPtr(DefaultPH),
		Rainfall:    lo.ToPtr(DefaultRainfall),
		TopK:        lo.ToPtr(DefaultTopK),
	}
}

// Features returns the feature row. Null values become 0.
func (in *PredictInput) Features() pipeline.CropFeatures {
	return pipeline.CropFeatures{
		Nitrogen:    lo.FromPtr(in.Nitrogen),
		Phosphorus:  lo.FromPtr(in.Phosphorus),
		Potassium:   lo.FromPtr(in.Potassium),
		Temperature: lo.FromPtr(in.Temperature),
		Humidity:    lo.FromPtr(in.Humidity),
		PH:          lo.FromPtr(in.PH),
		Rainfall:    lo.FromPtr(in.Rainfall),
	}
}

// K returns the requested number of classes, defaulting to 3
func (in *PredictInput) K() int {
	if in.TopK == nil || *in.TopK < 1 {
		return DefaultTopK
	}
	return *in.TopK
}

// PredictOutput represents the top-k classes for one row
type PredictOutput struct {
	Predictions   []string  `json:"predictions"`
	Probabilities []float64 `json:"probabilities"`
	RawOutput     []float64 `json:"raw_output"`
}

// HealthOutput represents the model server status
type HealthOutput struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
	ModelPath   string `json:"model_path"`
}

// ReloadOutput represents a successful reload
type ReloadOutput struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

// ModelRegistry is the loaded-model holder the usecase reads from
type ModelRegistry interface {
	Current() *modelstore.Loaded
	Reload() (*modelstore.Loaded, error)
	Path() string
}

// PredictionCache stores prediction outputs by key
type PredictionCache interface {
	Get(ctx context.Context, key string) (*PredictOutput, bool, error)
	Set(ctx context.Context, key string, output *PredictOutput, ttl time.Duration) error
}

// PredictionUsecase defines the interface for the prediction service
type PredictionUsecase interface {
	Predict(ctx context.Context, input *PredictInput) (*PredictOutput, error)
	Health(ctx context.Context) *HealthOutput
	Reload(ctx context.Context) (*ReloadOutput, error)
}

type predictionUsecase struct {
	models   ModelRegistry
	cache    PredictionCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewPredictionUsecase creates a new prediction usecase. cache may be nil.
func NewPredictionUsecase(models ModelRegistry, cache PredictionCache, cacheTTL time.Duration, logger *zap.Logger) PredictionUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &predictionUsecase{
		models:   models,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

func (u *predictionUsecase) Predict(ctx context.Context, input *PredictInput) (*PredictOutput, error) {
	loaded := u.models.Current()
	if loaded == nil {
		return nil, ErrModelNotLoaded
	}

	features := input.Features()
	k := input.K()
	key := CacheKey(loaded.Fingerprint, features, k)

	if u.cache != nil {
		cached, ok, err := u.cache.Get(ctx, key)
		if err != nil {
			u.logger.Warn("Prediction cache read failed", zap.Error(err))
		} else if ok {
			metrics.PredictionsTotal.WithLabelValues("cache").Inc()
			return cached, nil
		}
	}

	prediction, err := loaded.Model.Predict(features, k)
	if err != nil {
		u.logger.Error("Inference failed",
			zap.String("fingerprint", loaded.Fingerprint),
			zap.Error(err))
		return nil, &InferenceError{Err: err}
	}
	metrics.PredictionsTotal.WithLabelValues(string(prediction.Source)).Inc()

	output := &PredictOutput{
		Predictions:   prediction.Labels,
		Probabilities: prediction.Probabilities,
		RawOutput:     prediction.Raw,
	}

	if u.cache != nil {
		if err := u.cache.Set(ctx, key, output, u.cacheTTL); err != nil {
			u.logger.Warn("Prediction cache write failed", zap.Error(err))
		}
	}

	return output, nil
}

func (u *predictionUsecase) Health(ctx context.Context) *HealthOutput {
	return &HealthOutput{
		Status:      "ok",
		ModelLoaded: u.models.Current() != nil,
		ModelPath:   u.models.Path(),
	}
}

func (u *predictionUsecase) Reload(ctx context.Context) (*ReloadOutput, error) {
	if _, err := u.models.Reload(); err != nil {
		return nil, &ReloadError{Err: err}
	}
	return &ReloadOutput{Status: "ok", ModelLoaded: true}, nil
}

// CacheKey identifies a prediction by model fingerprint, feature row and k
func CacheKey(fingerprint string, features pipeline.CropFeatures, k int) string {
	row := features.Frame().Rows[0]
	values := lo.Map(row, func(v float64, _ int) string {
		return strconv.FormatFloat(v, 'g', -1, 64)
	})
	return "predict:" + fingerprint + ":" + strings.Join(values, ",") + ":" + strconv.Itoa(k)
}
