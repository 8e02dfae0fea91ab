package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/domain/pipeline"
	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/infrastructure/modelstore"
)

// MockModelRegistry is a mock implementation of ModelRegistry
type MockModelRegistry struct {
	mock.Mock
}

func (m *MockModelRegistry) Current() *modelstore.Loaded {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*modelstore.Loaded)
}

func (m *MockModelRegistry) Reload() (*modelstore.Loaded, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*modelstore.Loaded), args.Error(1)
}

func (m *MockModelRegistry) Path() string {
	args := m.Called()
	return args.String(0)
}

// MockPredictionCache is a mock implementation of PredictionCache
type MockPredictionCache struct {
	mock.Mock
}

func (m *MockPredictionCache) Get(ctx context.Context, key string) (*PredictOutput, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*PredictOutput), args.Bool(1), args.Error(2)
}

func (m *MockPredictionCache) Set(ctx context.Context, key string, output *PredictOutput, ttl time.Duration) error {
	args := m.Called(ctx, key, output, ttl)
	return args.Error(0)
}

// staticProba reports the same probabilities for every row
type staticProba struct {
	probs  []float64
	labels []string
	err    error
}

func (s *staticProba) Predict(x [][]float64) ([]string, error) { return s.labels[:1], s.err }

func (s *staticProba) PredictProba(x [][]float64) ([][]float64, error) {
	if s.err != nil {
		return nil, s.err
	}
	return [][]float64{s.probs}, nil
}

func (s *staticProba) Classes() []string { return s.labels }

func loadedModel(t *testing.T, component any) *modelstore.Loaded {
	t.Helper()
	m, err := pipeline.Bind(component)
	require.NoError(t, err)
	return &modelstore.Loaded{Model: m, Fingerprint: "f00d", Path: "crop.gob"}
}

func decodeInput(t *testing.T, body string) *PredictInput {
	t.Helper()
	input := NewPredictInput()
	require.NoError(t, json.Unmarshal([]byte(body), input))
	return input
}

func TestPredictionUsecase_Predict(t *testing.T) {
	crops := &staticProba{probs: []float64{0.7, 0.2, 0.1}, labels: []string{"rice", "maize", "cotton"}}

	t.Run("top two", func(t *testing.T) {
		models := new(MockModelRegistry)
		models.On("Current").Return(loadedModel(t, crops))
		uc := NewPredictionUsecase(models, nil, 0, nil)

		input := decodeInput(t, `{"nitrogen":90,"phosphorus":42,"potassium":43,"temperature":20.8,"humidity":82,"ph":6.5,"rainfall":200,"top_k":2}`)

		output, err := uc.Predict(context.Background(), input)

		require.NoError(t, err)
		assert.Equal(t, []string{"rice", "maize"}, output.Predictions)
		assert.Equal(t, []float64{0.7, 0.2}, output.Probabilities)
		assert.Equal(t, []float64{0.7, 0.2, 0.1}, output.RawOutput)
	})

	t.Run("model not loaded", func(t *testing.T) {
		models := new(MockModelRegistry)
		models.On("Current").Return(nil)
		uc := NewPredictionUsecase(models, nil, 0, nil)

		output, err := uc.Predict(context.Background(), decodeInput(t, `{"nitrogen":1,"phosphorus":2,"potassium":3}`))

		assert.ErrorIs(t, err, ErrModelNotLoaded)
		assert.Nil(t, output)
	})

	t.Run("inference error", func(t *testing.T) {
		models := new(MockModelRegistry)
		models.On("Current").Return(loadedModel(t, &staticProba{labels: []string{"a"}, err: errors.New("shape mismatch")}))
		uc := NewPredictionUsecase(models, nil, 0, nil)

		_, err := uc.Predict(context.Background(), decodeInput(t, `{"nitrogen":1,"phosphorus":2,"potassium":3}`))

		var inferenceErr *InferenceError
		require.ErrorAs(t, err, &inferenceErr)
		assert.EqualError(t, inferenceErr.Err, "shape mismatch")
	})

	t.Run("cache hit skips the model", func(t *testing.T) {
		models := new(MockModelRegistry)
		models.On("Current").Return(loadedModel(t, &staticProba{labels: []string{"a"}, err: errors.New("must not run")}))
		cache := new(MockPredictionCache)
		cached := &PredictOutput{Predictions: []string{"jute"}}
		cache.On("Get", mock.Anything, mock.AnythingOfType("string")).Return(cached, true, nil)
		uc := NewPredictionUsecase(models, cache, time.Minute, nil)

		output, err := uc.Predict(context.Background(), decodeInput(t, `{"nitrogen":1,"phosphorus":2,"potassium":3}`))

		require.NoError(t, err)
		assert.Same(t, cached, output)
		cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cache miss stores the output", func(t *testing.T) {
		models := new(MockModelRegistry)
		models.On("Current").Return(loadedModel(t, crops))
		cache := new(MockPredictionCache)
		input := decodeInput(t, `{"nitrogen":1,"phosphorus":2,"potassium":3}`)
		key := CacheKey("f00d", input.Features(), 3)
		cache.On("Get", mock.Anything, key).Return(nil, false, nil)
		cache.On("Set", mock.Anything, key, mock.AnythingOfType("*usecase.PredictOutput"), time.Minute).Return(nil)
		uc := NewPredictionUsecase(models, cache, time.Minute, nil)

		output, err := uc.Predict(context.Background(), input)

		require.NoError(t, err)
		assert.Equal(t, []string{"rice", "maize", "cotton"}, output.Predictions)
		cache.AssertExpectations(t)
	})

	t.Run("cache errors are bypassed", func(t *testing.T) {
		models := new(MockModelRegistry)
		models.On("Current").Return(loadedModel(t, crops))
		cache := new(MockPredictionCache)
		cache.On("Get", mock.Anything, mock.Anything).Return(nil, false, errors.New("connection refused"))
		cache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("connection refused"))
		uc := NewPredictionUsecase(models, cache, time.Minute, nil)

		output, err := uc.Predict(context.Background(), decodeInput(t, `{"nitrogen":1,"phosphorus":2,"potassium":3,"top_k":1}`))

		require.NoError(t, err)
		assert.Equal(t, []string{"rice"}, output.Predictions)
	})
}

func TestPredictInput(t *testing.T) {
	t.Run("absent fields take defaults", func(t *testing.T) {
		input := decodeInput(t, `{"nitrogen":90,"phosphorus":42,"potassium":43}`)

		assert.Equal(t, pipeline.CropFeatures{
			Nitrogen: 90, Phosphorus: 42, Potassium: 43,
			Temperature: 25, Humidity: 50, PH: 6.5, Rainfall: 0,
		}, input.Features())
		assert.Equal(t, 3, input.K())
	})

	t.Run("explicit null becomes zero", func(t *testing.T) {
		input := decodeInput(t, `{"nitrogen":90,"phosphorus":42,"potassium":43,"temperature":null,"ph":null,"top_k":null}`)

		features := input.Features()
		assert.Equal(t, 0.0, features.Temperature)
		assert.Equal(t, 0.0, features.PH)
		assert.Equal(t, 50.0, features.Humidity)
		assert.Equal(t, 3, input.K())
	})

	t.Run("top_k below one means three", func(t *testing.T) {
		assert.Equal(t, 3, decodeInput(t, `{"top_k":0}`).K())
		assert.Equal(t, 3, decodeInput(t, `{"top_k":-4}`).K())
		assert.Equal(t, 7, decodeInput(t, `{"top_k":7}`).K())
	})
}

func TestPredictionUsecase_Health(t *testing.T) {
	models := new(MockModelRegistry)
	models.On("Current").Return(nil).Once()
	models.On("Path").Return("./crop.gob")
	uc := NewPredictionUsecase(models, nil, 0, nil)

	output := uc.Health(context.Background())

	assert.Equal(t, &HealthOutput{Status: "ok", ModelLoaded: false, ModelPath: "./crop.gob"}, output)

	models.On("Current").Return(loadedModel(t, &staticProba{labels: []string{"a"}}))
	assert.True(t, uc.Health(context.Background()).ModelLoaded)
}

func TestPredictionUsecase_Reload(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		models := new(MockModelRegistry)
		models.On("Reload").Return(&modelstore.Loaded{}, nil)
		uc := NewPredictionUsecase(models, nil, 0, nil)

		output, err := uc.Reload(context.Background())

		require.NoError(t, err)
		assert.Equal(t, &ReloadOutput{Status: "ok", ModelLoaded: true}, output)
	})

	t.Run("failure", func(t *testing.T) {
		models := new(MockModelRegistry)
		models.On("Reload").Return(&modelstore.Loaded{}, errors.New("file truncated"))
		uc := NewPredictionUsecase(models, nil, 0, nil)

		output, err := uc.Reload(context.Background())

		var reloadErr *ReloadError
		require.ErrorAs(t, err, &reloadErr)
		assert.EqualError(t, err, "reload failed: file truncated")
		assert.Nil(t, output)
	})
}

func TestCacheKey(t *testing.T) {
	features := pipeline.CropFeatures{Nitrogen: 90, Phosphorus: 42, Potassium: 43, Temperature: 20.8, Humidity: 82, PH: 6.5, Rainfall: 200}

	assert.Equal(t, "predict:abc:90,42,43,20.8,82,6.5,200:2", CacheKey("abc", features, 2))
	assert.NotEqual(t, CacheKey("abc", features, 2), CacheKey("abd", features, 2))
	assert.NotEqual(t, CacheKey("abc", features, 2), CacheKey("abc", features, 3))
}
