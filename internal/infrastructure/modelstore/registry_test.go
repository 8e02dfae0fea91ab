package modelstore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockArtifactLoader struct {
	mock.Mock
}

func (m *MockArtifactLoader) Load(path string) (*Loaded, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Loaded), args.Error(1)
}

func TestRegistry_LoadInitial(t *testing.T) {
	t.Run("installs the model", func(t *testing.T) {
		loader := new(MockArtifactLoader)
		first := &Loaded{Fingerprint: "aaa"}
		loader.On("Load", "model.gob").Return(first, nil)

		r := NewRegistry("model.gob", loader, nil)

		assert.True(t, r.LoadInitial())
		assert.True(t, r.Loaded())
		assert.Same(t, first, r.Current())
		loader.AssertExpectations(t)
	})

	t.Run("failure leaves the registry empty", func(t *testing.T) {
		loader := new(MockArtifactLoader)
		loader.On("Load", "model.gob").Return(nil, errors.New("corrupt"))

		r := NewRegistry("model.gob", loader, nil)

		assert.False(t, r.LoadInitial())
		assert.False(t, r.Loaded())
		assert.Nil(t, r.Current())
	})
}

func TestRegistry_Reload(t *testing.T) {
	t.Run("replaces the model", func(t *testing.T) {
		loader := new(MockArtifactLoader)
		first := &Loaded{Fingerprint: "aaa"}
		second := &Loaded{Fingerprint: "bbb"}
		loader.On("Load", "model.gob").Return(first, nil).Once()
		loader.On("Load", "model.gob").Return(second, nil).Once()

		r := NewRegistry("model.gob", loader, nil)
		require.True(t, r.LoadInitial())

		got, err := r.Reload()

		require.NoError(t, err)
		assert.Same(t, second, got)
		assert.Same(t, second, r.Current())
	})

	t.Run("failure keeps the previous model", func(t *testing.T) {
		loader := new(MockArtifactLoader)
		first := &Loaded{Fingerprint: "aaa"}
		loader.On("Load", "model.gob").Return(first, nil).Once()
		loader.On("Load", "model.gob").Return(nil, errors.New("truncated")).Once()

		r := NewRegistry("model.gob", loader, nil)
		require.True(t, r.LoadInitial())

		got, err := r.Reload()

		assert.EqualError(t, err, "truncated")
		assert.Same(t, first, got)
		assert.Same(t, first, r.Current())
	})

	t.Run("failure with nothing installed", func(t *testing.T) {
		loader := new(MockArtifactLoader)
		loader.On("Load", "model.gob").Return(nil, errors.New("missing"))

		r := NewRegistry("model.gob", loader, nil)

		got, err := r.Reload()

		assert.Error(t, err)
		assert.Nil(t, got)
		assert.False(t, r.Loaded())
	})
}

func TestRegistry_Path(t *testing.T) {
	r := NewRegistry("/srv/crop.gob", new(MockArtifactLoader), nil)
	assert.Equal(t, "/srv/crop.gob", r.Path())
}
