package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockSource struct {
	mock.Mock
}

func (m *MockSource) LatestLastUpdated(ctx context.Context) (int64, bool, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func Test_Hydrate(t *testing.T) {
	cases := []struct {
		name          string
		setupSource   func() *MockSource
		initial       int64
		expectedError error
		expectedValue int64
	}{
		{
			name: "happy path",
			setupSource: func() *MockSource {
				src := &MockSource{}
				src.On("LatestLastUpdated", mock.Anything).Return(int64(1700000000), true, nil)
				return src
			},
			expectedValue: 1700000000,
		},
		{
			name: "empty source keeps value",
			setupSource: func() *MockSource {
				src := &MockSource{}
				src.On("LatestLastUpdated", mock.Anything).Return(int64(0), false, nil)
				return src
			},
			initial:       12,
			expectedValue: 12,
		},
		{
			name: "source failed",
			setupSource: func() *MockSource {
				src := &MockSource{}
				src.On("LatestLastUpdated", mock.Anything).Return(int64(0), false, errors.New("db down"))
				return src
			},
			expectedError: ErrHydrate,
			expectedValue: 0,
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			src := tt.setupSource()
			c := New()
			c.Set(tt.initial)

			err := c.Hydrate(context.Background(), src)
			assert.ErrorIs(t, err, tt.expectedError)
			assert.Equal(t, tt.expectedValue, c.Get())
			src.AssertExpectations(t)
		})
	}
}

func Test_SetTracksChange(t *testing.T) {
	c := New()
	assert.Equal(t, int64(0), c.Get())
	assert.True(t, c.SetAt().IsZero())

	c.Set(10)
	first := c.SetAt()
	assert.False(t, first.IsZero())

	c.Set(10)
	assert.Equal(t, first, c.SetAt(), "setting the same value must not bump SetAt")
	assert.Equal(t, int64(10), c.Get())
}
