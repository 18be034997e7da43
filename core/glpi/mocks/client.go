package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of glpi.Client
type Client struct {
	mock.Mock
}

func (m *Client) InitSession(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *Client) GetComputers(ctx context.Context, start, limit int) ([]map[string]any, error) {
	args := m.Called(ctx, start, limit)
	if computers, ok := args.Get(0).([]map[string]any); ok {
		return computers, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) GetAllComponents(ctx context.Context, computerID int) (map[string][]map[string]any, error) {
	args := m.Called(ctx, computerID)
	if components, ok := args.Get(0).(map[string][]map[string]any); ok {
		return components, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) KillSession(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
