package server

import (
	"context"

	"github.com/agenthands/projectsearch/internal/core/model"
)

type MockSource struct {
	Name string
	Rows []model.RawRow
	Err  error
}

func (m *MockSource) Fetch(ctx context.Context) ([]model.RawRow, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Rows, nil
}

func (m *MockSource) String() string { return m.Name }

type MockLLM struct {
	Response string
	Err      error
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
