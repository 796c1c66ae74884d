package resolve

import (
	"context"

	"github.com/agenthands/projectsearch/internal/core/model"
)

type MockSource struct {
	Rows  []model.RawRow
	Err   error
	Calls int
}

func (m *MockSource) Fetch(ctx context.Context) ([]model.RawRow, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Rows, nil
}

func (m *MockSource) String() string { return "mock reference" }
