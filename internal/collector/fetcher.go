package collector

import "context"

// Report identifies one operator weekly report published by the regulator.
type Report struct {
	Name     string `yaml:"name"`     // brand display name
	URL      string `yaml:"url"`      // download URL
	Filename string `yaml:"filename"` // local filename for the workbook
}

// Fetcher retrieves report files.
type Fetcher interface {
	Fetch(ctx context.Context, report Report) ([]byte, error)
	Name() string
}

// MockFetcher returns canned file contents for development and testing.
type MockFetcher struct {
	Files map[string][]byte // keyed by report name
	Err   error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) Fetch(_ context.Context, report Report) ([]byte, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Files[report.Name], nil
}
