package core

import (
	"context"
	"errors"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

type mockCall struct {
	Query  string
	Params map[string]interface{}
}

// mockDriver records every query and replays canned results keyed by the
// query text.
type mockDriver struct {
	calls   []mockCall
	results map[string]neo4j.EagerResult
	failOn  string
}

func newMockDriver() *mockDriver {
	return &mockDriver{results: make(map[string]neo4j.EagerResult)}
}

func (m *mockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.calls = append(m.calls, mockCall{Query: query, Params: params})
	if m.failOn != "" && m.failOn == query {
		return neo4j.EagerResult{}, errors.New("mock driver failure")
	}
	if res, ok := m.results[query]; ok {
		return res, nil
	}
	return neo4j.EagerResult{}, nil
}

func (m *mockDriver) BuildIndices(ctx context.Context) error {
	return nil
}

func (m *mockDriver) Close(ctx context.Context) error {
	return nil
}

func (m *mockDriver) callsFor(query string) []mockCall {
	var out []mockCall
	for _, c := range m.calls {
		if c.Query == query {
			out = append(out, c)
		}
	}
	return out
}

func record(keys []string, values []interface{}) *neo4j.Record {
	return &neo4j.Record{Keys: keys, Values: values}
}

func result(keys []string, rows ...[]interface{}) neo4j.EagerResult {
	res := neo4j.EagerResult{Keys: keys}
	for _, row := range rows {
		res.Records = append(res.Records, record(keys, row))
	}
	return res
}
