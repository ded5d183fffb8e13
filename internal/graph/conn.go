package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"
)

// Row is one decoded result-set row. Values are scalars: int64, string, or nil.
type Row []any

// Int64 returns the value at column i as an int64, or 0 if absent or not numeric.
func (r Row) Int64(i int) int64 {
	if i >= len(r) {
		return 0
	}
	if v, ok := r[i].(int64); ok {
		return v
	}
	return 0
}

// String returns the value at column i as a string, or "" if absent or nil.
func (r Row) String(i int) string {
	if i >= len(r) {
		return ""
	}
	switch v := r[i].(type) {
	case string:
		return v
	case int64:
		return fmt.Sprintf("%d", v)
	default:
		return ""
	}
}

// Result is a decoded query result set. Write-only queries produce no rows.
type Result struct {
	Rows []Row
}

// Conn executes Cypher against a single named graph.
//
// Implementations must be safe for use from a single goroutine at a time;
// the pipeline runs one stage at a time and never queries concurrently.
type Conn interface {
	Query(ctx context.Context, cypher string) (*Result, error)
	Close()
}

// FalkorConn is a [Conn] backed by a FalkorDB instance over RESP.
type FalkorConn struct {
	client valkey.Client
	graph  string
}

var _ Conn = (*FalkorConn)(nil)

// Dial connects to FalkorDB at addr and selects the named graph.
// The connection is verified with a PING before returning.
func Dial(addr, graph string) (*FalkorConn, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{addr},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create graph client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to reach graph store at %s: %w", addr, err)
	}

	return &FalkorConn{client: client, graph: graph}, nil
}

// Query runs a Cypher query through GRAPH.QUERY and decodes the result set.
//
// FalkorDB replies with [header, rows, stats] for reading queries and a
// stats-only array for write-only queries; the latter decodes to zero rows.
func (c *FalkorConn) Query(ctx context.Context, cypher string) (*Result, error) {
	cmd := c.client.B().Arbitrary("GRAPH.QUERY").Keys(c.graph).Args(cypher).Build()

	res := c.client.Do(ctx, cmd)
	if err := res.Error(); err != nil {
		return nil, fmt.Errorf("graph query failed: %w", err)
	}

	reply, err := res.ToArray()
	if err != nil {
		return nil, fmt.Errorf("unexpected graph reply: %w", err)
	}

	if len(reply) < 3 {
		return &Result{}, nil
	}

	rowMsgs, err := reply[1].ToArray()
	if err != nil {
		return nil, fmt.Errorf("unexpected result set shape: %w", err)
	}

	result := &Result{Rows: make([]Row, 0, len(rowMsgs))}
	for _, rowMsg := range rowMsgs {
		cells, err := rowMsg.ToArray()
		if err != nil {
			return nil, fmt.Errorf("unexpected row shape: %w", err)
		}

		row := make(Row, len(cells))
		for i, cell := range cells {
			row[i] = decodeScalar(cell)
		}
		result.Rows = append(result.Rows, row)
	}

	return result, nil
}

// Close releases the underlying client.
func (c *FalkorConn) Close() {
	c.client.Close()
}

// decodeScalar converts a reply cell to int64, string, or nil.
// The store's queries only return scalar columns.
func decodeScalar(m valkey.ValkeyMessage) any {
	if m.IsNil() {
		return nil
	}
	if m.IsInt64() {
		if v, err := m.ToInt64(); err == nil {
			return v
		}
	}
	if s, err := m.ToString(); err == nil {
		return s
	}
	return nil
}
