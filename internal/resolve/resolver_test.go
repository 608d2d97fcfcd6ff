package resolve

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssriramteja/tablemeta/internal/catalog"
)

type fakeClient struct {
	entries     []catalog.DescribeEntry
	count       int64
	describeErr error
	countErr    error
}

func (f *fakeClient) Describe(ctx context.Context, table string) ([]catalog.DescribeEntry, error) {
	if f.describeErr != nil {
		return nil, f.describeErr
	}
	return f.entries, nil
}

func (f *fakeClient) Count(ctx context.Context, table string) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.count, nil
}

func (f *fakeClient) Close() error { return nil }

func TestResolve_MapsKnownAttributes(t *testing.T) {
	client := &fakeClient{
		entries: []catalog.DescribeEntry{
			{Key: "Location", Value: "/warehouse/sales"},
			{Key: "Owner", Value: "analytics"},
			{Key: "UnknownKey", Value: "x"},
		},
		count: 1024,
	}
	out := New(client, nil).Resolve(context.Background(), "sales")

	require.Equal(t, StatusResolved, out.Status)
	require.NoError(t, out.Err)

	rec := out.Record
	assert.Equal(t, "sales", rec.TableName)
	require.NotNil(t, rec.Location)
	assert.Equal(t, "/warehouse/sales", *rec.Location)
	require.NotNil(t, rec.Owner)
	assert.Equal(t, "analytics", *rec.Owner)
	assert.Nil(t, rec.CreateTime)
	assert.Nil(t, rec.LastAccessTime)
	require.NotNil(t, rec.RowCount)
	assert.Equal(t, int64(1024), *rec.RowCount)
}

func TestResolve_NormalizesDescribeKeys(t *testing.T) {
	client := &fakeClient{
		entries: []catalog.DescribeEntry{
			{Key: "  Location:           ", Value: "hdfs://nn/warehouse/events"},
			{Key: "OWNER", Value: "etl"},
			{Key: "createTime:", Value: "Mon Mar 04 10:00:00 UTC 2024"},
			{Key: "LastAccessTime", Value: "UNKNOWN"},
		},
		count: 7,
	}
	out := New(client, nil).Resolve(context.Background(), "events")

	require.Equal(t, StatusResolved, out.Status)
	rec := out.Record
	require.NotNil(t, rec.Location)
	assert.Equal(t, "hdfs://nn/warehouse/events", *rec.Location)
	require.NotNil(t, rec.Owner)
	assert.Equal(t, "etl", *rec.Owner)
	require.NotNil(t, rec.CreateTime)
	assert.Equal(t, "Mon Mar 04 10:00:00 UTC 2024", *rec.CreateTime)
	require.NotNil(t, rec.LastAccessTime)
	assert.Equal(t, "UNKNOWN", *rec.LastAccessTime)
}

func TestResolve_EmptyValuesStayAbsent(t *testing.T) {
	client := &fakeClient{
		entries: []catalog.DescribeEntry{
			{Key: "Location", Value: ""},
			{Key: "Owner", Value: "   "},
		},
		count: 0,
	}
	out := New(client, nil).Resolve(context.Background(), "t")

	require.Equal(t, StatusResolved, out.Status)
	assert.Nil(t, out.Record.Location)
	assert.Nil(t, out.Record.Owner)
	require.NotNil(t, out.Record.RowCount)
	assert.Equal(t, int64(0), *out.Record.RowCount)
}

func TestResolve_FirstOccurrenceWins(t *testing.T) {
	client := &fakeClient{
		entries: []catalog.DescribeEntry{
			{Key: "Owner", Value: "first"},
			{Key: "Owner", Value: "second"},
		},
	}
	out := New(client, nil).Resolve(context.Background(), "t")

	require.NotNil(t, out.Record.Owner)
	assert.Equal(t, "first", *out.Record.Owner)
}

func TestResolve_DescribeFailureDegrades(t *testing.T) {
	client := &fakeClient{
		describeErr: &catalog.QueryError{Table: "missing_tbl", Op: catalog.OpDescribe, Err: errors.New("table not found")},
	}
	out := New(client, nil).Resolve(context.Background(), "missing_tbl")

	assert.Equal(t, StatusQueryFailed, out.Status)
	assert.Error(t, out.Err)
	assert.Equal(t, "missing_tbl", out.Record.TableName)
	assert.True(t, out.Record.Degraded(), "every field but the name must be absent, got %+v", out.Record)
}

func TestResolve_CountFailureDegrades(t *testing.T) {
	client := &fakeClient{
		entries:  []catalog.DescribeEntry{{Key: "Location", Value: "/x"}},
		countErr: &catalog.QueryError{Table: "t", Op: catalog.OpCount, Err: errors.New("engine gone")},
	}
	out := New(client, nil).Resolve(context.Background(), "t")

	assert.Equal(t, StatusQueryFailed, out.Status)
	assert.True(t, out.Record.Degraded(), "partial describe results must not leak into a failed record")
}

func TestResolve_DeadlineReportedAsTimeout(t *testing.T) {
	client := &fakeClient{
		describeErr: &catalog.QueryError{Table: "slow", Op: catalog.OpDescribe, Err: context.DeadlineExceeded},
	}
	out := New(client, nil).Resolve(context.Background(), "slow")

	assert.Equal(t, StatusTimedOut, out.Status)
	assert.True(t, out.Record.Degraded())
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, StatusTimedOut, StatusFor(context.DeadlineExceeded))
	assert.Equal(t, StatusQueryFailed, StatusFor(errors.New("boom")))
	assert.Equal(t, StatusQueryFailed, StatusFor(context.Canceled))
}
