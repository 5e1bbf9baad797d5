package backend

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ynabviz/internal/blob"
	"ynabviz/internal/budget"
	"ynabviz/internal/config"
	"ynabviz/internal/core"
	"ynabviz/internal/publish"
	"ynabviz/internal/render"
)

func baseConfig(sink string) *config.Config {
	return &config.Config{
		YNABBaseURL:   "https://api.ynab.com/v1",
		AWSRegion:     "us-east-1",
		Bucket:        "ynab-notion-category-visualizations",
		Sink:          sink,
		PublishMode:   "dashboard",
		PublicBaseURL: "http://localhost:8080/v/",
	}
}

func food() budget.Static {
	return budget.Static{{Name: "Food", Categories: []core.CategoryRecord{
		{Name: "Groceries", Budgeted: 500000, Balance: 300000, Activity: -200000},
	}}}
}

func TestSinkTypes(t *testing.T) {
	for _, st := range []SinkType{S3Sink, SQLiteSink, MemorySink, NotionSink, SheetsSink} {
		assert.True(t, st.IsValid(), st)
	}
	assert.False(t, SinkType("ftp").IsValid())
	assert.True(t, NotionSink.IsWorkspace())
	assert.False(t, S3Sink.IsWorkspace())
}

func TestCreateSinkInvalid(t *testing.T) {
	_, err := NewFactory(nil).CreateSink(context.Background(), baseConfig("ftp"))
	assert.Error(t, err)
}

func TestCreateS3Sink(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "test")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test")

	sink, err := NewFactory(nil).CreateSink(context.Background(), baseConfig("s3"))
	require.NoError(t, err)
	require.NotNil(t, sink.Publisher)
	assert.Nil(t, sink.Objects)
	assert.Equal(t, "http://ynab-notion-category-visualizations.s3-website-us-east-1.amazonaws.com/",
		sink.Publisher.Locator().BaseURL())
	assert.NoError(t, sink.Close())
}

func TestCreateNotionSink(t *testing.T) {
	cfg := baseConfig("notion")
	cfg.NotionAPIKey = "secret"
	cfg.NotionPageID = "page"
	sink, err := NewFactory(nil).CreateSink(context.Background(), cfg)
	require.NoError(t, err)
	assert.NotNil(t, sink.Workspace)
	assert.Nil(t, sink.Publisher)
}

func TestCreateSheetsSinkWithoutCredentials(t *testing.T) {
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
	cfg := baseConfig("sheets")
	cfg.GoogleSpreadsheetID = "sheet"
	_, err := NewFactory(nil).CreateSink(context.Background(), cfg)
	assert.Error(t, err)
}

func TestOrchestratorWithMemorySink(t *testing.T) {
	f := NewFactory(nil)
	f.Source = food()

	o, sink, err := f.CreateOrchestrator(context.Background(), baseConfig("memory"))
	require.NoError(t, err)
	defer sink.Close()

	resp := o.Handle(context.Background())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	obj, err := sink.Objects.Get(context.Background(), publish.DashboardKey)
	require.NoError(t, err)
	assert.Contains(t, string(obj.Body), "Groceries")
}

func TestOrchestratorSharesClockWithRenderer(t *testing.T) {
	now := time.Date(2026, time.February, 14, 8, 0, 0, 0, time.UTC)
	cfg := baseConfig("memory")
	cfg.ShowPace = true

	f := NewFactory(nil)
	f.Source = food()
	f.Now = func() time.Time { return now }

	o, sink, err := f.CreateOrchestrator(context.Background(), cfg)
	require.NoError(t, err)
	defer sink.Close()
	require.Equal(t, http.StatusOK, o.Handle(context.Background()).StatusCode)

	obj, err := sink.Objects.Get(context.Background(), publish.DashboardKey)
	require.NoError(t, err)
	assert.Contains(t, string(obj.Body), fmt.Sprintf("rotate(%.2fdeg)", render.PaceAngle(now)))
}

func TestOrchestratorWithSQLiteSink(t *testing.T) {
	cfg := baseConfig("sqlite")
	cfg.SQLiteDBPath = filepath.Join(t.TempDir(), "viz.db")
	cfg.PublishMode = "categories"

	f := NewFactory(nil)
	f.Source = food()
	o, sink, err := f.CreateOrchestrator(context.Background(), cfg)
	require.NoError(t, err)
	defer sink.Close()

	resp := o.Handle(context.Background())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	obj, err := sink.Objects.Get(context.Background(), "groceries.html")
	require.NoError(t, err)
	assert.Equal(t, "text/html", obj.ContentType)

	_, err = sink.Objects.Get(context.Background(), publish.DashboardKey)
	assert.ErrorIs(t, err, blob.ErrNotFound)
}
