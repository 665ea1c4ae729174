package workbench

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifestRoundTrip(t *testing.T) {
	doc := &WorkspaceManifest{
		Name: "demo workspace",
		Tables: []VirtualTable{
			{
				ID:             "vt1",
				Name:           "Sales View",
				SourceTableIDs: []string{"t1"},
				Fields:         []string{"region", "amount"},
				Data: []Row{
					{"region": String("North"), "amount": Number(1200)},
					{"region": Null(), "amount": Bool(true)},
				},
				CreatedAt: time.Date(2023, 10, 15, 12, 0, 0, 0, time.UTC),
			},
		},
		Dashboards: []Dashboard{
			{
				ID:   "d2",
				Name: "Quarterly",
				Widgets: []DashboardWidget{
					{
						ID:     "w1",
						Title:  "Revenue",
						Type:   WidgetBar,
						Config: WidgetConfig{XAxis: "region", YAxis: "amount", Color: "#6366f1"},
						Layout: WidgetLayout{X: 0, Y: 0, W: 4, H: 4},
					},
				},
			},
		},
	}

	path := filepath.Join(t.TempDir(), "workspace.yaml")
	require.NoError(t, WriteWorkspaceManifest(path, doc))

	loaded, err := ReadWorkspaceManifest(path)
	require.NoError(t, err)
	assert.Equal(t, ManifestVersion, loaded.Version)
	assert.Equal(t, path, loaded.Source)
	require.Len(t, loaded.Tables, 1)
	assert.Equal(t, doc.Tables[0].Fields, loaded.Tables[0].Fields)
	assert.Equal(t, String("North"), loaded.Tables[0].Data[0]["region"])
	assert.True(t, loaded.Tables[0].Data[1]["region"].IsNull())
	assert.Equal(t, Bool(true), loaded.Tables[0].Data[1]["amount"])
	require.Len(t, loaded.Dashboards, 1)
	assert.Equal(t, WidgetBar, loaded.Dashboards[0].Widgets[0].Type)
}

func TestDecodeManifestRejectsUnknownFields(t *testing.T) {
	_, err := DecodeWorkspaceManifest(strings.NewReader("version: \"1\"\nbogus: true\n"))
	require.Error(t, err)
}

func TestDecodeManifestRejectsEmptyDocument(t *testing.T) {
	_, err := DecodeWorkspaceManifest(strings.NewReader(""))
	require.Error(t, err)
}

func TestManifestValidate(t *testing.T) {
	bad := &WorkspaceManifest{
		Version: ManifestVersion,
		Tables:  []VirtualTable{{ID: "", Name: "x"}},
	}
	require.Error(t, bad.Validate())

	dup := &WorkspaceManifest{
		Version: ManifestVersion,
		Tables: []VirtualTable{
			{ID: "vt1", Name: "a"},
			{ID: "vt1", Name: "b"},
		},
	}
	require.Error(t, dup.Validate())

	wrongVersion := &WorkspaceManifest{Version: "99"}
	require.Error(t, wrongVersion.Validate())
}
