package report

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/defactra/fontprep/pkg/fontprobe"
	"github.com/defactra/fontprep/pkg/provision"
)

func successResult() *provision.Result {
	return &provision.Result{
		RunID:   "run-1",
		Manager: "apt",
		Steps: []provision.StepResult{
			{Name: "update index", Duration: 2 * time.Second},
			{Name: "install malayalam", Duration: 5 * time.Second},
			{Name: "rebuild font cache", Duration: time.Second},
			{Name: "verify", Duration: 100 * time.Millisecond},
		},
		Listing: []string{
			"/usr/share/fonts/truetype/noto/NotoSansMalayalam-Regular.ttf: Noto Sans Malayalam:style=Regular",
		},
		Matches: map[string]string{"Malayalam": "\"Noto Sans Malayalam\" \"Regular\""},
		Probes: []fontprobe.Result{
			{SetName: "malayalam", File: "NotoSansMalayalam-Regular.ttf", Path: "/usr/share/fonts/truetype/noto/NotoSansMalayalam-Regular.ttf", Found: true},
		},
	}
}

func TestRender_Success(t *testing.T) {
	output := Render(successResult(), []string{"Restart the application: streamlit run app.py"})

	assert.Contains(t, output, "Font Provisioning Report")
	assert.Contains(t, output, "run run-1 via apt")
	assert.Contains(t, output, "✅ install malayalam")
	assert.Contains(t, output, "Noto Sans Malayalam:style=Regular")
	assert.Contains(t, output, "Malayalam: \"Noto Sans Malayalam\"")
	assert.Contains(t, output, "Fonts installed successfully")
	assert.Contains(t, output, "1. Restart the application: streamlit run app.py")
}

func TestRender_Failure(t *testing.T) {
	result := successResult()
	result.Steps[1].Err = errors.New("exit status 100")

	output := Render(result, []string{"should not appear"})

	assert.Contains(t, output, "❌ install malayalam: exit status 100")
	assert.Contains(t, output, "1 steps failed")
	assert.NotContains(t, output, "should not appear")
}

func TestRender_DryRunShowsCommands(t *testing.T) {
	result := &provision.Result{
		RunID:   "run-2",
		Manager: "apt",
		DryRun:  true,
		Steps: []provision.StepResult{
			{Name: "update index", Command: "sudo apt-get update", Skipped: true},
		},
	}

	output := Render(result, nil)

	assert.Contains(t, output, "(dry run)")
	assert.Contains(t, output, "sudo apt-get update")
	assert.Contains(t, output, "update index (skipped)")
	// A dry run prints no next steps
	assert.NotContains(t, output, "Next steps")
}

func TestRender_MissingProbeWarning(t *testing.T) {
	result := successResult()
	result.Probes = append(result.Probes, fontprobe.Result{
		SetName: "devanagari", File: "NotoSansDevanagari-Regular.ttf",
	})

	output := Render(result, nil)
	assert.Contains(t, output, "NotoSansDevanagari-Regular.ttf not found")
}
