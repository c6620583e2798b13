package theme

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stimulo/canvasctl/pkg/browser/browsertest"
)

const (
	baseURL   = "http://localhost:3000"
	accountID = "1"
)

// writeAssets creates dummy asset files for the named roles and returns the
// role -> path mapping.
func writeAssets(t *testing.T, roles ...AssetRole) map[AssetRole]string {
	t.Helper()
	dir := t.TempDir()
	files := map[AssetRole]string{
		RoleStylesheet: "stimulo.css",
		RoleScript:     "stimulo.js",
		RoleLogo:       "logo.png",
		RoleFavicon:    "favicon.ico",
	}

	assets := make(map[AssetRole]string)
	for _, role := range roles {
		path := filepath.Join(dir, files[role])
		require.NoError(t, os.WriteFile(path, []byte(string(role)), 0600))
		assets[role] = path
	}
	return assets
}

func TestReconcileCreatesMissingTheme(t *testing.T) {
	page := &browsertest.FakePage{}
	assets := writeAssets(t, RoleStylesheet, RoleScript)

	outcome, err := NewReconciler(page).Reconcile(Target{Name: "Stimulo", Assets: assets}, baseURL, accountID)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, outcome)

	assert.Equal(t, []string{
		"navigate:" + baseURL + "/accounts/1/themes",
		"has-text:Stimulo",
		"click-button:(?i)Create theme",
		"fill-label:(?i)Theme name",
		"set-files:(?i)Upload CSS",
		"set-files:(?i)Upload JavaScript",
		"click-button:(?i)Save theme",
		"click-button:(?i)Apply theme",
	}, page.Calls)
	assert.Equal(t, "Stimulo", page.Fills["(?i)Theme name"])
}

func TestReconcileEditsExistingTheme(t *testing.T) {
	page := &browsertest.FakePage{VisibleText: map[string]bool{"Stimulo": true}}
	assets := writeAssets(t, RoleStylesheet)

	outcome, err := NewReconciler(page).Reconcile(Target{Name: "Stimulo", Assets: assets}, baseURL, accountID)
	require.NoError(t, err)
	assert.Equal(t, OutcomeUpdated, outcome)

	assert.Contains(t, page.Calls, "click-link:Stimulo")
	assert.Contains(t, page.Calls, "click-button:(?i)Edit")
	assert.NotContains(t, page.Calls, "click-button:(?i)Create theme")
}

func TestReconcileIsIdempotentOnIdentity(t *testing.T) {
	// First run creates; the listing then shows the theme, so the second
	// run must edit in place rather than create a duplicate.
	page := &browsertest.FakePage{VisibleText: map[string]bool{}}
	assets := writeAssets(t, RoleStylesheet)
	target := Target{Name: "Stimulo", Assets: assets}
	r := NewReconciler(page)

	first, err := r.Reconcile(target, baseURL, accountID)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, first)

	page.VisibleText["Stimulo"] = true

	second, err := r.Reconcile(target, baseURL, accountID)
	require.NoError(t, err)
	assert.Equal(t, OutcomeUpdated, second)
}

func TestReconcileSkipsAbsentAssetRoles(t *testing.T) {
	page := &browsertest.FakePage{}
	assets := writeAssets(t, RoleStylesheet, RoleScript, RoleLogo) // no favicon

	_, err := NewReconciler(page).Reconcile(Target{Name: "Stimulo", Assets: assets}, baseURL, accountID)
	require.NoError(t, err)

	assert.NotContains(t, page.Calls, "set-files:(?i)Favicon")
}

func TestReconcileSkipsMissingFiles(t *testing.T) {
	page := &browsertest.FakePage{}
	assets := writeAssets(t, RoleStylesheet)
	assets[RoleLogo] = filepath.Join(t.TempDir(), "never-built.png")

	_, err := NewReconciler(page).Reconcile(Target{Name: "Stimulo", Assets: assets}, baseURL, accountID)
	require.NoError(t, err)

	assert.Contains(t, page.Calls, "set-files:(?i)Upload CSS")
	assert.NotContains(t, page.Calls, "set-files:(?i)Logo")
}

func TestReconcileStageFailures(t *testing.T) {
	assets := writeAssets(t, RoleStylesheet)

	tests := []struct {
		name      string
		errors    map[string]error
		visible   bool
		wantStage Stage
	}{
		{
			name:      "unreachable listing",
			errors:    map[string]error{"navigate:" + baseURL + "/accounts/1/themes": errors.New("net::ERR_CONNECTION_REFUSED")},
			wantStage: StageLookup,
		},
		{
			name:      "create control missing",
			errors:    map[string]error{"click-button:(?i)Create theme": errors.New("timeout waiting for element")},
			wantStage: StageCreate,
		},
		{
			name:      "edit control missing",
			errors:    map[string]error{"click-button:(?i)Edit": errors.New("timeout waiting for element")},
			visible:   true,
			wantStage: StageEdit,
		},
		{
			name:      "asset attach fails",
			errors:    map[string]error{"set-files:(?i)Upload CSS": errors.New("input detached")},
			wantStage: StageUpload,
		},
		{
			name:      "save fails",
			errors:    map[string]error{"click-button:(?i)Save theme": errors.New("timeout")},
			wantStage: StageSave,
		},
		{
			name:      "apply fails after save",
			errors:    map[string]error{"click-button:(?i)Apply theme": errors.New("timeout")},
			wantStage: StageApply,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := &browsertest.FakePage{Errors: tt.errors}
			if tt.visible {
				page.VisibleText = map[string]bool{"Stimulo": true}
			}

			_, err := NewReconciler(page).Reconcile(Target{Name: "Stimulo", Assets: assets}, baseURL, accountID)

			var rerr *ReconcileError
			require.ErrorAs(t, err, &rerr)
			assert.Equal(t, tt.wantStage, rerr.Stage)
		})
	}
}

func TestReconcilePartialCommitLeavesSavedTheme(t *testing.T) {
	// Save succeeds, apply times out. The outcome is failed(apply), and a
	// subsequent lookup still finds the theme in its saved state.
	page := &browsertest.FakePage{
		VisibleText: map[string]bool{},
		Errors:      map[string]error{"click-button:(?i)Apply theme": errors.New("timeout")},
	}
	assets := writeAssets(t, RoleStylesheet)
	target := Target{Name: "Stimulo", Assets: assets}
	r := NewReconciler(page)

	_, err := r.Reconcile(target, baseURL, accountID)
	var rerr *ReconcileError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, StageApply, rerr.Stage)
	assert.Contains(t, page.Calls, "click-button:(?i)Save theme")

	// The saved draft now exists remotely.
	page.VisibleText["Stimulo"] = true
	page.Errors = nil

	outcome, err := r.Reconcile(target, baseURL, accountID)
	require.NoError(t, err)
	assert.Equal(t, OutcomeUpdated, outcome)
}

func TestReconcileLookupIsCaseSensitive(t *testing.T) {
	// "stimulo" in the listing is not "Stimulo": the lookup must miss and
	// take the create path.
	page := &browsertest.FakePage{VisibleText: map[string]bool{"stimulo": true}}
	assets := writeAssets(t, RoleStylesheet)

	outcome, err := NewReconciler(page).Reconcile(Target{Name: "Stimulo", Assets: assets}, baseURL, accountID)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, outcome)
}

func TestReconcileFirstMatchLookupIsDeterministic(t *testing.T) {
	// Duplicate labels in the listing are not disambiguated: the first
	// visible match wins, and for a fixed listing order the reconciler
	// always takes the same path.
	for i := 0; i < 3; i++ {
		page := &browsertest.FakePage{VisibleText: map[string]bool{"Stimulo": true}}
		assets := writeAssets(t, RoleStylesheet)

		outcome, err := NewReconciler(page).Reconcile(Target{Name: "Stimulo", Assets: assets}, baseURL, accountID)
		require.NoError(t, err)
		assert.Equal(t, OutcomeUpdated, outcome)
		assert.Equal(t, "click-link:Stimulo", page.Calls[2])
	}
}
