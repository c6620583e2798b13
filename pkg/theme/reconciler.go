package theme

import (
	"fmt"
	"os"
	"regexp"

	"github.com/stimulo/canvasctl/pkg/browser"
	"github.com/stimulo/canvasctl/pkg/logging"
)

// Stage identifies where in the reconcile sequence a failure occurred.
type Stage string

const (
	StageLookup Stage = "lookup"
	StageCreate Stage = "create"
	StageEdit   Stage = "edit"
	StageUpload Stage = "upload"
	StageSave   Stage = "save"
	StageApply  Stage = "apply"
)

// Outcome reports what a successful reconcile did.
type Outcome string

const (
	// OutcomeCreated means the theme did not exist and was created.
	OutcomeCreated Outcome = "created"

	// OutcomeUpdated means an existing theme was edited in place.
	OutcomeUpdated Outcome = "updated"
)

// ReconcileError is a reconcile failure tagged with its stage. A failure in
// StageApply means the theme exists in a saved-but-inactive state remotely.
type ReconcileError struct {
	Stage Stage
	Err   error
}

func (e *ReconcileError) Error() string {
	return fmt.Sprintf("reconcile failed at %s: %v", e.Stage, e.Err)
}

func (e *ReconcileError) Unwrap() error {
	return e.Err
}

// AssetRole names a theme asset slot in the Theme Editor.
type AssetRole string

const (
	RoleStylesheet AssetRole = "stylesheet"
	RoleScript     AssetRole = "script"
	RoleLogo       AssetRole = "logo"
	RoleFavicon    AssetRole = "favicon"
)

// roleOrder fixes the upload order. Roles absent from a target are skipped.
var roleOrder = []AssetRole{RoleStylesheet, RoleScript, RoleLogo, RoleFavicon}

// Theme Editor controls are located by accessible name, matched
// case-insensitively as a substring. The listing lookup, by contrast, is a
// case-sensitive exact text match.
var (
	editButton   = regexp.MustCompile(`(?i)Edit`)
	createButton = regexp.MustCompile(`(?i)Create theme`)
	themeNameBox = regexp.MustCompile(`(?i)Theme name`)
	saveButton   = regexp.MustCompile(`(?i)Save theme`)
	applyButton  = regexp.MustCompile(`(?i)Apply theme`)

	uploadLabels = map[AssetRole]*regexp.Regexp{
		RoleStylesheet: regexp.MustCompile(`(?i)Upload CSS`),
		RoleScript:     regexp.MustCompile(`(?i)Upload JavaScript`),
		RoleLogo:       regexp.MustCompile(`(?i)Logo`),
		RoleFavicon:    regexp.MustCompile(`(?i)Favicon`),
	}
)

// Target describes the desired theme: its name and the local files backing
// each asset role. Roles may be absent; absent or missing files are skipped,
// never errors.
type Target struct {
	Name   string
	Assets map[AssetRole]string
}

// Reconciler drives the Theme Editor through an authenticated page.
type Reconciler struct {
	page browser.Page
	log  *logging.Logger
}

// NewReconciler creates a reconciler. The page must carry a verified
// form-login session; bearer tokens do not open the Theme Editor.
func NewReconciler(page browser.Page) *Reconciler {
	log, _ := logging.NewLogger("theme")
	return &Reconciler{page: page, log: log}
}

// Reconcile makes the remote theme match target and returns whether it was
// created or updated.
//
// Lookup is first-visible-match: when several themes share a label, the
// first one in listing order wins. That precedence is inherited from the
// Theme Editor listing and is deterministic only for a fixed listing order.
//
// Reconcile never retries: a retry against a stateful UI risks duplicate
// theme creation, so every failure surfaces immediately with its stage.
func (r *Reconciler) Reconcile(target Target, baseURL, accountID string) (Outcome, error) {
	listing := fmt.Sprintf("%s/accounts/%s/themes", baseURL, accountID)
	if err := r.page.Navigate(listing); err != nil {
		return "", &ReconcileError{Stage: StageLookup, Err: err}
	}

	exists, err := r.page.HasVisibleText(target.Name)
	if err != nil {
		return "", &ReconcileError{Stage: StageLookup, Err: err}
	}

	outcome := OutcomeCreated
	if exists {
		outcome = OutcomeUpdated
		r.log.Infof("theme %q found, editing in place", target.Name)
		if err := r.page.ClickLink(target.Name); err != nil {
			return "", &ReconcileError{Stage: StageEdit, Err: err}
		}
		if err := r.page.ClickButton(editButton); err != nil {
			return "", &ReconcileError{Stage: StageEdit, Err: err}
		}
	} else {
		r.log.Infof("theme %q not found, creating", target.Name)
		if err := r.page.ClickButton(createButton); err != nil {
			return "", &ReconcileError{Stage: StageCreate, Err: err}
		}
		if err := r.page.FillLabel(themeNameBox, target.Name); err != nil {
			return "", &ReconcileError{Stage: StageCreate, Err: err}
		}
	}

	if err := r.uploadAssets(target); err != nil {
		return "", &ReconcileError{Stage: StageUpload, Err: err}
	}

	// Two-phase commit: save persists the draft, apply activates it. A
	// failed apply leaves the saved draft in place remotely.
	if err := r.page.ClickButton(saveButton); err != nil {
		return "", &ReconcileError{Stage: StageSave, Err: err}
	}
	if err := r.page.ClickButton(applyButton); err != nil {
		return "", &ReconcileError{Stage: StageApply, Err: err}
	}

	r.log.Infof("theme %q %s and applied", target.Name, outcome)
	return outcome, nil
}

// uploadAssets attaches each present asset file in fixed role order. A role
// with no entry or a file that does not exist locally is skipped; any attach
// failure aborts the whole reconcile.
func (r *Reconciler) uploadAssets(target Target) error {
	for _, role := range roleOrder {
		path, ok := target.Assets[role]
		if !ok {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			r.log.Debugf("skipping %s: %s not present locally", role, path)
			continue
		}
		if err := r.page.SetInputFiles(uploadLabels[role], path); err != nil {
			return fmt.Errorf("%s: %w", role, err)
		}
	}
	return nil
}
