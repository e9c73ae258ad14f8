// Package provision drives a ShipKit project from token entry to an
// installed project directory.
//
// A run is strictly sequential: token, naming, selection, retrieval,
// materialization and the optional install. Each stage either hands its
// output to the next or ends the run with a Result describing why.
package provision

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/shipkit/shipkit-cli/pkg/catalog"
	"github.com/shipkit/shipkit-cli/pkg/console"
	"github.com/shipkit/shipkit-cli/pkg/constants"
	"github.com/shipkit/shipkit-cli/pkg/credentials"
	"github.com/shipkit/shipkit-cli/pkg/fileutil"
	"github.com/shipkit/shipkit-cli/pkg/logger"
	"github.com/shipkit/shipkit-cli/pkg/stringutil"
)

var workflowLog = logger.New("provision:workflow")

var (
	// ErrNoToken means no valid token was available or entered.
	ErrNoToken = errors.New("no valid ShipKit token")
	// ErrDestinationExists means the project directory is already present.
	ErrDestinationExists = errors.New("destination already exists")
)

// Options tune a single run.
type Options struct {
	OutputDir   string
	Timeout     time.Duration
	DryRun      bool
	SkipInstall bool
}

// Deps are the collaborators a Workflow needs. Status and Stdout are
// optional.
type Deps struct {
	Prompter  Prompter
	Store     credentials.Store
	Builder   Builder
	Installer Installer
	Status    Status

	// Out receives user-facing messages.
	Out io.Writer
	// Stdout receives the request body in dry-run mode.
	Stdout io.Writer
}

// Workflow provisions one project.
type Workflow struct {
	deps Deps
	opts Options
}

// New returns a Workflow. OutputDir defaults to the current directory.
func New(deps Deps, opts Options) *Workflow {
	if deps.Status == nil {
		deps.Status = nopStatus{}
	}
	if deps.Out == nil {
		deps.Out = io.Discard
	}
	if deps.Stdout == nil {
		deps.Stdout = deps.Out
	}
	if opts.OutputDir == "" {
		opts.OutputDir = constants.DefaultOutputDir
	}
	return &Workflow{deps: deps, opts: opts}
}

// Run executes every stage in order and reports how the run ended.
func (w *Workflow) Run(ctx context.Context) Result {
	var res Result
	res.DryRun = w.opts.DryRun

	err := w.run(ctx, &res)
	if err != nil {
		res.Kind = classify(err)
		res.Err = err
		if res.Kind != KindCancelled {
			if !isReported(err) {
				fmt.Fprintln(w.deps.Out)
				fmt.Fprintln(w.deps.Out, console.FormatErrorMessage(err.Error()))
			}
			res.Reported = true
		}
		workflowLog.Printf("Run ended: kind=%s err=%v", res.Kind, err)
		return res
	}
	res.Kind = KindSuccess
	workflowLog.Printf("Run finished: project=%s dest=%s", res.Project, res.Destination)
	return res
}

func (w *Workflow) run(ctx context.Context, res *Result) error {
	var token string
	if !w.opts.DryRun {
		t, err := w.resolveToken(ctx)
		if err != nil {
			return err
		}
		token = t
	}

	name, dest, archive, err := w.chooseDestination()
	if err != nil {
		return err
	}
	res.Project, res.Destination = name, dest

	sel, err := w.selectKit()
	if err != nil {
		return err
	}
	res.Selection = &sel

	if w.opts.DryRun {
		body, err := sel.MarshalIndentedJSON()
		if err != nil {
			return withKind(KindPrecondition, err)
		}
		_, err = w.deps.Stdout.Write(body)
		return err
	}

	if err := fileutil.EnsureDir(w.opts.OutputDir); err != nil {
		return withKind(KindPrecondition, fmt.Errorf("output directory: %w", err))
	}

	size, err := w.retrieve(ctx, token, sel, archive)
	if err != nil {
		return err
	}
	res.ArchiveSize = size

	if err := w.materialize(dest, archive); err != nil {
		return err
	}

	installed, err := w.install(ctx, dest, sel.Manager)
	if err != nil {
		return err
	}
	res.Installed = installed

	w.printNextSteps(name, dest, sel.Manager, installed)
	return nil
}

func (w *Workflow) checkToken(ctx context.Context, token string) bool {
	w.deps.Status.Start("Checking token...")
	defer w.deps.Status.Stop()
	return w.deps.Builder.IsValidToken(ctx, token)
}

// resolveToken offers the stored token when it is still valid and otherwise
// asks for a new one, persisting it once the service accepts it.
func (w *Workflow) resolveToken(ctx context.Context) (string, error) {
	if stored, ok := w.deps.Store.Get(); ok {
		if w.checkToken(ctx, stored) {
			reuse, err := w.deps.Prompter.Confirm("Use your saved ShipKit token?")
			if err != nil {
				return "", err
			}
			if reuse {
				workflowLog.Print("Reusing stored token")
				return stored, nil
			}
		} else {
			workflowLog.Print("Stored token is no longer valid")
		}
	}

	token, err := w.deps.Prompter.Secret("Enter your ShipKit token")
	if err != nil {
		return "", err
	}
	if !w.checkToken(ctx, token) {
		fmt.Fprintln(w.deps.Out)
		fmt.Fprintln(w.deps.Out, console.FormatErrorMessage("Invalid token"))
		return "", reportedKind(KindAuth, ErrNoToken)
	}

	if err := w.deps.Store.Set(token); err != nil {
		fmt.Fprintln(w.deps.Out, console.FormatWarningMessage(fmt.Sprintf("Could not save token: %v", err)))
	}
	return token, nil
}

// chooseDestination asks for the project name and fails when its directory
// already exists. Nothing on disk is touched.
func (w *Workflow) chooseDestination() (name, dest, archive string, err error) {
	name, err = w.deps.Prompter.Input("What's the name of your project?", constants.DefaultProjectName, stringutil.ValidateProjectName)
	if err != nil {
		return "", "", "", err
	}
	if err := stringutil.ValidateProjectName(name); err != nil {
		return "", "", "", withKind(KindPrecondition, err)
	}
	name = stringutil.NormalizeProjectName(name)
	dest, archive = stringutil.ProjectPaths(w.opts.OutputDir, name)

	if fileutil.Exists(dest) {
		fmt.Fprintln(w.deps.Out)
		fmt.Fprintln(w.deps.Out, console.FormatErrorMessage("Folder already exists"))
		return "", "", "", reportedKind(KindPrecondition, fmt.Errorf("%w: %s", ErrDestinationExists, dest))
	}
	workflowLog.Printf("Destination %s, archive %s", dest, archive)
	return name, dest, archive, nil
}

func choices(entries []catalog.Entry) []Choice {
	out := make([]Choice, 0, len(entries))
	for _, e := range entries {
		out = append(out, Choice{Label: e.Label, Value: e.Value})
	}
	return out
}

// selectKit walks the dependent choices: frameworks depend on the base,
// databases on the ORM and auth availability on the framework.
func (w *Workflow) selectKit() (Selection, error) {
	var sel Selection
	var err error
	p := w.deps.Prompter

	if sel.BaseFramework, err = p.Select("Select a base framework", choices(catalog.BaseFrameworks())); err != nil {
		return sel, err
	}

	frameworks, err := catalog.Frameworks(sel.BaseFramework)
	if err != nil {
		return sel, withKind(KindPrecondition, err)
	}
	if len(frameworks) == 1 {
		sel.Framework = frameworks[0].Value
		workflowLog.Printf("Framework defaulted to %s for %s", sel.Framework, sel.BaseFramework)
	} else if sel.Framework, err = p.Select("Select a framework", choices(frameworks)); err != nil {
		return sel, err
	}

	if sel.ORM, err = p.Select("Select an ORM", choices(catalog.ORMs())); err != nil {
		return sel, err
	}

	databases, err := catalog.Databases(sel.ORM)
	if err != nil {
		return sel, withKind(KindPrecondition, err)
	}
	if sel.Database, err = p.Select("Select a database", choices(databases)); err != nil {
		return sel, err
	}

	if sel.Auth, err = w.selectAuth(sel.Framework); err != nil {
		return sel, err
	}

	if sel.Output, err = p.Select("Select an output target", choices(catalog.Outputs())); err != nil {
		return sel, err
	}
	if sel.Manager, err = p.Select("Select a package manager", choices(catalog.Managers())); err != nil {
		return sel, err
	}

	if err := sel.Validate(); err != nil {
		return sel, withKind(KindPrecondition, err)
	}
	workflowLog.Printf("Selection: %+v", sel)
	return sel, nil
}

// selectAuth keeps asking until an auth provider usable with framework is
// picked.
func (w *Workflow) selectAuth(framework string) (string, error) {
	providers := catalog.AuthProviders(framework)
	opts := make([]Choice, 0, len(providers))
	for _, a := range providers {
		opts = append(opts, Choice{Label: a.Label, Value: a.Value, Disabled: !a.Available, Hint: a.Reason})
	}

	for {
		auth, err := w.deps.Prompter.Select("Select an auth provider", opts)
		if err != nil {
			return "", err
		}
		if catalog.AuthAvailable(auth, framework) {
			return auth, nil
		}
		fmt.Fprintln(w.deps.Out, console.FormatWarningMessage(
			fmt.Sprintf("%s is not available with %s", catalog.Label(auth), catalog.Label(framework))))
	}
}

// retrieve downloads the kit archive. The partial archive never outlives a
// failed transfer.
func (w *Workflow) retrieve(ctx context.Context, token string, sel Selection, archive string) (int64, error) {
	dlCtx, cancel := ctx, context.CancelFunc(func() {})
	if w.opts.Timeout > 0 {
		dlCtx, cancel = context.WithTimeout(ctx, w.opts.Timeout)
	}
	defer cancel()

	w.deps.Status.Start("Downloading kit...")
	size, err := w.deps.Builder.DownloadArchive(dlCtx, token, sel, archive)
	w.deps.Status.Stop()
	if err == nil {
		workflowLog.Printf("Downloaded %d bytes to %s", size, archive)
		return size, nil
	}

	if rmErr := fileutil.RemoveFile(archive); rmErr != nil {
		workflowLog.Printf("Failed to remove partial archive: %v", rmErr)
	}

	switch {
	case ctx.Err() != nil:
		return 0, fmt.Errorf("%w: %w", ErrCancelled, err)
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintln(w.deps.Out, console.FormatErrorMessage(
			fmt.Sprintf("Download timed out after %s", w.opts.Timeout)))
		return 0, reportedKind(KindTimeout, fmt.Errorf("download timed out: %w", err))
	default:
		fmt.Fprintln(w.deps.Out, console.FormatErrorMessage(fmt.Sprintf("Download failed: %v", err)))
		return 0, reportedKind(KindTransport, fmt.Errorf("download failed: %w", err))
	}
}

// materialize replaces any stale destination with the archive's contents and
// deletes the archive.
func (w *Workflow) materialize(dest, archive string) error {
	w.deps.Status.Start("Extracting kit...")
	defer w.deps.Status.Stop()

	if err := fileutil.RemoveDir(dest); err != nil {
		return withKind(KindExtraction, err)
	}
	if err := fileutil.Unzip(archive, dest); err != nil {
		_ = fileutil.RemoveDir(dest)
		_ = fileutil.RemoveFile(archive)
		w.deps.Status.Stop()
		fmt.Fprintln(w.deps.Out, console.FormatErrorMessage(fmt.Sprintf("Could not extract the kit: %v", err)))
		return reportedKind(KindExtraction, err)
	}

	w.deps.Status.Update("Cleaning kit...")
	if err := fileutil.RemoveFile(archive); err != nil {
		return withKind(KindExtraction, fmt.Errorf("remove archive: %w", err))
	}
	return nil
}

// install runs the package manager when the user opts in.
func (w *Workflow) install(ctx context.Context, dest, manager string) (bool, error) {
	if w.opts.SkipInstall {
		workflowLog.Print("Install skipped by option")
		return false, nil
	}
	ok, err := w.deps.Prompter.Confirm("Install dependencies?")
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	fmt.Fprintln(w.deps.Out)
	fmt.Fprintln(w.deps.Out, console.FormatInfoMessage("Installing dependencies with "+manager))
	fmt.Fprintln(w.deps.Out)
	if err := w.deps.Installer.Run(ctx, dest, manager); err != nil {
		if ctx.Err() != nil {
			return false, fmt.Errorf("%w: %w", ErrCancelled, err)
		}
		fmt.Fprintln(w.deps.Out, console.FormatErrorMessage(fmt.Sprintf("Dependency install failed: %v", err)))
		return false, reportedKind(KindInstall, err)
	}
	return true, nil
}

type packageManifest struct {
	Scripts map[string]string `json:"scripts"`
}

func (w *Workflow) printNextSteps(name, dest, manager string, installed bool) {
	out := w.deps.Out
	fmt.Fprintln(out)
	fmt.Fprintln(out, console.FormatSuccessMessage("Build something amazing!"))

	var steps []string
	steps = append(steps, "cd "+name)
	if !installed {
		if cmd, ok := catalog.InstallCommand(manager); ok {
			steps = append(steps, cmd)
		}
	}
	var manifest packageManifest
	if err := fileutil.ReadJSON(filepath.Join(dest, "package.json"), &manifest); err == nil {
		if _, ok := manifest.Scripts["dev"]; ok {
			steps = append(steps, manager+" run dev")
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	for _, s := range steps {
		fmt.Fprintln(out, "  "+console.FormatCommandMessage(s))
	}
}
