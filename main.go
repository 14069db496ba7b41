// arb2android — generate Android strings.xml from a Flutter ARB bundle.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/minios-linux/arb2android/config"
	"github.com/minios-linux/arb2android/convert"
	"github.com/minios-linux/arb2android/i18n"
	"github.com/spf13/cobra"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

// logOut receives all log lines; the document itself only ever goes to stdout.
var logOut io.Writer = os.Stderr

// verbose enables [INFO] lines.
var verbose bool

func logInfo(format string, args ...any) {
	if !verbose {
		return
	}
	fmt.Fprintf(logOut, colorBlue+"[INFO]"+colorReset+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(logOut, colorGreen+"[OK]"+colorReset+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(logOut, colorYellow+"[WARN]"+colorReset+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(logOut, colorRed+"[ERROR]"+colorReset+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Root command (generate)
// ---------------------------------------------------------------------------

// flagValues holds the command-line overrides of one invocation.
type flagValues struct {
	root   string
	source string
	output string
	resDir string
	locale string
	dryRun bool
}

func newRootCmd() *cobra.Command {
	var fv flagValues

	root := &cobra.Command{
		Use:   "arb2android",
		Short: i18n.T("Generate Android strings.xml from a Flutter ARB bundle"),
		Long: i18n.T(`arb2android — generate Android strings.xml from a Flutter ARB bundle.

Every "@id" metadata entry of the bundle becomes one resource:
  plural    <plurals> built from idZero/idOne/idTwo/idFew/idMany/idOther
  parameters <string> with $name replaced by %1$s, %2$s, ...
  otherwise <string> copied verbatim

The document is generated completely before anything is written; a single
inconsistent entry fails the whole run.

Configuration (lowest to highest priority):
  .arb2android.yaml   source, output, res_dir, default_locale
  .env / environment  ARB2ANDROID_SOURCE, ARB2ANDROID_OUTPUT,
                      ARB2ANDROID_RES_DIR, ARB2ANDROID_DEFAULT_LOCALE
  flags`),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.OutOrStdout(), fv)
		},
	}

	root.PersistentFlags().StringVar(&fv.root, "root", ".", i18n.T("Project root directory"))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, i18n.T("Enable detailed logging"))
	root.Flags().StringVarP(&fv.source, "source", "s", "", i18n.Tf("ARB bundle (default %s)", convert.DefaultSource))
	root.Flags().StringVarP(&fv.output, "output", "o", "", i18n.Tf("Output strings.xml (default %s)", convert.DefaultOutput))
	root.Flags().StringVar(&fv.resDir, "res-dir", "", i18n.T("Android res/ directory; output goes to the values-* directory of the bundle locale"))
	root.Flags().StringVar(&fv.locale, "default-locale", "", i18n.Tf("Locale written to res/values/ (default %s)", convert.DefaultLocale))
	root.Flags().BoolVarP(&fv.dryRun, "dry-run", "n", false, i18n.T("Print the document to stdout instead of writing it"))

	root.AddCommand(newVersionCmd())

	return root
}

func runGenerate(stdout io.Writer, fv flagValues) error {
	rootDir, err := filepath.Abs(fv.root)
	if err != nil {
		return err
	}

	settings, err := config.Load(rootDir)
	if err != nil {
		return err
	}
	settings.Override(config.Settings{
		Source:        fv.source,
		Output:        fv.output,
		ResDir:        fv.resDir,
		DefaultLocale: fv.locale,
	})
	if settings.Source == "" {
		settings.Source = convert.DefaultSource
	}
	if settings.Output != "" && settings.ResDir != "" {
		logWarning(i18n.T("Both output and res-dir are set; res-dir is ignored"))
	}
	settings.ResolvePaths(rootDir)

	logInfo(i18n.T("Reading %s"), settings.Source)
	opts := convert.Options{
		Source:        settings.Source,
		Output:        settings.Output,
		ResDir:        settings.ResDir,
		DefaultLocale: settings.DefaultLocale,
		DryRun:        fv.dryRun,
		Stdout:        stdout,
	}
	if opts.Output == "" && opts.ResDir == "" {
		opts.Output = filepath.Join(rootDir, convert.DefaultOutput)
	}

	res, err := convert.Run(opts)
	if err != nil {
		return err
	}

	if res.Locale != "" {
		logInfo(i18n.T("Bundle locale: %s"), res.Locale)
	}
	logInfo(i18n.T("Generated %d bytes"), res.Bytes)
	if res.Resources == 0 {
		logWarning(i18n.T("Bundle has no metadata entries; the document is empty"))
	}
	if fv.dryRun {
		logSuccess(i18n.T("Dry run: document written to stdout"))
		return nil
	}
	logSuccess(i18n.N("%d resource written to %s", "%d resources written to %s", res.Resources), res.Resources, displayPath(rootDir, res.Destination))
	return nil
}

// displayPath shortens path relative to rootDir when it lies inside it.
func displayPath(rootDir, path string) string {
	rel, err := filepath.Rel(rootDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func main() {
	i18n.Init("")
	if err := newRootCmd().Execute(); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// version (display version information)
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: i18n.T("Show version information"),
		Long:  i18n.T(`Display version, commit hash, and build date.`),
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "arb2android version %s\n", version)
			fmt.Fprintf(out, "  commit:    %s\n", commit)
			fmt.Fprintf(out, "  built:     %s\n", date)
		},
	}

	return cmd
}
