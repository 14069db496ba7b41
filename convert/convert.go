// Package convert runs one ARB → strings.xml conversion: read the bundle,
// render the whole document in memory, then write it in a single operation.
package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/minios-linux/arb2android/android"
	"github.com/minios-linux/arb2android/arbfile"
)

// Conventional locations of a Flutter project.
const (
	DefaultSource = "lib/l10n/app_en.arb"
	DefaultOutput = "android/app/src/main/res/values/strings.xml"
	// DefaultLocale is written to the unqualified values/ directory.
	DefaultLocale = "en"
)

// StdoutDestination is reported as Result.Destination in dry-run mode.
const StdoutDestination = "<stdout>"

// Options configures a conversion.
type Options struct {
	// Source is the ARB bundle path (default DefaultSource).
	Source string
	// Output is the strings.xml path. When empty and ResDir is set, the path
	// is derived from the bundle's @@locale; otherwise DefaultOutput.
	Output string
	// ResDir is an Android res/ directory used to derive Output.
	ResDir string
	// DefaultLocale maps to res/values/ (default DefaultLocale).
	DefaultLocale string
	// DryRun writes the document to Stdout instead of a file.
	DryRun bool
	// Stdout receives the document in dry-run mode (default os.Stdout).
	Stdout io.Writer
}

// Result describes a finished conversion.
type Result struct {
	// Destination is the written file, or StdoutDestination.
	Destination string
	// Locale is the bundle's @@locale value.
	Locale string
	// Resources is the number of rendered resources.
	Resources int
	// Bytes is the size of the written document.
	Bytes int
}

// Run performs the conversion described by opts. Nothing is written unless
// the complete document was generated.
func Run(opts Options) (*Result, error) {
	if opts.Source == "" {
		opts.Source = DefaultSource
	}
	if opts.DefaultLocale == "" {
		opts.DefaultLocale = DefaultLocale
	}

	bundle, err := arbfile.ParseFile(opts.Source)
	if err != nil {
		return nil, err
	}
	doc, err := android.Generate(bundle)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opts.Source, err)
	}

	res := &Result{
		Locale:    bundle.Locale(),
		Resources: len(bundle.ResourceIDs()),
		Bytes:     len(doc),
	}

	if opts.DryRun {
		w := opts.Stdout
		if w == nil {
			w = os.Stdout
		}
		if _, err := io.WriteString(w, doc); err != nil {
			return nil, fmt.Errorf("writing to stdout: %w", err)
		}
		res.Destination = StdoutDestination
		return res, nil
	}

	dest, err := destination(opts, bundle.Locale())
	if err != nil {
		return nil, err
	}
	if err := writeFile(dest, doc); err != nil {
		return nil, err
	}
	res.Destination = dest
	return res, nil
}

// Destination returns the file Run would write for a bundle with the given
// locale.
func Destination(opts Options, locale string) (string, error) {
	if opts.DefaultLocale == "" {
		opts.DefaultLocale = DefaultLocale
	}
	return destination(opts, locale)
}

func destination(opts Options, locale string) (string, error) {
	switch {
	case opts.Output != "":
		return opts.Output, nil
	case opts.ResDir != "":
		return android.StringsXMLPath(opts.ResDir, locale, opts.DefaultLocale)
	}
	return DefaultOutput, nil
}

func writeFile(path, doc string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
