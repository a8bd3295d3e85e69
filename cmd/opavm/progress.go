package main

import (
	"fmt"
	"io"
	"os"

	"opavm/internal/catalog"
	"opavm/internal/installer"
)

// installReporter renders install lifecycle updates to the terminal. On a
// TTY the download progress rewrites a single line in place; otherwise each
// phase is printed once.
type installReporter struct {
	w       io.Writer
	tty     bool
	display string
	lineUp  bool
}

func newInstallReporter(w io.Writer, spec catalog.ToolSpec) *installReporter {
	tty := false
	if f, ok := w.(*os.File); ok {
		if info, err := f.Stat(); err == nil {
			tty = info.Mode()&os.ModeCharDevice != 0
		}
	}
	return &installReporter{w: w, tty: tty, display: spec.DisplayName}
}

func (r *installReporter) status(status installer.Status) {
	switch status {
	case installer.StatusResolving:
		r.println("Resolving " + r.display + " release metadata...")
	case installer.StatusAlreadyInstalled:
		r.println(warnStyle.Render("Version already installed."))
	case installer.StatusDownloading:
		r.println("Downloading " + r.display + " binary...")
	case installer.StatusVerifyingChecksum:
		r.println("Verifying " + r.display + " checksum...")
	case installer.StatusVerifyingSignature:
		r.println("Verifying " + r.display + " signature...")
	case installer.StatusVerifying:
		r.println("Verifying " + r.display + " binary...")
	case installer.StatusDone:
		r.println(successStyle.Render("Install complete."))
	}
}

func (r *installReporter) progress(total, downloaded int64) {
	if !r.tty {
		return
	}
	if total > 0 {
		fmt.Fprintf(r.w, "\r\033[K  %s / %s", formatBytes(downloaded), formatBytes(total))
	} else {
		fmt.Fprintf(r.w, "\r\033[K  %s", formatBytes(downloaded))
	}
	r.lineUp = true
}

// println clears any in-place progress line before printing a phase message.
func (r *installReporter) println(msg string) {
	if r.lineUp {
		fmt.Fprintf(r.w, "\r\033[K")
		r.lineUp = false
	}
	fmt.Fprintln(r.w, msg)
}

func formatBytes(n int64) string {
	const (
		kib = 1024
		mib = 1024 * kib
	)
	switch {
	case n >= mib:
		return fmt.Sprintf("%.1f MiB", float64(n)/float64(mib))
	case n >= kib:
		return fmt.Sprintf("%.1f KiB", float64(n)/float64(kib))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
