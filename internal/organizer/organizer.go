// Package organizer drives classification runs: it walks a source tree,
// classifies each filename against the keyword catalog, fans out copies into
// per-framework folders, journals every action, and annotates outcomes in the
// note service. Processing is sequential, one file at a time.
package organizer

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/complysort/complysort/internal/catalog"
	"github.com/complysort/complysort/internal/journal"
	"github.com/complysort/complysort/internal/logger"
	"github.com/complysort/complysort/internal/metrics"
)

// Annotator is the note-service boundary. Implementations create a note per
// classified file and attach framework or status tags to it.
type Annotator interface {
	CreateNote(ctx context.Context, title, body string) (string, error)
	CreateTag(ctx context.Context, name string) (string, error)
	AddTagToNote(ctx context.Context, tagID, noteID string) error
}

// Outcome reports one journaled action to the observer, if any.
type Outcome struct {
	Action    journal.Action
	Framework string
	Src       string
	Dest      string
	NoteID    string
	Err       error
}

// Summary aggregates counters for one classification run.
type Summary struct {
	Processed int
	Matched   int
	Copies    int
	Unmatched int
	Failures  int
}

// Organizer wires the catalog, journal, and annotator together for one run.
type Organizer struct {
	catalog   *catalog.Catalog
	journal   *journal.Writer
	annotator Annotator
	destRoot  string
	log       *logrus.Entry

	// Observer receives every outcome as it happens; used to persist
	// classification records. Optional.
	Observer func(Outcome)
}

// New creates an organizer. The annotator may be nil, which disables
// annotation entirely (e.g. when no Joplin token is configured).
func New(cat *catalog.Catalog, jw *journal.Writer, annotator Annotator, destRoot string) *Organizer {
	return &Organizer{
		catalog:   cat,
		journal:   jw,
		annotator: annotator,
		destRoot:  destRoot,
		log:       logger.WithComponent("organizer"),
	}
}

// Walk processes every regular file under sourceRoot in directory order. A
// file that fails to process is reported and skipped; the walk continues.
// Journal write errors abort the run, since without a rollback trail the
// copies already made could not be undone.
func (o *Organizer) Walk(ctx context.Context, sourceRoot string) (Summary, error) {
	var sum Summary

	if _, err := os.Stat(sourceRoot); err != nil {
		return sum, fmt.Errorf("source root: %w", err)
	}

	err := filepath.WalkDir(sourceRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			o.log.WithField("path", path).WithError(err).Warn("skipping unreadable entry")
			sum.Failures++
			return nil
		}
		if d.IsDir() {
			return nil
		}

		fileSum, err := o.ProcessFile(ctx, path)
		sum.Processed += fileSum.Processed
		sum.Matched += fileSum.Matched
		sum.Copies += fileSum.Copies
		sum.Unmatched += fileSum.Unmatched
		sum.Failures += fileSum.Failures
		if err != nil {
			// Journal failures are the only fatal per-file errors.
			return fmt.Errorf("process %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return sum, err
	}

	return sum, nil
}

// ProcessFile classifies a single file and performs the copy, journal, and
// annotation steps for it. The returned error is non-nil only for journal
// write failures; copy and annotation problems are counted in the summary.
func (o *Organizer) ProcessFile(ctx context.Context, path string) (Summary, error) {
	var sum Summary
	sum.Processed = 1
	metrics.IncFileProcessed()

	matched := o.catalog.Classify(filepath.Base(path))
	if len(matched) == 0 {
		sum.Unmatched = 1
		metrics.IncUnmatched()

		// Unmatched files stay in place; the LEAVE entry records src == dest
		// and the Unclassified tag marks the note.
		if err := o.journal.Record(journal.ActionLeave, path, path); err != nil {
			return sum, err
		}
		noteID := o.annotate(ctx, path, []string{"status:unclassified"})
		o.observe(Outcome{Action: journal.ActionLeave, Src: path, Dest: path, NoteID: noteID})
		return sum, nil
	}

	sum.Matched = 1
	for _, outcome := range fanoutCopy(o.destRoot, path, matched) {
		if outcome.Err != nil {
			// One framework failing must not stop the others; record and
			// move on.
			o.log.WithFields(logrus.Fields{
				"framework": outcome.Framework,
				"src":       path,
			}).WithError(outcome.Err).Error("framework copy failed")
			sum.Failures++
			metrics.IncCopyFailure()
			o.observe(Outcome{
				Action:    journal.ActionCopy,
				Framework: outcome.Framework,
				Src:       path,
				Dest:      outcome.Dest,
				Err:       outcome.Err,
			})
			continue
		}

		sum.Copies++
		metrics.IncCopy()

		if err := o.journal.Record(journal.ActionCopy, path, outcome.Dest); err != nil {
			return sum, err
		}
		noteID := o.annotate(ctx, path, []string{"framework:" + outcome.Framework})
		o.observe(Outcome{
			Action:    journal.ActionCopy,
			Framework: outcome.Framework,
			Src:       path,
			Dest:      outcome.Dest,
			NoteID:    noteID,
		})
	}

	return sum, nil
}

// annotate creates the linked note and attaches tags. Annotation is
// best-effort: failures are logged and counted but never affect the
// filesystem outcome already committed.
func (o *Organizer) annotate(ctx context.Context, path string, tags []string) string {
	if o.annotator == nil {
		return ""
	}

	title := filepath.Base(path)
	body := fmt.Sprintf("File: %s\nLocated in: %s", path, filepath.Dir(path))

	noteID, err := o.annotator.CreateNote(ctx, title, body)
	if err != nil {
		o.log.WithField("file", path).WithError(err).Warn("note creation failed")
		metrics.IncAnnotateFailure()
		return ""
	}

	for _, t := range tags {
		tagID, err := o.annotator.CreateTag(ctx, t)
		if err != nil {
			o.log.WithField("tag", t).WithError(err).Warn("tag creation failed")
			metrics.IncAnnotateFailure()
			continue
		}
		if err := o.annotator.AddTagToNote(ctx, tagID, noteID); err != nil {
			o.log.WithField("tag", t).WithError(err).Warn("tagging note failed")
			metrics.IncAnnotateFailure()
		}
	}

	return noteID
}

func (o *Organizer) observe(outcome Outcome) {
	if o.Observer != nil {
		o.Observer(outcome)
	}
}
