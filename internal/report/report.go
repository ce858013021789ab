// Package report implements the facility report dialog: a draft of
// categories and notes that is validated and handed to a Sink on submit.
package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"toilet-finder/internal/metrics"
)

const (
	HelperNoCategory     = "Please select at least one option"
	defaultSubmitTimeout = 2 * time.Second
)

var (
	ErrUnknownCategory    = errors.New("unknown category")
	ErrFormClosed         = errors.New("report form is closed")
	ErrNoCategorySelected = errors.New("no category selected")
)

// Category is a facility attribute a report can carry
type Category string

const (
	Accessible    Category = "accessible"
	GenderNeutral Category = "gender_neutral"
)

// Categories lists every category in display order
var Categories = []Category{Accessible, GenderNeutral}

// ParseCategory validates a category name
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !slices.Contains(Categories, c) {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// Draft is the in-progress content of the dialog
type Draft struct {
	Categories []Category `json:"categories" validate:"min=1"`
	Notes      string     `json:"notes"`
}

// Report is a submitted draft
type Report struct {
	ID          uuid.UUID  `json:"id"`
	Categories  []Category `json:"categories"`
	Notes       string     `json:"notes"`
	SubmittedAt time.Time  `json:"submittedAt"`
}

// Sink receives submitted reports. Submit runs on the session's event loop, so
// implementations must return promptly; the form bounds each call with its
// submit timeout and keeps the dialog open if the sink does not finish.
type Sink interface {
	Submit(ctx context.Context, r Report) error
}

var validate = validator.New()

type Options struct {
	Sink    Sink
	Timeout time.Duration // upper bound on one Sink.Submit call
	Now     func() time.Time
	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

// Form is the report dialog. It is owned by a single event loop.
type Form struct {
	sink    Sink
	timeout time.Duration
	now     func() time.Time
	metrics *metrics.Metrics
	logger  *slog.Logger

	open     bool
	selected map[Category]bool
	notes    string
	helper   string
}

func NewForm(opts Options) *Form {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Sink == nil {
		opts.Sink = NewLogSink(opts.Logger)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultSubmitTimeout
	}
	return &Form{
		sink:     opts.Sink,
		timeout:  opts.Timeout,
		now:      opts.Now,
		metrics:  opts.Metrics,
		logger:   opts.Logger.With("component", "report-form"),
		selected: make(map[Category]bool),
	}
}

// Open shows the dialog. Opening an open dialog keeps its draft.
func (f *Form) Open() {
	f.open = true
}

func (f *Form) IsOpen() bool {
	return f.open
}

// Cancel closes the dialog and discards the draft
func (f *Form) Cancel() error {
	if !f.open {
		return ErrFormClosed
	}
	f.close()
	return nil
}

// ToggleCategory flips c in the draft
func (f *Form) ToggleCategory(c Category) error {
	if !f.open {
		return ErrFormClosed
	}
	if !slices.Contains(Categories, c) {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}

	if f.selected[c] {
		delete(f.selected, c)
	} else {
		f.selected[c] = true
	}

	// The helper goes away as soon as the draft becomes valid again
	if f.helper != "" && f.Validate() == nil {
		f.helper = ""
	}
	return nil
}

// SetNotes replaces the notes verbatim
func (f *Form) SetNotes(text string) error {
	if !f.open {
		return ErrFormClosed
	}
	f.notes = text
	return nil
}

// Draft returns the current draft with categories in display order
func (f *Form) Draft() Draft {
	d := Draft{Categories: []Category{}, Notes: f.notes}
	for _, c := range Categories {
		if f.selected[c] {
			d.Categories = append(d.Categories, c)
		}
	}
	return d
}

// Validate reports ErrNoCategorySelected when the draft has no categories
func (f *Form) Validate() error {
	if err := validate.Struct(f.Draft()); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return ErrNoCategorySelected
		}
		return fmt.Errorf("failed to validate draft: %w", err)
	}
	return nil
}

// Submit validates the draft and hands it to the sink. An invalid draft keeps
// the dialog open with a helper message; a sink error keeps it open unchanged.
func (f *Form) Submit(ctx context.Context) (Report, error) {
	if !f.open {
		return Report{}, ErrFormClosed
	}

	if err := f.Validate(); err != nil {
		f.helper = HelperNoCategory
		f.metrics.IncReportsRejected()
		return Report{}, err
	}

	d := f.Draft()
	r := Report{
		ID:          uuid.New(),
		Categories:  d.Categories,
		Notes:       d.Notes,
		SubmittedAt: f.now(),
	}
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	if err := f.sink.Submit(ctx, r); err != nil {
		return Report{}, fmt.Errorf("failed to submit report: %w", err)
	}

	f.metrics.IncReportsSubmitted()
	f.close()
	return r, nil
}

func (f *Form) close() {
	f.open = false
	f.selected = make(map[Category]bool)
	f.notes = ""
	f.helper = ""
}

// View is the render state of the dialog
type View struct {
	Open       bool            `json:"open"`
	Categories map[string]bool `json:"categories"`
	Notes      string          `json:"notes"`
	Helper     string          `json:"helper,omitempty"`
}

func (f *Form) View() View {
	v := View{
		Open:       f.open,
		Categories: make(map[string]bool, len(Categories)),
		Notes:      f.notes,
		Helper:     f.helper,
	}
	for _, c := range Categories {
		v.Categories[string(c)] = f.selected[c]
	}
	return v
}
