package report

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	reports []Report
	err     error
}

func (s *recordingSink) Submit(ctx context.Context, r Report) error {
	if s.err != nil {
		return s.err
	}
	s.reports = append(s.reports, r)
	return nil
}

func newTestForm(sink Sink) *Form {
	return NewForm(Options{
		Sink:   sink,
		Now:    func() time.Time { return time.Date(2024, 7, 1, 13, 0, 0, 0, time.UTC) },
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{in: "accessible", want: Accessible},
		{in: "gender_neutral", want: GenderNeutral},
		{in: "baby_change", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCategory(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownCategory)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestForm_ClosedOperations(t *testing.T) {
	f := newTestForm(&recordingSink{})

	assert.ErrorIs(t, f.ToggleCategory(Accessible), ErrFormClosed)
	assert.ErrorIs(t, f.SetNotes("x"), ErrFormClosed)
	assert.ErrorIs(t, f.Cancel(), ErrFormClosed)
	_, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, ErrFormClosed)
}

func TestForm_ToggleCategory(t *testing.T) {
	f := newTestForm(&recordingSink{})
	f.Open()

	require.NoError(t, f.ToggleCategory(GenderNeutral))
	assert.Equal(t, []Category{GenderNeutral}, f.Draft().Categories)

	require.NoError(t, f.ToggleCategory(Accessible))
	assert.Equal(t, []Category{Accessible, GenderNeutral}, f.Draft().Categories)

	// Toggling twice restores membership
	require.NoError(t, f.ToggleCategory(Accessible))
	require.NoError(t, f.ToggleCategory(Accessible))
	assert.Equal(t, []Category{Accessible, GenderNeutral}, f.Draft().Categories)

	err := f.ToggleCategory(Category("baby_change"))
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestForm_Validate(t *testing.T) {
	tests := []struct {
		name    string
		toggles []Category
		wantErr error
	}{
		{name: "empty", wantErr: ErrNoCategorySelected},
		{name: "accessible", toggles: []Category{Accessible}},
		{name: "gender neutral", toggles: []Category{GenderNeutral}},
		{name: "both", toggles: []Category{Accessible, GenderNeutral}},
		{name: "toggled off again", toggles: []Category{Accessible, Accessible}, wantErr: ErrNoCategorySelected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestForm(&recordingSink{})
			f.Open()
			for _, c := range tt.toggles {
				require.NoError(t, f.ToggleCategory(c))
			}

			err := f.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestForm_SubmitFlow(t *testing.T) {
	sink := &recordingSink{}
	f := newTestForm(sink)

	f.Open()
	require.NoError(t, f.SetNotes("  Radar key needed.  "))

	_, err := f.Submit(context.Background())
	require.ErrorIs(t, err, ErrNoCategorySelected)

	view := f.View()
	assert.True(t, view.Open, "dialog stays open on rejection")
	assert.Equal(t, HelperNoCategory, view.Helper)
	assert.Empty(t, sink.reports)

	require.NoError(t, f.ToggleCategory(Accessible))
	assert.Empty(t, f.View().Helper, "helper clears once a category is selected")

	r, err := f.Submit(context.Background())
	require.NoError(t, err)

	require.Len(t, sink.reports, 1)
	assert.Equal(t, r, sink.reports[0])
	assert.Equal(t, []Category{Accessible}, r.Categories)
	assert.Equal(t, "  Radar key needed.  ", r.Notes, "notes are kept verbatim")
	assert.Equal(t, time.Date(2024, 7, 1, 13, 0, 0, 0, time.UTC), r.SubmittedAt)

	view = f.View()
	assert.False(t, view.Open)
	assert.False(t, view.Categories["accessible"])
	assert.Empty(t, view.Notes)

	// Reopening starts from a fresh draft
	f.Open()
	assert.Empty(t, f.Draft().Categories)
}

func TestForm_SinkErrorKeepsDialogOpen(t *testing.T) {
	sink := &recordingSink{err: errors.New("disk full")}
	f := newTestForm(sink)
	f.Open()
	require.NoError(t, f.ToggleCategory(GenderNeutral))

	_, err := f.Submit(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to submit report")

	assert.True(t, f.IsOpen())
	assert.Equal(t, []Category{GenderNeutral}, f.Draft().Categories)
}

// blockingSink waits for its context like a sink stuck on a slow backend
type blockingSink struct{}

func (blockingSink) Submit(ctx context.Context, r Report) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestForm_SlowSinkIsBounded(t *testing.T) {
	f := NewForm(Options{
		Sink:    blockingSink{},
		Timeout: 20 * time.Millisecond,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	f.Open()
	require.NoError(t, f.ToggleCategory(Accessible))

	start := time.Now()
	_, err := f.Submit(context.Background())

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
	assert.True(t, f.IsOpen())
	assert.Equal(t, []Category{Accessible}, f.Draft().Categories)
}

func TestForm_Cancel(t *testing.T) {
	f := newTestForm(&recordingSink{})
	f.Open()
	require.NoError(t, f.ToggleCategory(Accessible))
	require.NoError(t, f.SetNotes("closed on Sundays"))

	require.NoError(t, f.Cancel())
	assert.False(t, f.IsOpen())

	f.Open()
	assert.Equal(t, Draft{Categories: []Category{}, Notes: ""}, f.Draft())
}

func TestLogSink_Submit(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogSink(slog.New(slog.NewJSONHandler(&buf, nil)))

	err := sink.Submit(context.Background(), Report{Categories: []Category{Accessible}, Notes: "step free"})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"report submitted"`)
	assert.Contains(t, out, `"component":"report-sink"`)
	assert.Contains(t, out, `"notes":"step free"`)
}
