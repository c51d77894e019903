package usecase

import (
	"fmt"
	"time"

	"makedoc2rst/internal/adapter/fs"
	"makedoc2rst/internal/adapter/makedoc"
	"makedoc2rst/internal/adapter/rst"
	"makedoc2rst/internal/domain"
	"makedoc2rst/internal/port"
)

const (
	commentCommand = "COMMENT"
	originCommand  = "ORIGIN"
	dateLayout     = "2006-01-02"
)

// ConvertUseCase turns makedoc-annotated C source into reStructuredText.
type ConvertUseCase struct {
	renderer    *rst.Renderer
	sink        port.DiagnosticSink
	profile     domain.Profile
	attribution string
	now         func() time.Time
	reader      port.FileReader
	writer      port.FileWriter
}

// ConvertOption customises a ConvertUseCase.
type ConvertOption func(*ConvertUseCase)

// WithClock sets the clock used for the generation date.
func WithClock(now func() time.Time) ConvertOption {
	return func(u *ConvertUseCase) {
		if now != nil {
			u.now = now
		}
	}
}

// WithAttribution sets the text of the trailing ORIGIN record.
func WithAttribution(text string) ConvertOption {
	return func(u *ConvertUseCase) {
		u.attribution = text
	}
}

// WithFiles sets the reader and writer used by ConvertFile.
func WithFiles(reader port.FileReader, writer port.FileWriter) ConvertOption {
	return func(u *ConvertUseCase) {
		if reader != nil {
			u.reader = reader
		}
		if writer != nil {
			u.writer = writer
		}
	}
}

// NewConvertUseCase creates a new convert use case.
func NewConvertUseCase(
	renderer *rst.Renderer,
	sink port.DiagnosticSink,
	profile domain.Profile,
	opts ...ConvertOption,
) *ConvertUseCase {
	if renderer == nil {
		renderer = rst.NewRenderer(nil)
	}
	u := &ConvertUseCase{
		renderer: renderer,
		sink:     sink,
		profile:  profile,
		now:      time.Now,
		reader:   fs.OS{},
		writer:   fs.OS{},
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Profile returns the profile the use case converts with.
func (u *ConvertUseCase) Profile() domain.Profile {
	return u.profile
}

// Records returns the records found in content, after duplicate collapsing
// when the profile asks for it. Nothing is injected or rendered.
func (u *ConvertUseCase) Records(content string) ([]domain.Record, bool) {
	comment := makedoc.Extract(content, u.profile.Mode)
	if comment == "" {
		return nil, false
	}
	records := makedoc.Segment(comment)
	if u.profile.CollapseDuplicates {
		records = domain.CollapseDuplicates(records)
	}
	return records, true
}

// Convert runs one source through the pipeline. Source is only used as the
// name embedded into provenance and diagnostics.
func (u *ConvertUseCase) Convert(source, content string) domain.Conversion {
	conv := domain.Conversion{Source: source}

	records, found := u.Records(content)
	if !found {
		u.report(&conv, domain.Diagnostic{
			Kind:    domain.DiagNoDocumentation,
			Source:  source,
			Message: fmt.Sprintf("cannot find makedoc comments in %s", source),
		})
		return conv
	}
	conv.Found = true

	all := make([]domain.Record, 0, len(records)+4)
	if u.profile.Provenance {
		all = append(all, u.provenance(source)...)
	}
	all = append(all, records...)
	if u.profile.Attribution && u.attribution != "" {
		all = append(all, domain.Record{Command: originCommand, Body: u.attribution})
	}
	conv.Records = all

	output, diags := u.renderer.Render(all)
	conv.Output = output
	for _, d := range diags {
		d.Source = source
		u.report(&conv, d)
	}
	return conv
}

// ConvertFile reads src, converts it and writes the result to dest. Nothing
// is written when src has no documentation block or dest is empty.
func (u *ConvertUseCase) ConvertFile(src, dest string) (domain.Conversion, error) {
	content, err := u.reader.ReadFile(src)
	if err != nil {
		return domain.Conversion{Source: src}, wrapReadError(src, err)
	}

	conv := u.Convert(src, content)
	if !conv.Found || dest == "" {
		return conv, nil
	}

	if err := u.writer.WriteFile(dest, conv.Output); err != nil {
		return conv, wrapWriteError(dest, err)
	}
	return conv, nil
}

func (u *ConvertUseCase) provenance(source string) []domain.Record {
	return []domain.Record{
		{Command: commentCommand, Body: "This file was automatically generated from the file:"},
		{Command: commentCommand, Body: source},
		{Command: commentCommand, Body: "Generated on: " + u.now().Format(dateLayout)},
	}
}

func (u *ConvertUseCase) report(conv *domain.Conversion, d domain.Diagnostic) {
	conv.Diagnostics = append(conv.Diagnostics, d)
	if u.sink != nil {
		u.sink.Report(d)
	}
}
