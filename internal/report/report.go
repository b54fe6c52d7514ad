// Package report renders an analysis of a filtered view as Markdown or HTML.
package report

import (
	"fmt"
	"math"
	"strings"

	"gamestats/domain/catalog"
	"gamestats/domain/core"
	"gamestats/internal/analysis"
	"gamestats/internal/dataset"
	"gamestats/internal/inference"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Options selects what the report computes.
// Metric drives the price buckets and the two-sample test; the other
// sections have their own column.
type Options struct {
	Title        string
	Metric       catalog.Column
	Split        catalog.Column
	Interval     catalog.Column
	Trend        catalog.Column
	GenreMetric  catalog.Column
	Level        int
	Window       int
	TopN         int
	Correlations []catalog.Column
}

// Report holds the computed sections. A section that could not be computed
// for this selection is nil and explained in Notes.
type Report struct {
	Options  Options
	Criteria analysis.Criteria

	Summary      analysis.Summary
	TopGenres    *analysis.AggregateResult
	PriceBuckets *analysis.AggregateResult
	Owners       *analysis.AggregateResult
	PriceByOwner []analysis.BoxSummary
	ShareByPrice []analysis.BoxSummary
	Trend        []analysis.TrendPoint
	Interval     *inference.Interval
	Test         *inference.TestResult
	Correlations []inference.CorrelationResult

	Notes []string
}

// Build computes every section over view. It fails only when the view is
// empty or an option is invalid; sections lacking data become notes.
func Build(view *analysis.FilteredView, opts Options) (*Report, error) {
	if view.IsEmpty() {
		return nil, core.NewEmptyPopulationError("report")
	}

	r := &Report{Options: opts, Criteria: view.Criteria()}
	var err error

	if r.Summary, err = analysis.Summarize(view); err != nil {
		return nil, err
	}
	if r.TopGenres, err = analysis.TopNByMean(view, analysis.ByGenre, opts.GenreMetric, opts.TopN); err != nil {
		return nil, err
	}
	if r.PriceBuckets, err = analysis.PriceBucketMean(view, opts.Metric); err != nil {
		return nil, err
	}
	if r.Owners, err = analysis.GroupBy(view, analysis.ByOwnerRange, "", analysis.Count); err != nil {
		return nil, err
	}
	if r.PriceByOwner, err = analysis.Distribution(view, analysis.ByOwnerRange, catalog.ColPrice); err != nil {
		return nil, err
	}
	if r.ShareByPrice, err = analysis.Distribution(view, analysis.ByPriceBucket, catalog.ColPositivePercentage); err != nil {
		return nil, err
	}
	if r.Trend, err = analysis.YearlyTrend(view, opts.Trend, opts.Window); err != nil {
		return nil, err
	}

	if r.Interval, err = inference.ConfidenceInterval(view, opts.Interval, opts.Level); err != nil {
		if !core.IsNoDataError(err) {
			return nil, err
		}
		r.note("confidence interval", err)
	}
	if r.Test, err = inference.TwoSampleTestAtMedian(view, opts.Metric, opts.Split); err != nil {
		if !core.IsNoDataError(err) {
			return nil, err
		}
		r.note("two-sample test", err)
	}
	if r.Correlations, err = inference.CorrelationMatrix(view, opts.Correlations); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Report) note(section string, err error) {
	r.Notes = append(r.Notes, fmt.Sprintf("%s skipped: %v", section, err))
}

// Markdown renders the report.
func (r *Report) Markdown() string {
	var b strings.Builder
	title := r.Options.Title
	if title == "" {
		title = "Game Catalog Report"
	}

	b.WriteString(fmt.Sprintf("# %s\n\n", title))
	b.WriteString(fmt.Sprintf("Selection: %s\n\n", r.Criteria))

	b.WriteString("## Summary\n\n")
	b.WriteString(fmt.Sprintf("- Games: %d\n", r.Summary.Games))
	b.WriteString(fmt.Sprintf("- Total reviews: %s\n", dataset.FormatCompact(r.Summary.TotalReviews)))
	b.WriteString(fmt.Sprintf("- Free games: %d\n", r.Summary.FreeGames))
	b.WriteString(fmt.Sprintf("- Mean price: %s\n\n", number(r.Summary.MeanPrice)))

	b.WriteString(fmt.Sprintf("## Top genres by mean %s\n\n", r.Options.GenreMetric))
	writeGroups(&b, "Genre", r.TopGenres)

	b.WriteString(fmt.Sprintf("## Mean %s by price\n\n", r.Options.Metric))
	writeGroups(&b, "Price", r.PriceBuckets)

	b.WriteString("## Games by estimated owners\n\n")
	writeGroups(&b, "Owners", r.Owners)

	b.WriteString("## Price by estimated owners\n\n")
	writeBoxes(&b, "Owners", r.PriceByOwner)

	b.WriteString(fmt.Sprintf("## %s by price\n\n", catalog.ColPositivePercentage))
	writeBoxes(&b, "Price", r.ShareByPrice)

	b.WriteString(fmt.Sprintf("## Yearly %s (%d-year moving average)\n\n", r.Options.Trend, r.Options.Window))
	b.WriteString("| Year | Games | Mean | Moving average |\n|---|---|---|---|\n")
	for _, p := range r.Trend {
		b.WriteString(fmt.Sprintf("| %d | %d | %s | %s |\n", p.Year, p.Count, number(p.Mean), number(p.MovingAverage)))
	}
	b.WriteString("\n")

	b.WriteString("## Inference\n\n")
	if r.Interval != nil {
		b.WriteString(fmt.Sprintf("- %s\n", r.Interval))
	}
	if r.Test != nil {
		verdict := "not significant"
		if r.Test.Significant(0.05) {
			verdict = "significant at 5%"
		}
		b.WriteString(fmt.Sprintf("- %s, %s\n", r.Test, verdict))
	}
	for _, c := range r.Correlations {
		b.WriteString(fmt.Sprintf("- %s\n", c))
	}
	for _, n := range r.Notes {
		b.WriteString(fmt.Sprintf("- _%s_\n", n))
	}
	return b.String()
}

// HTML renders the Markdown as a complete HTML page.
func (r *Report) HTML() []byte {
	return RenderHTML(r.Options.Title, r.Markdown())
}

// RenderHTML converts Markdown with tables to a standalone HTML page.
func RenderHTML(title, md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(md))

	renderer := html.NewRenderer(html.RendererOptions{
		Title: title,
		Flags: html.CommonFlags | html.CompletePage,
	})
	return markdown.Render(doc, renderer)
}

func writeGroups(b *strings.Builder, label string, res *analysis.AggregateResult) {
	b.WriteString(fmt.Sprintf("| %s | Games | Value |\n|---|---|---|\n", label))
	for _, g := range res.Groups {
		b.WriteString(fmt.Sprintf("| %s | %d | %s |\n", g.Key, g.Count, number(g.Value)))
	}
	b.WriteString("\n")
}

func writeBoxes(b *strings.Builder, label string, boxes []analysis.BoxSummary) {
	b.WriteString(fmt.Sprintf("| %s | Games | Q1 | Median | Q3 | Outliers |\n|---|---|---|---|---|---|\n", label))
	for _, box := range boxes {
		b.WriteString(fmt.Sprintf("| %s | %d | %s | %s | %s | %d |\n",
			box.Key, box.N, number(box.Q1), number(box.Median), number(box.Q3), box.Outliers))
	}
	b.WriteString("\n")
}

func number(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v)
}
