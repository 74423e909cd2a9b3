package batch

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cocktailetl/internal/crawler"
	"cocktailetl/internal/logger"
	"cocktailetl/internal/models"
	"cocktailetl/internal/normalizer"
	"cocktailetl/pkg/metadata"
)

const (
	mojito = `{"idDrink":"11000","strDrink":"Mojito!","strCategory":"Cocktail","strAlcoholic":"Alcoholic",` +
		`"strGlass":"Highball glass","strInstructions":"Muddle mint.","strIngredient1":"Light rum",` +
		`"strIngredient2":"Lime","strIngredient3":null,"strMeasure1":"2 oz","strMeasure2":"","strMeasure3":null}`
	shirleyTemple = `{"idDrink":"12668","strDrink":"Shirley Temple","strCategory":"Soft Drink","strAlcoholic":"Non alcoholic",` +
		`"strGlass":"Highball glass","strInstructions":"Stir.","strIngredient1":"Ginger ale","strMeasure1":"1 cl"}`
	missingGlass = `{"idDrink":"1","strDrink":"Broken","strCategory":"Cocktail","strAlcoholic":"Alcoholic","strInstructions":""}`
)

var errFetch = errors.New("failed to fetch data: unexpected status code: 500")

// scriptedFetcher replays one response per call.
type scriptedFetcher struct {
	responses []fetchResponse
	calls     int
}

type fetchResponse struct {
	body string
	err  error
}

func (f *scriptedFetcher) FetchRandom(context.Context) (models.RawRecord, error) {
	resp := f.responses[f.calls%len(f.responses)]
	f.calls++

	if resp.err != nil {
		return models.RawRecord{}, resp.err
	}

	return models.MustRawRecord(resp.body), nil
}

type failingWriter struct {
	failOn string
	saved  []string
}

func (w *failingWriter) SaveJSON(path string, _ any) error {
	if path == w.failOn {
		return errors.New("disk full")
	}

	w.saved = append(w.saved, path)

	return nil
}

func (w *failingWriter) SaveText(path, _ string) error {
	return w.SaveJSON(path, nil)
}

func newTestRunner(t *testing.T, fetcher Fetcher, withReport bool) (*Runner, Options, *bytes.Buffer) {
	t.Helper()

	dir := t.TempDir()
	opts := Options{
		RawPath:         filepath.Join(dir, "raw_cocktail_data.json"),
		TransformedPath: filepath.Join(dir, "transformed_cocktail_data.json"),
	}

	if withReport {
		opts.ReportPath = filepath.Join(dir, "report.md")
	}

	r := NewRunner(fetcher, crawler.NewClientWithDeps(nil, false), opts, logger.NewLoggerWithWriter("error", io.Discard))

	var out bytes.Buffer
	r.SetOutput(&out)

	return r, opts, &out
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(data)
}

func TestRunner_Run_MixedOutcomes(t *testing.T) {
	t.Parallel()

	fetcher := &scriptedFetcher{responses: []fetchResponse{
		{body: mojito},
		{err: errFetch},
		{body: missingGlass},
		{body: shirleyTemple},
	}}

	r, opts, out := newTestRunner(t, fetcher, false)

	result, err := r.Run(context.Background(), 4)
	require.NoError(t, err)

	assert.Equal(t, 4, fetcher.calls)
	assert.Equal(t, 4, result.Attempted)
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 2, result.Failed)
	assert.NotEmpty(t, result.RunID)
	require.Len(t, result.Outcomes, 4)
	assert.ErrorIs(t, result.Outcomes[1].Err, errFetch)
	assert.ErrorIs(t, result.Outcomes[2].Err, normalizer.ErrMissingField)

	// A fetched drink that fails processing stays in the raw document only.
	require.Len(t, result.Raw, 3)
	require.Len(t, result.Transformed, 2)
	assert.True(t, result.Outcomes[2].Fetched())
	assert.False(t, result.Outcomes[1].Fetched())

	first := result.Transformed[0]
	assert.Equal(t, "Mojito", first.Name)
	assert.True(t, first.Alcoholic)
	assert.Equal(t, []string{"Light rum"}, first.Ingredients)
	assert.Equal(t, []string{"59.14 ml"}, first.Measures)

	second := result.Transformed[1]
	assert.False(t, second.Alcoholic)
	assert.Equal(t, []string{"10.00 ml"}, second.Measures)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Error processing cocktail: "+errFetch.Error(), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Error processing cocktail: validation failed: "))
	assert.Equal(t, CompletionMessage, lines[2])

	raw := readFile(t, opts.RawPath)
	assert.True(t, strings.HasPrefix(raw, "[\n    {\n        \"idDrink\": \"11000\""), raw)
	assert.Contains(t, raw, `"strDrink": "Mojito!"`)
	assert.Contains(t, raw, `"strDrink": "Broken"`)

	transformed := readFile(t, opts.TransformedPath)
	assert.Contains(t, transformed, `"Name": "Shirley Temple"`)
	assert.NotContains(t, transformed, "Broken")
}

func TestRunner_Run_InvalidDrinkKeptInRawDocument(t *testing.T) {
	t.Parallel()

	fetcher := &scriptedFetcher{responses: []fetchResponse{{body: missingGlass}}}
	r, opts, out := newTestRunner(t, fetcher, false)

	result, err := r.Run(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, "[\n    {\n        \"idDrink\": \"1\",\n        \"strDrink\": \"Broken\",\n"+
		"        \"strCategory\": \"Cocktail\",\n        \"strAlcoholic\": \"Alcoholic\",\n"+
		"        \"strInstructions\": \"\"\n    }\n]", readFile(t, opts.RawPath))
	assert.Equal(t, "[]", readFile(t, opts.TransformedPath))
	assert.Contains(t, out.String(), "Error processing cocktail: validation failed: ")
}

func TestRunner_Run_AllFetchesFail(t *testing.T) {
	t.Parallel()

	fetcher := &scriptedFetcher{responses: []fetchResponse{{err: errFetch}}}
	r, opts, out := newTestRunner(t, fetcher, false)

	result, err := r.Run(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, 5, result.Failed)
	assert.Equal(t, 0, result.Succeeded)
	assert.Equal(t, "[]", readFile(t, opts.RawPath))
	assert.Equal(t, "[]", readFile(t, opts.TransformedPath))
	assert.Equal(t, 5, strings.Count(out.String(), "Error processing cocktail:"))
	assert.True(t, strings.HasSuffix(out.String(), CompletionMessage+"\n"))
}

func TestRunner_Run_ZeroSize(t *testing.T) {
	t.Parallel()

	fetcher := &scriptedFetcher{responses: []fetchResponse{{body: mojito}}}
	r, opts, _ := newTestRunner(t, fetcher, false)

	result, err := r.Run(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, 0, fetcher.calls)
	assert.Equal(t, 0, result.Attempted)
	assert.Equal(t, "[]", readFile(t, opts.TransformedPath))
}

func TestRunner_Run_NegativeSize(t *testing.T) {
	t.Parallel()

	r, _, _ := newTestRunner(t, &scriptedFetcher{}, false)

	_, err := r.Run(context.Background(), -1)
	assert.ErrorIs(t, err, ErrNegativeBatchSize)
}

func TestRunner_Run_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := &scriptedFetcher{responses: []fetchResponse{{body: mojito}}}
	r, opts, out := newTestRunner(t, fetcher, false)

	result, err := r.Run(ctx, 3)
	require.NoError(t, err)

	assert.True(t, result.Interrupted)
	assert.Equal(t, 0, fetcher.calls)
	assert.Equal(t, "[]", readFile(t, opts.RawPath))
	assert.Contains(t, out.String(), CompletionMessage)
}

func TestRunner_Run_WritesSignedReport(t *testing.T) {
	t.Parallel()

	fetcher := &scriptedFetcher{responses: []fetchResponse{{body: mojito}, {body: shirleyTemple}}}
	r, opts, _ := newTestRunner(t, fetcher, true)

	result, err := r.Run(context.Background(), 2)
	require.NoError(t, err)

	report := readFile(t, opts.ReportPath)

	meta, err := metadata.Verify(report)
	require.NoError(t, err)
	assert.Equal(t, result.RunID, meta.RunID)
	assert.Equal(t, 2, meta.Records)
	assert.Contains(t, report, "Shirley Temple")
}

func TestRunner_Run_WriteFailure(t *testing.T) {
	t.Parallel()

	writer := &failingWriter{failOn: "transformed.json"}
	r := NewRunner(
		&scriptedFetcher{responses: []fetchResponse{{body: mojito}}},
		writer,
		Options{RawPath: "raw.json", TransformedPath: "transformed.json"},
		logger.NewLoggerWithWriter("error", io.Discard),
	)

	var out bytes.Buffer
	r.SetOutput(&out)

	_, err := r.Run(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save transformed data")
	assert.Equal(t, []string{"raw.json"}, writer.saved)
	assert.NotContains(t, out.String(), CompletionMessage)
}
