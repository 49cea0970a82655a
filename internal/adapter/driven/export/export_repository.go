package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/payethio/payethio-dashboard-go/internal/domain/entity"
	"github.com/payethio/payethio-dashboard-go/internal/domain/repository"
	"github.com/payethio/payethio-dashboard-go/internal/shared/types"
)

// DateLayout is the human date format printed in report headers.
const DateLayout = "Jan 2, 2006"

// Options configura o ExportRepositoryImpl.
type Options struct {
	// Brand is printed in the report header and watermark.
	Brand string
	// Now defaults to time.Now.
	Now func() time.Time
	// NewReference defaults to a short uuid based reference.
	NewReference func() string
	// UncompressedPDF escreve os streams do PDF sem compressão (texto legível nos testes).
	UncompressedPDF bool
}

// document is the format independent view of a report request.
type document struct {
	Reference   string
	Brand       string
	Title       string
	Headers     []string
	Rows        [][]string
	Summary     entity.Summary
	DateRange   string
	Generated   string
	GeneratedAt time.Time
	Range       entity.DateRange
	PlainPDF    bool
}

type renderFunc func(doc document) ([]byte, error)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct {
	brand        string
	now          func() time.Time
	newReference func() string
	plainPDF     bool
	renderers    map[entity.Format]renderFunc
}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository(opts Options) repository.ExportRepository {
	r := &ExportRepositoryImpl{
		brand:        opts.Brand,
		now:          opts.Now,
		newReference: opts.NewReference,
		plainPDF:     opts.UncompressedPDF,
	}
	if r.brand == "" {
		r.brand = "PayEthio"
	}
	if r.now == nil {
		r.now = time.Now
	}
	if r.newReference == nil {
		r.newReference = NewReference
	}

	r.renderers = map[entity.Format]renderFunc{
		entity.FormatHTML: renderHTML,
		entity.FormatPDF:  renderPDF,
		entity.FormatCSV:  renderCSV,
		entity.FormatJSON: renderJSON,
		entity.FormatXLSX: renderXLSX,
	}
	return r
}

// NewReference returns a cosmetic report reference such as "RPT-1F4C9A2B".
// References are not guaranteed to be unique.
func NewReference() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "RPT-" + strings.ToUpper(id[:8])
}

func (r *ExportRepositoryImpl) Formats() []entity.Format {
	formats := make([]entity.Format, 0, len(r.renderers))
	for f := range r.renderers {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}

func (r *ExportRepositoryImpl) Render(ctx context.Context, format entity.Format, req entity.ReportRequest) (entity.RenderedReport, error) {
	render, ok := r.renderers[format]
	if !ok {
		return entity.RenderedReport{}, fmt.Errorf("%w: %q", types.ErrUnsupportedFormat, format)
	}
	if err := ctx.Err(); err != nil {
		return entity.RenderedReport{}, err
	}

	doc := r.newDocument(req)
	content, err := render(doc)
	if err != nil {
		return entity.RenderedReport{}, fmt.Errorf("error rendering %s report: %w", format, err)
	}

	return entity.RenderedReport{
		Reference:   doc.Reference,
		Filename:    slugify(req.Title) + "." + format.Extension(),
		Format:      format,
		ContentType: format.ContentType(),
		Content:     content,
	}, nil
}

func (r *ExportRepositoryImpl) SaveToFile(report entity.RenderedReport, baseName, outputDir string) (string, error) {
	if baseName == "" {
		baseName = strings.TrimSuffix(report.Filename, filepath.Ext(report.Filename))
	}
	outputFilename, err := generateFilename(baseName, outputDir, report.Format.Extension())
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(outputFilename, report.Content, 0o644); err != nil {
		return "", fmt.Errorf("error writing %s file: %w", report.Format, err)
	}
	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) newDocument(req entity.ReportRequest) document {
	generatedAt := req.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = r.now()
	}
	caption, _ := req.DateRange.Caption(DateLayout)

	return document{
		Reference:   r.newReference(),
		Brand:       r.brand,
		Title:       req.Title,
		Headers:     req.Headers,
		Rows:        req.DisplayRows(),
		Summary:     req.Summary,
		DateRange:   caption,
		Generated:   generatedAt.Format(DateLayout),
		GeneratedAt: generatedAt,
		Range:       req.DateRange,
		PlainPDF:    r.plainPDF,
	}
}

// --- Funções Auxiliares ---

// generateFilename cria um nome de arquivo único com timestamp e garante que o diretório exista.
func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}

var nonSlugRegex = regexp.MustCompile(`[^a-z0-9]+`)

// slugify turns a report title into a file name stem ("Customers Report" -> "customers-report").
func slugify(title string) string {
	s := strings.Trim(nonSlugRegex.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if s == "" {
		return "report"
	}
	return s
}
