package report

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	tracingLog "github.com/opentracing/opentracing-go/log"
	"github.com/pkg/errors"

	"github.com/neozeit/dmarcscope/interfaces"
	"github.com/neozeit/dmarcscope/internal/aggregate"
	"github.com/neozeit/dmarcscope/internal/geocode"
	"github.com/neozeit/dmarcscope/internal/logger"
	"github.com/neozeit/dmarcscope/internal/models"
	"github.com/neozeit/dmarcscope/internal/repository"
	"github.com/neozeit/dmarcscope/internal/tracing"
	"github.com/neozeit/dmarcscope/internal/utils"
)

// ErrNoRecords aborts a run before assembly: with nothing fetched there
// is nothing to summarize, and no report file is produced.
var ErrNoRecords = errors.New("no records found")

const defaultWindowDays = 31

type reportService struct {
	log          logger.Logger
	repositories *repository.Repositories
	normalizer   *geocode.Normalizer
	renderer     interfaces.MapRenderer
	assembler    interfaces.ReportAssembler
	// archive is optional; nil disables report archival.
	archive interfaces.ArchiveService
}

func NewReportService(
	log logger.Logger,
	repositories *repository.Repositories,
	normalizer *geocode.Normalizer,
	renderer interfaces.MapRenderer,
	assembler interfaces.ReportAssembler,
	archive interfaces.ArchiveService,
) interfaces.ReportService {
	return &reportService{
		log:          log,
		repositories: repositories,
		normalizer:   normalizer,
		renderer:     renderer,
		assembler:    assembler,
		archive:      archive,
	}
}

func (s *reportService) GenerateDomainReport(ctx context.Context, request interfaces.ReportRequest) (*interfaces.ReportResult, error) {
	// seed the run context before opening the span so its tags carry
	// the run id and domain
	runId := uuid.New().String()
	ctx = utils.WithCustomContext(ctx, &utils.CustomContext{RunId: runId, Domain: request.Domain})

	span, ctx := opentracing.StartSpanFromContext(ctx, "ReportService.GenerateDomainReport")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogKV("request.indexPattern", request.IndexPattern, "request.recordWindowDays", request.RecordWindowDays, "request.includeTotalCount", request.IncludeTotalCount)

	if request.RecordWindowDays <= 0 {
		request.RecordWindowDays = defaultWindowDays
	}
	if request.TotalWindowDays <= 0 {
		request.TotalWindowDays = request.RecordWindowDays
	}

	// fetch records over the trailing window; store failures degrade to
	// an empty record set
	window := models.TrailingWindow(request.RecordWindowDays)
	records, err := s.repositories.DMARCReportRepository.FetchRecords(ctx, request.IndexPattern, request.Domain, window)
	if err != nil {
		s.log.Warnf("Error collecting records: %v", err)
		tracing.TraceErr(span, err)
		records = nil
	}

	if len(records) == 0 {
		span.LogFields(tracingLog.Int("result.records", 0))
		return nil, ErrNoRecords
	}
	s.log.Infof("Collected %d records for domain '%s' in the past %d days", len(records), request.Domain, request.RecordWindowDays)
	for _, record := range records {
		s.log.Debugf("record: %+v", record)
	}

	document := models.ReportDocument{
		Domain:        request.Domain,
		Totals:        aggregate.Summarize(records),
		Countries:     aggregate.CountryRanking(records),
		Organizations: aggregate.OrganizationRanking(records),
	}
	tracing.LogObjectAsJson(span, "result.totals", document.Totals)

	// the independent total runs over its own window; a failure here
	// only omits the figure
	if request.IncludeTotalCount {
		totalWindow := models.TrailingWindow(request.TotalWindowDays)
		total, err := s.repositories.DMARCReportRepository.FetchTotalMessageCount(ctx, request.IndexPattern, request.Domain, totalWindow)
		if err != nil {
			s.log.Warnf("Error computing total message count: %v", err)
			tracing.TraceErr(span, err)
		} else {
			document.TotalMessageCount = &total
		}
	}

	// a report without a map is still a report
	mapImage, err := s.renderer.RenderMessageMap(ctx, s.normalizer.DisplayNames(document.Countries))
	if err != nil {
		s.log.Warnf("Error rendering map: %v", err)
		tracing.TraceErr(span, err)
	} else {
		document.MapPNG = mapImage
	}

	outputPath, err := s.assembler.WriteReport(ctx, document)
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "Error assembling report"))
		return nil, err
	}
	s.log.Infof("PDF report generated as '%s'", outputPath)

	result := &interfaces.ReportResult{
		Domain:      request.Domain,
		OutputPath:  outputPath,
		RecordCount: len(records),
	}

	if s.archive != nil {
		result.ArchiveKey = s.archiveReport(ctx, span, outputPath)
	}

	span.LogKV("result.records", len(records), "result.path", outputPath)
	return result, nil
}

// archiveReport uploads the finished document; archival failures never
// fail the run.
func (s *reportService) archiveReport(ctx context.Context, span opentracing.Span, outputPath string) string {
	data, err := os.ReadFile(outputPath)
	if err != nil {
		s.log.Warnf("Error reading report for archival: %v", err)
		tracing.TraceErr(span, err)
		return ""
	}

	key, err := s.archive.ArchiveReport(ctx, filepath.Base(outputPath), data)
	if err != nil {
		s.log.Warnf("Error archiving report: %v", err)
		tracing.TraceErr(span, err)
		return ""
	}

	s.log.Infof("Report archived as '%s'", key)
	return key
}
