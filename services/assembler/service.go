package assembler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/neozeit/dmarcscope/config"
	"github.com/neozeit/dmarcscope/interfaces"
	"github.com/neozeit/dmarcscope/internal/logger"
	"github.com/neozeit/dmarcscope/internal/models"
	"github.com/neozeit/dmarcscope/internal/tracing"
)

type reportAssembler struct {
	log          logger.Logger
	appConfig    *config.AppConfig
	reportConfig *config.ReportConfig
}

func NewReportAssembler(log logger.Logger, appConfig *config.AppConfig, reportConfig *config.ReportConfig) interfaces.ReportAssembler {
	return &reportAssembler{
		log:          log,
		appConfig:    appConfig,
		reportConfig: reportConfig,
	}
}

// ReportFilename derives the output file name from the domain, with
// dots replaced by underscores.
func ReportFilename(domain string) string {
	return "dmarc_report_" + strings.ReplaceAll(domain, ".", "_") + ".pdf"
}

func (a *reportAssembler) WriteReport(ctx context.Context, document models.ReportDocument) (string, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "ReportAssembler.WriteReport")
	defer span.Finish()
	tracing.SetDefaultAssemblerSpanTags(ctx, span)
	tracing.TagDomain(span, document.Domain)
	span.LogKV("request.countries", len(document.Countries), "request.organizations", len(document.Organizations))

	if err := os.MkdirAll(a.reportConfig.OutputDir, 0o755); err != nil {
		err = errors.Wrap(err, "create output directory")
		tracing.TraceErr(span, err)
		return "", err
	}
	outputPath := filepath.Join(a.reportConfig.OutputDir, ReportFilename(document.Domain))

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	a.writeHeader(pdf, tr)
	a.writeTitle(pdf, tr, document.Domain)
	a.writeOverview(pdf, document)
	a.writeCountryList(pdf, tr, document.Countries)

	if len(document.MapPNG) > 0 {
		if err := a.embedMap(pdf, document.MapPNG); err != nil {
			// a report without the map is still a report
			a.log.Warnf("Skipping map image: %v", err)
			tracing.TraceErr(span, err)
		}
	}

	a.writeOrganizations(pdf, tr, document.Organizations)

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		err = errors.Wrap(err, "write report document")
		tracing.TraceErr(span, err)
		return "", err
	}

	span.LogKV("result.path", outputPath)
	return outputPath, nil
}

func (a *reportAssembler) writeHeader(pdf *fpdf.Fpdf, tr func(string) string) {
	if a.appConfig.LogoPath != "" {
		if _, err := os.Stat(a.appConfig.LogoPath); err == nil {
			pdf.ImageOptions(a.appConfig.LogoPath, 5, 5, 60, 0, false, fpdf.ImageOptions{}, 0, "")
		} else {
			a.log.Warnf("Logo image not found at %s, skipping", a.appConfig.LogoPath)
		}
	}

	pdf.SetXY(5, 5)
	pdf.SetFont("Arial", "", 10)
	contact := fmt.Sprintf("Contact Details:\nName: %s\nEmail: %s\nPhone: %s",
		a.appConfig.ContactName, a.appConfig.ContactEmail, a.appConfig.ContactPhone)
	pdf.MultiCell(0, 5, tr(contact), "", "R", false)
}

func (a *reportAssembler) writeTitle(pdf *fpdf.Fpdf, tr func(string) string, domain string) {
	pdf.SetXY(10, 25)
	pdf.SetFont("Arial", "BU", 16)
	pdf.CellFormat(200, 10, tr("DMARC Report Summary for: "+domain), "", 1, "C", false, 0, "")
	pdf.Ln(5)
}

func (a *reportAssembler) writeOverview(pdf *fpdf.Fpdf, document models.ReportDocument) {
	pdf.SetFont("Arial", "BU", 12)
	pdf.CellFormat(200, 7.5, "General Overview", "", 1, "", false, 0, "")
	pdf.SetFont("Arial", "", 10)

	totals := document.Totals
	overview := fmt.Sprintf(
		"Total Messages from: %d\n"+
			"Total DKIM aligned: %d : Total DKIM unaligned: %d\n"+
			"Total SPF Passed: %d : Total SPF Failed: %d\n"+
			"Total DMARC Passed: %d : Total DMARC Failed: %d\n",
		totals.TotalMessages,
		totals.DKIMAligned, totals.DKIMUnaligned,
		totals.SPFPassed, totals.SPFFailed,
		totals.DMARCPassed, totals.DMARCFailed,
	)
	pdf.MultiCell(0, 7.5, overview, "", "", false)

	// The bucketed total comes from a separate aggregation over its own
	// window, so it may disagree with the record-set total; both are
	// shown when available.
	if document.TotalMessageCount != nil {
		pdf.CellFormat(0, 7.5, fmt.Sprintf("Independent daily-aggregation total: %d", *document.TotalMessageCount), "", 1, "", false, 0, "")
	}
	pdf.Ln(5)
}

func (a *reportAssembler) writeCountryList(pdf *fpdf.Fpdf, tr func(string) string, countries []models.CountryCount) {
	pdf.SetFont("Arial", "BU", 12)
	pdf.CellFormat(200, 7.5, "Messages by Country", "", 1, "", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, entry := range countries {
		pdf.CellFormat(0, 7.5, tr(fmt.Sprintf("%s: %d", entry.Country, entry.Messages)), "", 1, "", false, 0, "")
	}
}

func (a *reportAssembler) embedMap(pdf *fpdf.Fpdf, image []byte) error {
	tempFile, err := os.CreateTemp("", "dmarcscope-map-*.png")
	if err != nil {
		return errors.Wrap(err, "create temp map file")
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.Write(image); err != nil {
		tempFile.Close()
		return errors.Wrap(err, "write temp map file")
	}
	if err := tempFile.Close(); err != nil {
		return errors.Wrap(err, "close temp map file")
	}

	pdf.ImageOptions(tempFile.Name(), 10, pdf.GetY()+5, 190, 0, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	return nil
}

func (a *reportAssembler) writeOrganizations(pdf *fpdf.Fpdf, tr func(string) string, organizations []models.OrganizationStanding) {
	pdf.AddPage()
	pdf.SetFont("Arial", "BU", 12)
	pdf.CellFormat(200, 10, "Reporting Organizations", "", 1, "", false, 0, "")
	pdf.SetFont("Arial", "", 10)

	for _, org := range organizations {
		entry := fmt.Sprintf("Organization: %s\nContact: %s\nMessages: %d\n", org.Name, org.ContactEmail, org.Messages)
		pdf.MultiCell(0, 10, tr(entry), "", "", false)

		y := pdf.GetY()
		pdf.Line(10, y, 70, y)
	}
}
