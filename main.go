package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/neozeit/dmarcscope/config"
	"github.com/neozeit/dmarcscope/interfaces"
	"github.com/neozeit/dmarcscope/internal/database"
	"github.com/neozeit/dmarcscope/internal/logger"
	"github.com/neozeit/dmarcscope/internal/repository"
	"github.com/neozeit/dmarcscope/internal/tracing"
	"github.com/neozeit/dmarcscope/services"
	"github.com/neozeit/dmarcscope/services/report"
)

func main() {
	app := &cli.App{
		Name:  "dmarcscope",
		Usage: "summarize DMARC aggregate reports into PDF documents",
		Commands: []*cli.Command{
			reportCommand(),
			archiveCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "generate a DMARC summary report for a domain",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "domain", Aliases: []string{"d"}, Usage: "domain to summarize (prompted for when omitted)"},
			&cli.StringFlag{Name: "index-pattern", Usage: "store index pattern to query"},
			&cli.IntFlag{Name: "days", Usage: "trailing window for the record fetch, in days"},
			&cli.IntFlag{Name: "total-days", Usage: "trailing window for the independent total, in days"},
			&cli.BoolFlag{Name: "with-total", Usage: "include the independently aggregated message total"},
			&cli.StringFlag{Name: "output-dir", Usage: "directory the report is written to"},
		},
		Action: runReport,
	}
}

func runReport(c *cli.Context) error {
	cfg, appLogger := bootstrap()

	// flags override the environment
	if v := c.String("index-pattern"); v != "" {
		cfg.ElasticConfig.IndexPattern = v
	}
	if v := c.Int("days"); v > 0 {
		cfg.ReportConfig.RecordWindowDays = v
	}
	if v := c.Int("total-days"); v > 0 {
		cfg.ReportConfig.TotalWindowDays = v
	}
	if c.Bool("with-total") {
		cfg.ReportConfig.IncludeTotalCount = true
	}
	if v := c.String("output-dir"); v != "" {
		cfg.ReportConfig.OutputDir = v
	}

	domain := strings.TrimSpace(c.String("domain"))
	if domain == "" {
		var err error
		domain, err = promptDomain(os.Stdin, os.Stdout)
		if err != nil {
			return err
		}
	}
	if domain == "" {
		return cli.Exit("No domain provided.", 1)
	}

	tracer, closer, err := tracing.NewJaegerTracer(cfg.Tracing, appLogger)
	if err != nil {
		log.Fatalf("Could not initialize jaeger tracer: %s", err.Error())
	}
	defer closer.Close()
	opentracing.SetGlobalTracer(tracer)

	es, err := database.InitElasticsearch(&database.ElasticsearchConfig{
		Addresses: cfg.ElasticConfig.Addresses,
		Username:  cfg.ElasticConfig.Username,
		Password:  cfg.ElasticConfig.Password,
	})
	if err != nil {
		log.Fatalf("Elasticsearch initialization failed: %v", err)
	}

	repos := repository.InitRepositories(es, cfg.ElasticConfig.MaxRecords)

	svcs, err := services.InitServices(cfg, appLogger, repos)
	if err != nil {
		return err
	}

	appLogger.Infof("Generating DMARC report for domain '%s' over the past %d days", domain, cfg.ReportConfig.RecordWindowDays)

	span, ctx := tracing.StartTracerSpan(c.Context, "main.report")
	defer span.Finish()

	result, err := svcs.ReportService.GenerateDomainReport(ctx, interfaces.ReportRequest{
		Domain:            domain,
		IndexPattern:      cfg.ElasticConfig.IndexPattern,
		RecordWindowDays:  cfg.ReportConfig.RecordWindowDays,
		TotalWindowDays:   cfg.ReportConfig.TotalWindowDays,
		IncludeTotalCount: cfg.ReportConfig.IncludeTotalCount,
	})
	if err != nil {
		if errors.Is(err, report.ErrNoRecords) {
			fmt.Println("No records found.")
			return nil
		}
		appLogger.Errorf("❌ Report generation failed: %v", err)
		return err
	}

	appLogger.Infof("✅ PDF report generated as '%s' (%d records)", result.OutputPath, result.RecordCount)
	if result.ArchiveKey != "" {
		appLogger.Infof("Report archived as '%s'", result.ArchiveKey)
	}
	return nil
}

func archiveCommand() *cli.Command {
	return &cli.Command{
		Name:  "archive",
		Usage: "work with archived reports",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "list archived reports",
				Action: runArchiveList,
			},
			{
				Name:      "fetch",
				Usage:     "download an archived report",
				ArgsUsage: "<key>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "file to write (defaults to the key's base name)"},
				},
				Action: runArchiveFetch,
			},
			{
				Name:      "delete",
				Usage:     "remove an archived report",
				ArgsUsage: "<key>",
				Action:    runArchiveDelete,
			},
		},
	}
}

func runArchiveList(c *cli.Context) error {
	cfg, appLogger := bootstrap()

	archive := services.InitArchiveService(cfg, appLogger)
	if archive == nil {
		return cli.Exit("Report archival is not configured; set ARCHIVE_BUCKET.", 1)
	}

	keys, err := archive.ListReports(c.Context)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		fmt.Println("No archived reports.")
		return nil
	}
	for _, key := range keys {
		fmt.Println(key)
	}
	return nil
}

func runArchiveFetch(c *cli.Context) error {
	key := c.Args().First()
	if key == "" {
		return cli.Exit("Usage: dmarcscope archive fetch <key>", 1)
	}

	cfg, appLogger := bootstrap()

	archive := services.InitArchiveService(cfg, appLogger)
	if archive == nil {
		return cli.Exit("Report archival is not configured; set ARCHIVE_BUCKET.", 1)
	}

	data, err := archive.FetchReport(c.Context, key)
	if err != nil {
		return err
	}

	output := c.String("output")
	if output == "" {
		output = filepath.Base(key)
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return errors.Wrap(err, "write report file")
	}

	fmt.Printf("Saved %s (%d bytes)\n", output, len(data))
	return nil
}

func runArchiveDelete(c *cli.Context) error {
	key := c.Args().First()
	if key == "" {
		return cli.Exit("Usage: dmarcscope archive delete <key>", 1)
	}

	cfg, appLogger := bootstrap()

	archive := services.InitArchiveService(cfg, appLogger)
	if archive == nil {
		return cli.Exit("Report archival is not configured; set ARCHIVE_BUCKET.", 1)
	}

	if err := archive.DeleteReport(c.Context, key); err != nil {
		return err
	}

	fmt.Printf("Deleted %s\n", key)
	return nil
}

func bootstrap() (*config.Config, logger.Logger) {
	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("Config initialization failed: %v", err)
	}
	if cfg == nil {
		log.Fatalf("config is empty")
	}

	appLogger := logger.NewAppLogger(cfg.Logger)
	appLogger.InitLogger()
	return cfg, appLogger
}

func promptDomain(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "Please enter the domain you wish to summarize: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", errors.Wrap(err, "read domain")
	}
	return strings.TrimSpace(line), nil
}
