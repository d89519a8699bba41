package services

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"

	"github.com/neozeit/dmarcscope/config"
	"github.com/neozeit/dmarcscope/interfaces"
	"github.com/neozeit/dmarcscope/internal/geocode"
	"github.com/neozeit/dmarcscope/internal/geometry"
	"github.com/neozeit/dmarcscope/internal/logger"
	"github.com/neozeit/dmarcscope/internal/repository"
	"github.com/neozeit/dmarcscope/services/assembler"
	"github.com/neozeit/dmarcscope/services/report"
	"github.com/neozeit/dmarcscope/services/storage"
	"github.com/neozeit/dmarcscope/services/storage/aws_client"
	"github.com/neozeit/dmarcscope/services/worldmap"
)

type Services struct {
	MapRenderer     interfaces.MapRenderer
	ReportAssembler interfaces.ReportAssembler
	ArchiveService  interfaces.ArchiveService
	ReportService   interfaces.ReportService
}

func InitServices(cfg *config.Config, log logger.Logger, repos *repository.Repositories) (*Services, error) {
	// the base map is optional; without it the renderer degrades to a
	// map-less report
	dataset, err := geometry.Load(cfg.ReportConfig.GeometryPath)
	if err != nil {
		log.Warnf("Geometry dataset not available (%v); reports will have no map", err)
		dataset = nil
	}

	archive := InitArchiveService(cfg, log)

	renderer := worldmap.NewMapRenderer(log, dataset)
	reportAssembler := assembler.NewReportAssembler(log, cfg.AppConfig, cfg.ReportConfig)

	services := Services{
		MapRenderer:     renderer,
		ReportAssembler: reportAssembler,
		ArchiveService:  archive,
		ReportService: report.NewReportService(
			log,
			repos,
			geocode.NewNormalizer(log),
			renderer,
			reportAssembler,
			archive,
		),
	}

	return &services, nil
}

// InitArchiveService builds the S3-backed archive, or nil when no bucket is
// configured.
func InitArchiveService(cfg *config.Config, log logger.Logger) interfaces.ArchiveService {
	if cfg.ArchiveConfig.Bucket == "" {
		return nil
	}

	awsConfig := aws.NewConfig().WithRegion(cfg.ArchiveConfig.Region)
	if cfg.ArchiveConfig.AccessKeyID != "" {
		awsConfig = awsConfig.WithCredentials(credentials.NewStaticCredentials(
			cfg.ArchiveConfig.AccessKeyID,
			cfg.ArchiveConfig.SecretAccessKey,
			"",
		))
	}
	return storage.NewArchiveService(log, aws_client.NewS3Client(awsConfig), cfg.ArchiveConfig)
}
