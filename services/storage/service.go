package storage

import (
	"bytes"
	"context"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/opentracing/opentracing-go"
	tracingLog "github.com/opentracing/opentracing-go/log"
	"github.com/pkg/errors"

	"github.com/neozeit/dmarcscope/config"
	"github.com/neozeit/dmarcscope/interfaces"
	"github.com/neozeit/dmarcscope/internal/logger"
	"github.com/neozeit/dmarcscope/internal/tracing"
	"github.com/neozeit/dmarcscope/services/storage/aws_client"
)

const reportContentType = "application/pdf"

// archiveService keeps finished reports in an S3 bucket under a fixed
// key prefix.
type archiveService struct {
	log    logger.Logger
	client aws_client.S3Client
	bucket string
	prefix string
}

func NewArchiveService(log logger.Logger, client aws_client.S3Client, archiveConfig *config.ArchiveConfig) interfaces.ArchiveService {
	return &archiveService{
		log:    log,
		client: client,
		bucket: archiveConfig.Bucket,
		prefix: archiveConfig.KeyPrefix,
	}
}

func (s *archiveService) ArchiveReport(ctx context.Context, filename string, data []byte) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ArchiveService.ArchiveReport")
	defer span.Finish()
	tracing.SetDefaultStorageSpanTags(ctx, span)
	span.LogKV("request.filename", filename, "request.bytes", len(data))

	key := s.objectKey(filename)
	uploadInput := s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(reportContentType),
	}

	if err := s.client.Upload(ctx, uploadInput); err != nil {
		err = errors.Wrap(err, "upload report")
		tracing.TraceErr(span, err)
		return "", err
	}

	span.LogKV("result.key", key)
	return key, nil
}

func (s *archiveService) ListReports(ctx context.Context) ([]string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ArchiveService.ListReports")
	defer span.Finish()
	tracing.SetDefaultStorageSpanTags(ctx, span)

	prefix := s.prefix
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	keys, err := s.client.ListFiles(ctx, s.bucket, prefix)
	if err != nil {
		err = errors.Wrap(err, "list archived reports")
		tracing.TraceErr(span, err)
		return nil, err
	}

	span.LogFields(tracingLog.Int("result.count", len(keys)))
	return keys, nil
}

func (s *archiveService) FetchReport(ctx context.Context, key string) ([]byte, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ArchiveService.FetchReport")
	defer span.Finish()
	tracing.SetDefaultStorageSpanTags(ctx, span)
	span.LogKV("request.key", key)

	// bare filenames resolve under the archive prefix
	if s.prefix != "" && !strings.HasPrefix(key, s.prefix+"/") {
		key = s.objectKey(key)
	}

	data, err := s.client.Download(ctx, s.bucket, key)
	if err != nil {
		err = errors.Wrap(err, "download archived report")
		tracing.TraceErr(span, err)
		return nil, err
	}

	span.LogFields(tracingLog.Int("result.bytes", len(data)))
	return data, nil
}

func (s *archiveService) DeleteReport(ctx context.Context, key string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ArchiveService.DeleteReport")
	defer span.Finish()
	tracing.SetDefaultStorageSpanTags(ctx, span)
	span.LogKV("request.key", key)

	if s.prefix != "" && !strings.HasPrefix(key, s.prefix+"/") {
		key = s.objectKey(key)
	}

	if err := s.client.Delete(ctx, s.bucket, key); err != nil {
		err = errors.Wrap(err, "delete archived report")
		tracing.TraceErr(span, err)
		return err
	}

	return nil
}

func (s *archiveService) objectKey(filename string) string {
	if s.prefix == "" {
		return filename
	}
	return s.prefix + "/" + filename
}
