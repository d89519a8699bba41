package repository

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/opentracing/opentracing-go"
	tracingLog "github.com/opentracing/opentracing-go/log"
	"github.com/pkg/errors"

	"github.com/neozeit/dmarcscope/internal/models"
	"github.com/neozeit/dmarcscope/internal/tracing"
)

// defaultMaxRecords caps a single fetch; aggregate reports for one
// domain over a month stay well under it.
const defaultMaxRecords = 10000

type DMARCReportRepository interface {
	FetchRecords(ctx context.Context, indexPattern, domain string, window models.TimeWindow) ([]models.AuthenticationRecord, error)
	FetchTotalMessageCount(ctx context.Context, indexPattern, domain string, window models.TimeWindow) (int64, error)
}

type dmarcReportRepository struct {
	es         *elasticsearch.Client
	maxRecords int
}

func NewDMARCReportRepository(es *elasticsearch.Client, maxRecords int) DMARCReportRepository {
	if maxRecords <= 0 {
		maxRecords = defaultMaxRecords
	}
	return &dmarcReportRepository{
		es:         es,
		maxRecords: maxRecords,
	}
}

// domainFilter is the bool query shared by both operations: records
// whose date_begin falls inside the window, for the exact domain.
func domainFilter(domain string, window models.TimeWindow) map[string]interface{} {
	return map[string]interface{}{
		"bool": map[string]interface{}{
			"must": []interface{}{
				map[string]interface{}{
					"range": map[string]interface{}{
						"date_begin": map[string]interface{}{
							"gte": window.StartMillis(),
							"lte": window.EndMillis(),
						},
					},
				},
				map[string]interface{}{
					"term": map[string]interface{}{
						"published_policy.domain.keyword": domain,
					},
				},
			},
		},
	}
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source models.AuthenticationRecord `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

type totalCountResponse struct {
	Aggregations struct {
		MessagesPerDay struct {
			Buckets []struct {
				TotalMessages struct {
					Value float64 `json:"value"`
				} `json:"total_messages"`
			} `json:"buckets"`
		} `json:"messages_per_day"`
	} `json:"aggregations"`
}

func (r *dmarcReportRepository) FetchRecords(ctx context.Context, indexPattern, domain string, window models.TimeWindow) ([]models.AuthenticationRecord, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DMARCReportRepository.FetchRecords")
	defer span.Finish()
	tracing.SetDefaultElasticRepositorySpanTags(ctx, span)
	tracing.TagDomain(span, domain)
	span.LogKV("indexPattern", indexPattern, "windowStart", window.StartMillis(), "windowEnd", window.EndMillis())

	if indexPattern == "" || domain == "" {
		tracing.TraceErr(span, ErrInvalidInput)
		return nil, ErrInvalidInput
	}

	query := map[string]interface{}{
		"size":  r.maxRecords,
		"query": domainFilter(domain, window),
	}

	res, err := r.search(ctx, indexPattern, query)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	defer res.Body.Close()

	var envelope searchResponse
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		err = errors.Wrap(err, "decode search response")
		tracing.TraceErr(span, err)
		return nil, err
	}

	records := make([]models.AuthenticationRecord, 0, len(envelope.Hits.Hits))
	for _, hit := range envelope.Hits.Hits {
		records = append(records, hit.Source)
	}

	span.LogFields(tracingLog.Int("result.count", len(records)))
	return records, nil
}

func (r *dmarcReportRepository) FetchTotalMessageCount(ctx context.Context, indexPattern, domain string, window models.TimeWindow) (int64, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DMARCReportRepository.FetchTotalMessageCount")
	defer span.Finish()
	tracing.SetDefaultElasticRepositorySpanTags(ctx, span)
	tracing.TagDomain(span, domain)
	span.LogKV("indexPattern", indexPattern, "windowStart", window.StartMillis(), "windowEnd", window.EndMillis())

	if indexPattern == "" || domain == "" {
		tracing.TraceErr(span, ErrInvalidInput)
		return 0, ErrInvalidInput
	}

	query := map[string]interface{}{
		"size":  0,
		"query": domainFilter(domain, window),
		"aggs": map[string]interface{}{
			"messages_per_day": map[string]interface{}{
				"date_histogram": map[string]interface{}{
					"field":             "date_begin",
					"calendar_interval": "day",
				},
				"aggs": map[string]interface{}{
					"total_messages": map[string]interface{}{
						"sum": map[string]interface{}{
							"field": "message_count",
						},
					},
				},
			},
		},
	}

	res, err := r.search(ctx, indexPattern, query)
	if err != nil {
		tracing.TraceErr(span, err)
		return 0, err
	}
	defer res.Body.Close()

	var envelope totalCountResponse
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		err = errors.Wrap(err, "decode aggregation response")
		tracing.TraceErr(span, err)
		return 0, err
	}

	// message_count values are integers, so the per-day float sums are
	// exact and the truncation is lossless.
	var total int64
	for _, bucket := range envelope.Aggregations.MessagesPerDay.Buckets {
		total += int64(bucket.TotalMessages.Value)
	}

	span.LogFields(tracingLog.Int64("result.totalMessages", total))
	return total, nil
}

func (r *dmarcReportRepository) search(ctx context.Context, indexPattern string, query map[string]interface{}) (*esapi.Response, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return nil, errors.Wrap(err, "encode query")
	}

	res, err := r.es.Search(
		r.es.Search.WithContext(ctx),
		r.es.Search.WithIndex(indexPattern),
		r.es.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, errors.Wrap(err, "search request failed")
	}
	if res.IsError() {
		res.Body.Close()
		return nil, errors.Errorf("search returned %s", res.Status())
	}
	return res, nil
}
