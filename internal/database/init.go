package database

import (
	"log"

	"github.com/elastic/go-elasticsearch/v8"
)

func InitElasticsearch(esConfig *ElasticsearchConfig) (*elasticsearch.Client, error) {
	es, err := NewElasticConnection(esConfig)
	if err != nil {
		log.Fatalf("Failed to connect to Elasticsearch: %v", err)
	}

	return es, nil
}
